package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRecommendFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"workFocus":"consulting","lawyerCount":"4"}`), 0o600))

	out, err := run(t, "", "recommend", "--answers", path, "--lang", "en")
	require.NoError(t, err)

	var rec struct {
		Lang       string `json:"lang"`
		TopProduct struct {
			ID string `json:"id"`
		} `json:"topProduct"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "en", rec.Lang)
	assert.Equal(t, "lexolution", rec.TopProduct.ID)
}

func TestRecommendFromStdin(t *testing.T) {
	out, err := run(t, `{"location":"ch"}`, "recommend", "--answers", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"lang": "de"`)
}

func TestRecommendRejectsBadJSON(t *testing.T) {
	_, err := run(t, `[1,2]`, "recommend", "--answers", "-")
	assert.Error(t, err)
}

func TestCatalogValidate(t *testing.T) {
	out, err := run(t, "", "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog ok: 5 products")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("products: []\n"), 0o600))
	_, err = run(t, "", "catalog", "validate", "--file", bad)
	assert.Error(t, err)
}
