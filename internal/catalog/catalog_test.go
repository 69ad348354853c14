package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLoads(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	ids := make([]string, 0, 5)
	for _, p := range cat.Products() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"lexolution", "winmacs", "advoware", "winjur", "amberlo"}, ids)
	assert.Len(t, cat.Features(), 13)
	assert.Len(t, cat.Categories(), 5)

	f, ok := cat.Feature("notariat_module")
	require.True(t, ok)
	assert.Equal(t, "specialization", f.Category)
	assert.True(t, f.SupportedBy("winmacs"))
	assert.False(t, f.SupportedBy("amberlo"))
	assert.Equal(t, "Notary module", f.Name(LocaleEN))
	assert.Equal(t, "Notariatsmodul", f.Name(LocaleDE))
}

func TestParseNoteFlag(t *testing.T) {
	data := []byte(`
products:
  - id: a
  - id: b
categories:
  - id: core
    features:
      - id: portal
        flags: {a: "via add-on", b: false}
`)
	cat, err := Parse(data)
	require.NoError(t, err)

	f, ok := cat.Feature("portal")
	require.True(t, ok)
	assert.Equal(t, SupportedWithNote, f.FlagFor("a").State)
	assert.Equal(t, "via add-on", f.FlagFor("a").Note)
	assert.True(t, f.SupportedBy("a"))
	assert.False(t, f.SupportedBy("b"))

	raw, err := json.Marshal(f.Flags)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"via add-on","b":false}`, string(raw))
}

func TestNewRejectsInvalidData(t *testing.T) {
	products := []Product{{ID: "a"}, {ID: "b"}}
	cases := []struct {
		name       string
		products   []Product
		categories []Category
	}{
		{
			name:     "duplicate_product",
			products: []Product{{ID: "a"}, {ID: "a"}},
		},
		{
			name:     "empty_product_id",
			products: []Product{{ID: " "}},
		},
		{
			name:     "missing_flag",
			products: products,
			categories: []Category{{ID: "c", Features: []Feature{
				{ID: "f", Flags: map[string]Flag{"a": Yes()}},
			}}},
		},
		{
			name:     "unknown_product_flag",
			products: products,
			categories: []Category{{ID: "c", Features: []Feature{
				{ID: "f", Flags: map[string]Flag{"a": Yes(), "b": No(), "z": Yes()}},
			}}},
		},
		{
			name:     "duplicate_feature",
			products: products,
			categories: []Category{
				{ID: "c1", Features: []Feature{{ID: "f", Flags: map[string]Flag{"a": Yes(), "b": No()}}}},
				{ID: "c2", Features: []Feature{{ID: "f", Flags: map[string]Flag{"a": Yes(), "b": No()}}}},
			},
		},
		{
			name:     "empty_note",
			products: products,
			categories: []Category{{ID: "c", Features: []Feature{
				{ID: "f", Flags: map[string]Flag{"a": WithNote(""), "b": No()}},
			}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.products, tc.categories)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
		})
	}
}

func TestNameFallsBackToID(t *testing.T) {
	cat, err := New([]Product{{ID: "solo"}}, []Category{{ID: "c", Features: []Feature{
		{ID: "unnamed", Flags: map[string]Flag{"solo": Yes()}},
	}}})
	require.NoError(t, err)

	p, ok := cat.Product("solo")
	require.True(t, ok)
	assert.Equal(t, "solo", p.Name(LocaleEN))

	f, _ := cat.Feature("unnamed")
	assert.Equal(t, "unnamed", f.Name(Locale("fr")))
	assert.Equal(t, -1, cat.Index("missing"))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleEN, ParseLocale("EN"))
	assert.Equal(t, LocaleDE, ParseLocale("de"))
	assert.Equal(t, LocaleDE, ParseLocale(""))
}
