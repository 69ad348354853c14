package quiz

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productfinder-backend/internal/catalog"
)

func TestAnswersInt(t *testing.T) {
	cases := []struct {
		name   string
		value  any
		want   int
		wantOK bool
	}{
		{name: "float", value: float64(12), want: 12, wantOK: true},
		{name: "float_truncates", value: 5.9, want: 5, wantOK: true},
		{name: "string", value: "10", want: 10, wantOK: true},
		{name: "string_prefix", value: " 12 lawyers", want: 12, wantOK: true},
		{name: "string_decimal", value: "7.5", want: 7, wantOK: true},
		{name: "negative", value: "-3", want: -3, wantOK: true},
		{name: "json_number", value: json.Number("42"), want: 42, wantOK: true},
		{name: "garbage", value: "many", wantOK: false},
		{name: "empty", value: "", wantOK: false},
		{name: "nil", value: nil, wantOK: false},
		{name: "float_out_of_range", value: 1e300, wantOK: false},
		{name: "float_negative_out_of_range", value: -1e300, wantOK: false},
		{name: "string_overflow", value: "99999999999999999999999", wantOK: false},
		{name: "nan", value: math.NaN(), wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Answers{"n": tc.value}.Int("n")
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestAnswersYesNoIsStrictlyNumeric(t *testing.T) {
	a := Answers{"a": float64(0), "b": "0", "c": 1, "d": nil}
	assert.True(t, a.IsNo("a"))
	assert.False(t, a.IsNo("b"))
	assert.True(t, a.IsYes("c"))
	assert.False(t, a.IsNo("d"))
	assert.False(t, a.IsNo("missing"))
}

func TestAnswersDecodedFromJSON(t *testing.T) {
	var a Answers
	require.NoError(t, json.Unmarshal([]byte(`{"lawyerCount":"8","notary":1,"maturity_q5":0,"workFocus":" forensic "}`), &a))
	n, ok := a.Int(QuestionLawyerCount)
	require.True(t, ok)
	assert.Equal(t, 8, n)
	assert.True(t, a.IsYes(QuestionNotary))
	assert.True(t, a.IsNo("maturity_q5"))
	assert.Equal(t, "forensic", a.String(QuestionWorkFocus))
}

func TestStepsCoverMaturityQuestions(t *testing.T) {
	steps := Steps()
	require.Len(t, steps, 2)
	assert.Len(t, steps[1].Questions, len(MaturityQuestions()))
	for id := range DefaultNeeds() {
		assert.True(t, IsMaturityQuestion(id), id)
	}
	assert.True(t, IsMaturityQuestion(AIReadinessQuestion))
}

func TestAssessMaturity(t *testing.T) {
	none := AssessMaturity(Answers{}, catalog.LocaleEN)
	assert.Equal(t, 0, none.Points)
	assert.Equal(t, 1, none.Stage)
	assert.Equal(t, 15, none.MaxPoints)

	all := Answers{}
	for _, id := range MaturityQuestions() {
		all[id] = float64(Yes)
	}
	full := AssessMaturity(all, catalog.LocaleDE)
	assert.Equal(t, 15, full.Points)
	assert.Equal(t, 8, full.Stage)
	assert.Equal(t, "Digitale Kanzlei", full.Title)

	some := Answers{"maturity_q1": 1, "maturity_q3": 1, "maturity_q4": 1, "maturity_q5": 0}
	assert.Equal(t, 2, AssessMaturity(some, catalog.LocaleEN).Stage)
}
