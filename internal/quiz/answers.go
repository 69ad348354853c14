package quiz

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Answer values for yes/no questions.
const (
	No  = 0
	Yes = 1
)

// Answers maps question ids to raw answer values (string, number or nil).
// Accessors never mutate the map.
type Answers map[string]any

// Clone returns a shallow copy safe to hand to another goroutine.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// String returns the trimmed string value of a question, or "".
func (a Answers) String(id string) string {
	switch v := a[id].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// Int reads a numeric answer the way a form posts it: numbers are truncated,
// strings contribute their leading integer prefix. ok is false when no
// integer can be read or the value does not fit in an int.
func (a Answers) Int(id string) (int, bool) {
	switch v := a[id].(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return floatToInt(v)
	case json.Number:
		return leadingInt(v.String())
	case string:
		return leadingInt(v)
	default:
		return 0, false
	}
}

// Number reports whether the answer is numerically equal to want. String
// answers never match.
func (a Answers) Number(id string, want float64) bool {
	switch v := a[id].(type) {
	case int:
		return float64(v) == want
	case int64:
		return float64(v) == want
	case float64:
		return v == want
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == want
	default:
		return false
	}
}

// IsNo reports whether a yes/no question was answered "No".
func (a Answers) IsNo(id string) bool { return a.Number(id, No) }

// IsYes reports whether a yes/no question was answered "Yes".
func (a Answers) IsYes(id string) bool { return a.Number(id, Yes) }

// Display renders a raw answer value as text; empty answers yield "".
func Display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// floatToInt truncates v, rejecting NaN, infinities and values an int
// cannot hold.
func floatToInt(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	t := math.Trunc(v)
	if t < math.MinInt || t >= math.MaxInt {
		return 0, false
	}
	return int(t), true
}

func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
