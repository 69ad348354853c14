package catalog

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Support is the support state of a feature for one product.
type Support int

const (
	Unsupported Support = iota
	Supported
	SupportedWithNote
)

// Flag records whether a product supports a feature. A note marks qualified
// support; it counts as supported for scoring but is rendered distinctly.
type Flag struct {
	State Support
	Note  string
}

// Yes is a plain supported flag.
func Yes() Flag { return Flag{State: Supported} }

// No is an unsupported flag.
func No() Flag { return Flag{State: Unsupported} }

// WithNote is a supported flag carrying a qualification.
func WithNote(note string) Flag { return Flag{State: SupportedWithNote, Note: note} }

// Supported reports whether the flag counts as support.
func (f Flag) Supported() bool {
	return f.State == Supported || f.State == SupportedWithNote
}

// UnmarshalYAML accepts true, false or a non-empty note string.
func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: flag must be a bool or string", node.Line)
	}
	if node.Tag == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		if b {
			*f = Yes()
		} else {
			*f = No()
		}
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	*f = WithNote(s)
	return nil
}

// MarshalJSON renders the flag the way the comparison table consumes it:
// true, false or the note text.
func (f Flag) MarshalJSON() ([]byte, error) {
	switch f.State {
	case Supported:
		return []byte("true"), nil
	case SupportedWithNote:
		return json.Marshal(f.Note)
	default:
		return []byte("false"), nil
	}
}
