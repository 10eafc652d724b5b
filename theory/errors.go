package theory

import "fmt"

// ParseError reports a malformed chord, note or interval name. The
// offending substring is preserved so callers can surface it; unknown
// tokens are never coerced to a close match.
type ParseError struct {
	Input     string // full input string
	Offending string // the substring that failed to parse
	Kind      string // "chord", "note", "interval", "quality"
}

func (e *ParseError) Error() string {
	if e.Offending != "" && e.Offending != e.Input {
		return fmt.Sprintf("invalid %s name %q: unrecognized %q", e.Kind, e.Input, e.Offending)
	}
	return fmt.Sprintf("invalid %s name %q", e.Kind, e.Input)
}
