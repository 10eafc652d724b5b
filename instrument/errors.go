package instrument

import "fmt"

// InvalidCapoError reports a capo fret outside the instrument's valid
// range.
type InvalidCapoError struct {
	Fret int
	Min  int
	Max  int
}

func (e *InvalidCapoError) Error() string {
	return fmt.Sprintf("invalid capo position %d: must be between %d and %d", e.Fret, e.Min, e.Max)
}

// InvalidInstrumentError reports an unknown instrument identifier.
type InvalidInstrumentError struct {
	ID string
}

func (e *InvalidInstrumentError) Error() string {
	return fmt.Sprintf("unknown instrument %q", e.ID)
}
