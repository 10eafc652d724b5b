package instrument

import (
	"sort"
	"strings"
)

// registry maps stable instrument identifiers to factories. IDs are
// lowercase kebab-case and are the values accepted by the API and CLI
// layers.
var registry = map[string]func() Instrument{
	"guitar":           func() Instrument { return NewGuitar() },
	"ukulele":          func() Instrument { return NewUkulele() },
	"bass":             func() Instrument { return NewBass() },
	"bass-5":           func() Instrument { return NewBass5() },
	"mandolin":         func() Instrument { return NewMandolin() },
	"banjo":            func() Instrument { return NewBanjo() },
	"baritone-ukulele": func() Instrument { return NewBaritoneUkulele() },
	"guitar-7":         func() Instrument { return NewGuitar7() },
	"drop-d":           func() Instrument { return NewGuitarDropD() },
	"open-g":           func() Instrument { return NewGuitarOpenG() },
	"dadgad":           func() Instrument { return NewGuitarDADGAD() },
}

// aliases accepted in addition to the canonical IDs.
var aliases = map[string]string{
	"uke":      "ukulele",
	"bass5":    "bass-5",
	"bari-uke": "baritone-ukulele",
	"guitar7":  "guitar-7",
	"dropd":    "drop-d",
	"openg":    "open-g",
}

// ByID returns a fresh instrument for a known identifier, or
// InvalidInstrumentError.
func ByID(id string) (Instrument, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	factory, ok := registry[key]
	if !ok {
		return nil, &InvalidInstrumentError{ID: id}
	}
	return factory(), nil
}

// IDs returns the canonical instrument identifiers, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
