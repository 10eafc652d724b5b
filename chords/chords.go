// Package chords is the public facade over the core operations:
// chord name to ranked fingerings, fingering to ranked chord matches,
// and chord sequence to ranked fingering sequences. Callers address
// instruments by registry ID and get capo handling for free; the
// underlying packages stay pure and ID-free.
package chords

import (
	"github.com/RyanBlaney/chord-forge/analyzer"
	"github.com/RyanBlaney/chord-forge/generator"
	"github.com/RyanBlaney/chord-forge/instrument"
	"github.com/RyanBlaney/chord-forge/logging"
	"github.com/RyanBlaney/chord-forge/progression"
	"github.com/RyanBlaney/chord-forge/theory"
)

// FindOptions configure FindFingerings.
type FindOptions struct {
	Generator generator.Options `json:"generator"`
	// Capo, when above zero, places a capo at that fret before
	// searching. Fingerings come back relative to the capo.
	Capo int `json:"capo,omitempty"`
}

// DefaultFindOptions returns the standard search settings.
func DefaultFindOptions() FindOptions {
	return FindOptions{Generator: generator.DefaultOptions()}
}

// ProgressionOptions configure GenerateProgression.
type ProgressionOptions struct {
	Progression progression.Options `json:"progression"`
	Capo        int                 `json:"capo,omitempty"`
}

// DefaultProgressionOptions returns the standard assembly settings.
func DefaultProgressionOptions() ProgressionOptions {
	return ProgressionOptions{Progression: progression.DefaultOptions()}
}

// InstrumentDetails is read-only instrument metadata for display.
type InstrumentDetails struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	StringCount int      `json:"string_count"`
	StringNames []string `json:"string_names"`
	Tuning      []string `json:"tuning"`
	MaxFret     int      `json:"max_fret"`
}

// FindFingerings returns ranked fingerings for a chord name on the
// identified instrument. Fails on a bad chord name, an unknown
// instrument ID or an invalid capo fret; an empty result means no
// fingering satisfies the constraints.
func FindFingerings(chordName, instrumentID string, opts FindOptions) ([]generator.ScoredFingering, error) {
	log := logging.WithFields(logging.Fields{"component": "chords", "op": "find"})

	spec, err := theory.ParseChord(chordName)
	if err != nil {
		return nil, err
	}
	inst, err := instrumentFor(instrumentID, opts.Capo)
	if err != nil {
		return nil, err
	}

	results := generator.Generate(spec, inst, opts.Generator)
	log.Debug("generated fingerings", logging.Fields{
		"chord":      chordName,
		"instrument": instrumentID,
		"capo":       opts.Capo,
		"count":      len(results),
	})
	return results, nil
}

// AnalyzeChord returns ranked chord interpretations of tab notation on
// the identified instrument. Capo above zero shifts the sounding
// pitches accordingly. An empty result means the notes have no
// recognizable harmonic structure.
func AnalyzeChord(tab, instrumentID string, capo int) ([]analyzer.ChordMatch, error) {
	log := logging.WithFields(logging.Fields{"component": "chords", "op": "analyze"})

	inst, err := instrumentFor(instrumentID, capo)
	if err != nil {
		return nil, err
	}

	matches := analyzer.AnalyzeTab(tab, inst)
	log.Debug("analyzed fingering", logging.Fields{
		"tab":        tab,
		"instrument": instrumentID,
		"capo":       capo,
		"matches":    len(matches),
	})
	return matches, nil
}

// GenerateProgression returns ranked fingering sequences for the named
// chords on the identified instrument.
func GenerateProgression(chordNames []string, instrumentID string, opts ProgressionOptions) ([]progression.ProgressionSequence, error) {
	log := logging.WithFields(logging.Fields{"component": "chords", "op": "progression"})

	inst, err := instrumentFor(instrumentID, opts.Capo)
	if err != nil {
		return nil, err
	}

	sequences, err := progression.Generate(chordNames, inst, opts.Progression)
	if err != nil {
		return nil, err
	}
	log.Debug("generated progressions", logging.Fields{
		"chords":     len(chordNames),
		"instrument": instrumentID,
		"sequences":  len(sequences),
	})
	return sequences, nil
}

// InstrumentInfo returns display metadata for a registered instrument.
func InstrumentInfo(instrumentID string) (InstrumentDetails, error) {
	inst, err := instrument.ByID(instrumentID)
	if err != nil {
		return InstrumentDetails{}, err
	}

	tuning := inst.Tuning()
	tuningNames := make([]string, len(tuning))
	for i, note := range tuning {
		tuningNames[i] = note.String()
	}

	return InstrumentDetails{
		ID:          instrumentID,
		Name:        inst.Name(),
		StringCount: inst.StringCount(),
		StringNames: inst.StringNames(),
		Tuning:      tuningNames,
		MaxFret:     inst.MaxFret(),
	}, nil
}

// InstrumentIDs lists the registered instrument identifiers.
func InstrumentIDs() []string {
	return instrument.IDs()
}

func instrumentFor(id string, capo int) (instrument.Instrument, error) {
	inst, err := instrument.ByID(id)
	if err != nil {
		return nil, err
	}
	if capo > 0 {
		return instrument.NewCapoedInstrument(inst, capo)
	}
	return inst, nil
}
