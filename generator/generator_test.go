package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/chord-forge/fingering"
	"github.com/RyanBlaney/chord-forge/instrument"
	"github.com/RyanBlaney/chord-forge/theory"
)

func mustChord(t *testing.T, name string) theory.ChordSpec {
	t.Helper()
	spec, err := theory.ParseChord(name)
	require.NoError(t, err, "parsing %q", name)
	return spec
}

func hasPitches(sf ScoredFingering, inst instrument.Instrument, wanted ...theory.PitchClass) bool {
	pitches := sf.Fingering.UniquePitchClasses(inst)
	for _, w := range wanted {
		found := false
		for _, p := range pitches {
			if p == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestGenerateCMajor(t *testing.T) {
	g := instrument.NewGuitar()
	opts := DefaultOptions()
	opts.Limit = 5

	results := Generate(mustChord(t, "C"), g, opts)
	require.NotEmpty(t, results)

	found := false
	for _, sf := range results {
		if hasPitches(sf, g, theory.C, theory.E, theory.G) {
			found = true
		}
	}
	assert.True(t, found, "some result should contain C, E and G")
}

func TestGenerateFindsClassicShapes(t *testing.T) {
	g := instrument.NewGuitar()
	opts := DefaultOptions()
	opts.Limit = 100

	results := Generate(mustChord(t, "Am"), g, opts)
	tabs := make(map[string]bool, len(results))
	for _, sf := range results {
		tabs[sf.Tab] = true
	}
	assert.True(t, tabs["x02210"], "classic Am shape should be generated")
}

func TestGenerateFullVoicingsComplete(t *testing.T) {
	g := instrument.NewGuitar()
	full := theory.VoicingFull
	opts := DefaultOptions()
	opts.Voicing = &full

	results := Generate(mustChord(t, "G"), g, opts)
	require.NotEmpty(t, results)
	for _, sf := range results {
		assert.Equal(t, theory.VoicingFull, sf.Voicing)
		assert.True(t, hasPitches(sf, g, theory.G, theory.B, theory.D), "full voicing %s missing a tone", sf.Tab)
	}
}

func TestVoicingClassificationInvariants(t *testing.T) {
	g := instrument.NewGuitar()
	spec := mustChord(t, "Cmaj7")
	opts := DefaultOptions()
	opts.Limit = 50

	all := spec.PitchClasses()
	required := spec.RequiredPitchClasses()
	core := spec.CorePitchClasses()

	for _, sf := range Generate(spec, g, opts) {
		pitches := sf.Fingering.UniquePitchClasses(g)
		has := func(set []theory.PitchClass) bool {
			for _, p := range set {
				found := false
				for _, q := range pitches {
					if p == q {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			}
			return true
		}

		switch sf.Voicing {
		case theory.VoicingFull:
			assert.True(t, has(all), "full voicing %s missing a tone", sf.Tab)
		case theory.VoicingCore:
			assert.True(t, has(required), "core voicing %s missing a required tone", sf.Tab)
		case theory.VoicingJazzy:
			assert.True(t, has(core), "jazzy voicing %s missing an essential tone", sf.Tab)
			assert.False(t, has(required), "jazzy voicing %s has all required tones", sf.Tab)
		default:
			t.Errorf("incomplete voicing %s in default output", sf.Tab)
		}
	}
}

func TestVoicingFilter(t *testing.T) {
	g := instrument.NewGuitar()
	for _, v := range []theory.Voicing{theory.VoicingFull, theory.VoicingCore, theory.VoicingJazzy} {
		voicing := v
		opts := DefaultOptions()
		opts.Limit = 20
		opts.Voicing = &voicing

		results := Generate(mustChord(t, "Cmaj7"), g, opts)
		require.NotEmpty(t, results, "voicing %s", v)
		for _, sf := range results {
			assert.Equal(t, v, sf.Voicing, "fingering %s", sf.Tab)
		}
	}
}

func TestIncompleteExcludedByDefault(t *testing.T) {
	g := instrument.NewGuitar()
	opts := DefaultOptions()
	opts.Limit = 200

	for _, sf := range Generate(mustChord(t, "C13"), g, opts) {
		assert.NotEqual(t, theory.VoicingIncomplete, sf.Voicing, "fingering %s", sf.Tab)
	}

	incomplete := theory.VoicingIncomplete
	opts.Voicing = &incomplete
	for _, sf := range Generate(mustChord(t, "C13"), g, opts) {
		assert.Equal(t, theory.VoicingIncomplete, sf.Voicing)
	}
}

func TestRootInBassRequired(t *testing.T) {
	g := instrument.NewGuitar()
	opts := DefaultOptions()
	opts.Limit = 50
	opts.RootInBassRequired = true

	results := Generate(mustChord(t, "C"), g, opts)
	require.NotEmpty(t, results)
	for _, sf := range results {
		assert.True(t, sf.HasRootInBass, "fingering %s", sf.Tab)
	}
}

func TestPositionIsLowestFret(t *testing.T) {
	g := instrument.NewGuitar()
	opts := DefaultOptions()
	opts.Limit = 100

	for _, sf := range Generate(mustChord(t, "F"), g, opts) {
		assert.Equal(t, sf.Fingering.Position(), sf.Position)
		assert.Equal(t, sf.Fingering.MinFret(), sf.Position)
	}
}

func TestUkuleleRootInBassReentrant(t *testing.T) {
	u := instrument.NewUkulele()
	opts := DefaultOptions()
	opts.Limit = 100

	results := Generate(mustChord(t, "C"), u, opts)
	require.NotEmpty(t, results)

	var classic *ScoredFingering
	for i := range results {
		if results[i].Tab == "0003" {
			classic = &results[i]
		}
	}
	require.NotNil(t, classic, "ukulele C should include 0003")

	// The open C string (index 1) is the bass despite the re-entrant
	// G string at index 0.
	assert.True(t, classic.HasRootInBass)
}

func TestGenerateDeterministic(t *testing.T) {
	g := instrument.NewGuitar()
	opts := DefaultOptions()
	opts.Limit = 20

	first := Generate(mustChord(t, "G7"), g, opts)
	for i := 0; i < 3; i++ {
		again := Generate(mustChord(t, "G7"), g, opts)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].Tab, again[j].Tab)
			assert.Equal(t, first[j].Score, again[j].Score)
		}
	}
}

func TestGenerateRespectsInstrumentLimits(t *testing.T) {
	u := instrument.NewUkulele()
	opts := DefaultOptions()
	opts.Limit = 50

	for _, sf := range Generate(mustChord(t, "C"), u, opts) {
		assert.LessOrEqual(t, sf.Fingering.FretSpan(), u.MaxStretch(), "fingering %s", sf.Tab)
		assert.LessOrEqual(t, sf.Fingering.MinFingers(), u.MaxFingers(), "fingering %s", sf.Tab)
		assert.GreaterOrEqual(t, sf.Fingering.PlayedCount(), u.MinPlayedStrings(), "fingering %s", sf.Tab)
	}
}

func TestGenerateNoDuplicates(t *testing.T) {
	g := instrument.NewGuitar()
	opts := DefaultOptions()
	opts.Limit = 200

	seen := map[string]bool{}
	for _, sf := range Generate(mustChord(t, "C"), g, opts) {
		assert.False(t, seen[sf.Tab], "duplicate %s", sf.Tab)
		seen[sf.Tab] = true
	}
}

func TestPreferredPositionBias(t *testing.T) {
	g := instrument.NewGuitar()
	pos := 5
	opts := DefaultOptions()
	opts.Limit = 5
	opts.PreferredPosition = &pos

	results := Generate(mustChord(t, "A"), g, opts)
	require.NotEmpty(t, results)
	for _, sf := range results {
		assert.True(t, hasPitches(sf, g, theory.A), "fingering %s", sf.Tab)
	}
}

func TestSoloPrefersRootInBassOverBand(t *testing.T) {
	g := instrument.NewGuitar()

	soloOpts := DefaultOptions()
	soloOpts.Limit = 20
	soloResults := Generate(mustChord(t, "Cmaj7"), g, soloOpts)
	require.NotEmpty(t, soloResults)

	bandOpts := DefaultOptions()
	bandOpts.Limit = 20
	bandOpts.Context = Band
	bandResults := Generate(mustChord(t, "Cmaj7"), g, bandOpts)
	require.NotEmpty(t, bandResults)

	topN := 5
	countRoot := func(results []ScoredFingering) int {
		n := 0
		for i, sf := range results {
			if i >= topN {
				break
			}
			if sf.HasRootInBass {
				n++
			}
		}
		return n
	}
	assert.GreaterOrEqual(t, countRoot(soloResults), countRoot(bandResults))
}

func TestSlashChordBassTarget(t *testing.T) {
	g := instrument.NewGuitar()
	opts := DefaultOptions()
	opts.Limit = 100
	opts.RootInBassRequired = true

	// C/G: the bass requirement is G, not C.
	results := Generate(mustChord(t, "C/G"), g, opts)
	require.NotEmpty(t, results)
	for _, sf := range results {
		bass, ok := sf.Fingering.BassNote(g)
		require.True(t, ok)
		assert.Equal(t, theory.G, bass.Pitch, "fingering %s", sf.Tab)
	}
}

// bruteForce enumerates the full Cartesian product with no pruning
// and applies only the final validity filters. The pruned search must
// find exactly the same playable shapes.
func bruteForce(spec theory.ChordSpec, inst instrument.Instrument, maxFret int) map[string]bool {
	all := spec.PitchClasses()
	tuning := inst.Tuning()

	perString := make([][]fingering.StringState, len(tuning))
	for s, open := range tuning {
		options := []fingering.StringState{fingering.Muted}
		for fret := 0; fret <= maxFret; fret++ {
			pitch := open.Pitch.AddSemitones(fret)
			for _, p := range all {
				if p == pitch {
					options = append(options, fingering.StringState(fret))
					break
				}
			}
		}
		perString[s] = options
	}

	valid := map[string]bool{}
	var walk func(idx int, acc []fingering.StringState)
	walk = func(idx int, acc []fingering.StringState) {
		if idx == len(perString) {
			f := fingering.New(append([]fingering.StringState(nil), acc...)...)
			if !f.IsPlayable(inst) || f.PlayedCount() < inst.MinPlayedStrings() {
				return
			}
			valid[f.Encode()] = true
			return
		}
		for _, state := range perString[idx] {
			walk(idx+1, append(acc, state))
		}
	}
	walk(0, nil)
	return valid
}

func TestPruningMatchesBruteForce(t *testing.T) {
	u := instrument.NewUkulele()
	spec := mustChord(t, "C")

	opts := DefaultOptions()
	opts.Limit = 10000
	opts.MaxFret = 5

	pruned := map[string]bool{}
	for _, v := range []theory.Voicing{
		theory.VoicingFull, theory.VoicingCore, theory.VoicingJazzy, theory.VoicingIncomplete,
	} {
		voicing := v
		o := opts
		o.Voicing = &voicing
		for _, sf := range Generate(spec, u, o) {
			pruned[sf.Tab] = true
		}
	}

	brute := bruteForce(spec, u, 5)
	assert.Equal(t, brute, pruned, "pruned search must yield the same playable shapes as brute force")
}

func TestFormatDiagram(t *testing.T) {
	g := instrument.NewGuitar()
	opts := DefaultOptions()
	opts.Limit = 1

	results := Generate(mustChord(t, "C"), g, opts)
	require.NotEmpty(t, results)

	diagram := FormatDiagram(results[0], g)
	assert.Contains(t, diagram, "|---")
	assert.Contains(t, diagram, "Score:")
	assert.Contains(t, diagram, "Notes:")
}

func TestGenerateBeyondTwentyFourFrets(t *testing.T) {
	// A 30-fret build must search its whole neck without tripping on
	// any fixed-size fret bookkeeping.
	inst, err := instrument.NewBuilder().
		Name("Extended Range").
		TuningFromNames("E2", "A2", "D3", "G3", "B3", "E4").
		MaxFret(30).
		Build()
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.MaxFret = 30
	pos := 27
	opts.PreferredPosition = &pos

	results := Generate(mustChord(t, "C"), inst, opts)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.LessOrEqual(t, r.Fingering.MaxFret(), 30)
	}
}

func TestParsePlayingContext(t *testing.T) {
	assert.Equal(t, Band, ParsePlayingContext("band"))
	assert.Equal(t, Band, ParsePlayingContext(" Band "))
	assert.Equal(t, Solo, ParsePlayingContext("solo"))
	assert.Equal(t, Solo, ParsePlayingContext("anything"))
}

func BenchmarkGenerateCmaj7Guitar(b *testing.B) {
	spec, err := theory.ParseChord("Cmaj7")
	if err != nil {
		b.Fatal(err)
	}
	g := instrument.NewGuitar()
	opts := DefaultOptions()
	opts.Limit = 20

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Generate(spec, g, opts)
	}
}
