package fingering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/chord-forge/instrument"
	"github.com/RyanBlaney/chord-forge/theory"
)

func TestDecodeSimple(t *testing.T) {
	f := Decode("x32010", 6)
	require.Equal(t, 6, f.StringCount())
	states := f.Strings()
	assert.Equal(t, Muted, states[0])
	assert.Equal(t, StringState(3), states[1])
	assert.Equal(t, StringState(2), states[2])
	assert.Equal(t, StringState(0), states[3])
	assert.Equal(t, StringState(1), states[4])
	assert.Equal(t, StringState(0), states[5])
}

func TestDecodeHighFrets(t *testing.T) {
	f := Decode("x(10)(10)9(10)x", 6)
	require.Equal(t, 6, f.StringCount())
	assert.Equal(t, StringState(10), f.Strings()[1])
	assert.Equal(t, StringState(10), f.Strings()[2])
	assert.Equal(t, StringState(9), f.Strings()[3])
}

func TestDecodeIgnoresSeparators(t *testing.T) {
	spaced := Decode("x 3 2 0 1 0", 6)
	dashed := Decode("x-3-2-0-1-0", 6)
	comma := Decode("x,3,2,0,1,0", 6)
	plain := Decode("x32010", 6)

	assert.Equal(t, plain, spaced)
	assert.Equal(t, plain, dashed)
	assert.Equal(t, plain, comma)
}

func TestDecodeNeverFails(t *testing.T) {
	// Short input pads with muted strings.
	f := Decode("x3", 6)
	assert.Equal(t, "x3xxxx", f.Encode())

	// Extra input past the string count is ignored.
	f = Decode("x32010999", 6)
	assert.Equal(t, "x32010", f.Encode())

	// Garbage characters are skipped.
	f = Decode("x3!?2010", 6)
	assert.Equal(t, "x32010", f.Encode())

	// Unclosed parenthesis consumes trailing digits.
	f = Decode("00(12", 6)
	assert.Equal(t, "00(12)xxx", f.Encode())

	// Empty parentheses produce no string.
	f = Decode("x()0000", 6)
	assert.Equal(t, "x0000x", f.Encode())

	// Empty input is all muted.
	f = Decode("", 4)
	assert.Equal(t, "xxxx", f.Encode())
}

func TestDecodeSkipsAbsurdFrets(t *testing.T) {
	// A parenthesized number too large for any fretboard is dropped
	// like any other garbage token, never folded into a bogus state.
	f := Decode("(999)32010", 6)
	assert.Equal(t, "32010x", f.Encode())

	for _, s := range Decode("(999)(130)(128)x", 4).Strings() {
		if s != Muted {
			assert.GreaterOrEqual(t, int8(s), int8(0))
		}
	}

	// The largest representable fret still decodes.
	f = Decode("(127)x", 2)
	assert.Equal(t, StringState(127), f.Strings()[0])
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tabs := []string{
		"x32010",
		"133211",
		"022100",
		"xxxxxx",
		"000000",
		"x(10)(10)9(10)x",
		"(11)(13)(13)(12)(11)(11)",
		"0003",
		"2010",
	}
	for _, tab := range tabs {
		t.Run(tab, func(t *testing.T) {
			stringCount := 6
			if len(tab) == 4 {
				stringCount = 4
			}
			f := Decode(tab, stringCount)
			assert.Equal(t, tab, f.Encode())
			assert.Equal(t, f, Decode(f.Encode(), stringCount))
		})
	}
}

func TestFretSpan(t *testing.T) {
	assert.Equal(t, 2, Decode("x32010", 6).FretSpan())
	assert.Equal(t, 1, Decode("022100", 6).FretSpan())
	assert.Equal(t, 0, Decode("000000", 6).FretSpan())
	assert.Equal(t, 0, Decode("xxxxxx", 6).FretSpan())
}

func TestPositionIsLowestFret(t *testing.T) {
	assert.Equal(t, 1, Decode("x32010", 6).Position())
	assert.Equal(t, 3, Decode("355433", 6).Position())
	assert.Equal(t, 0, Decode("000000", 6).Position())
}

func TestIsOpenPosition(t *testing.T) {
	g := instrument.NewGuitar()
	assert.True(t, Decode("x32010", 6).IsOpenPosition(g))
	assert.False(t, Decode("133211", 6).IsOpenPosition(g))
	assert.False(t, Decode("x(10)(12)(12)(11)x", 6).IsOpenPosition(g))
}

func TestNotesOnGuitar(t *testing.T) {
	g := instrument.NewGuitar()
	c := Decode("x32010", 6)

	notes := c.Notes(g)
	require.Len(t, notes, 5)

	pitches := c.UniquePitchClasses(g)
	assert.Contains(t, pitches, theory.C)
	assert.Contains(t, pitches, theory.E)
	assert.Contains(t, pitches, theory.G)
	assert.Len(t, pitches, 3)
}

func TestBassNote(t *testing.T) {
	g := instrument.NewGuitar()
	bass, ok := Decode("x32010", 6).BassNote(g)
	require.True(t, ok)
	assert.Equal(t, theory.C, bass.Pitch)

	_, ok = Decode("xxxxxx", 6).BassNote(g)
	assert.False(t, ok)
}

func TestBassNoteUkuleleReentrant(t *testing.T) {
	u := instrument.NewUkulele()

	// 0003: the C string (index 1) is the bass, not the re-entrant G.
	bass, ok := Decode("0003", 4).BassNote(u)
	require.True(t, ok)
	assert.Equal(t, theory.C, bass.Pitch)

	bass, ok = Decode("2010", 4).BassNote(u)
	require.True(t, ok)
	assert.Equal(t, theory.C, bass.Pitch)

	// With G and C muted, the E string is next in line.
	bass, ok = Decode("xx03", 4).BassNote(u)
	require.True(t, ok)
	assert.Equal(t, theory.E, bass.Pitch)
}

func TestMinFingers(t *testing.T) {
	tests := []struct {
		tab  string
		want int
	}{
		{"444444", 1}, // full barre
		{"444445", 2}, // barre plus extension
		{"464444", 3}, // broken barre plus one note
		{"424404", 4}, // mixed frets with gaps
		{"x32010", 3}, // open C
		{"000000", 0},
	}
	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.tab, 6).MinFingers())
		})
	}
}

func TestRequiresBarre(t *testing.T) {
	assert.True(t, Decode("133211", 6).RequiresBarre())
	assert.False(t, Decode("x32010", 6).RequiresBarre())
	assert.False(t, Decode("000000", 6).RequiresBarre())
}

func TestHasHighBarre(t *testing.T) {
	g := instrument.NewGuitar()

	// Barre at the minimum fret is fine.
	assert.False(t, Decode("464444", 6).HasHighBarre(g))
	assert.False(t, Decode("133211", 6).HasHighBarre(g))
	assert.False(t, Decode("x32010", 6).HasHighBarre(g))

	// Barre above the minimum fret is awkward.
	assert.True(t, Decode("424444", 6).HasHighBarre(g))
}

func TestIsPlayable(t *testing.T) {
	g := instrument.NewGuitar()
	assert.True(t, Decode("x32010", 6).IsPlayable(g))
	assert.True(t, Decode("133211", 6).IsPlayable(g))

	// Needs more than four fingers.
	f := Decode("123456", 6)
	assert.Greater(t, f.MinFingers(), 4)
	assert.False(t, f.IsPlayable(g))

	// Span beyond max stretch.
	assert.False(t, Decode("1x6xxx", 6).IsPlayable(g))
}

func TestPlayabilityScore(t *testing.T) {
	g := instrument.NewGuitar()

	easy := Decode("x32010", 6)
	assert.True(t, easy.IsPlayable(g))
	assert.Greater(t, easy.PlayabilityScore(g), 50)

	hard := Decode("x24442", 6)
	assert.Less(t, hard.PlayabilityScore(g), easy.PlayabilityScore(g))

	// Fewer fingers scores higher.
	simple := Decode("464444", 6)
	complexF := Decode("424404", 6)
	assert.Greater(t, simple.PlayabilityScore(g), complexF.PlayabilityScore(g))

	// High barre costs at least the dedicated penalty.
	goodBarre := Decode("464444", 6)
	badBarre := Decode("424444", 6)
	assert.GreaterOrEqual(t, goodBarre.PlayabilityScore(g)-badBarre.PlayabilityScore(g), 30)

	// Unplayable scores zero.
	assert.Equal(t, 0, Decode("123456", 6).PlayabilityScore(g))
}

func TestInteriorOpens(t *testing.T) {
	g := instrument.NewGuitar()

	assert.Equal(t, 0, Decode("x24432", 6).InteriorOpenCount())
	assert.Equal(t, 2, Decode("x20402", 6).InteriorOpenCount())

	// Am: opens at the treble end are not interior.
	am := Decode("x02210", 6)
	assert.Equal(t, 0, am.InteriorOpenCount())
	assert.True(t, am.IsOpenPosition(g))

	assert.Greater(t,
		Decode("x24432", 6).PlayabilityScore(g),
		Decode("x20402", 6).PlayabilityScore(g))
}

func TestInteriorMutes(t *testing.T) {
	assert.Equal(t, 1, Decode("3x0003", 6).InteriorMuteCount())
	assert.Equal(t, 0, Decode("x32010", 6).InteriorMuteCount())
	assert.Equal(t, 0, Decode("xx0232", 6).InteriorMuteCount())
}

func TestBuilder(t *testing.T) {
	f := NewBuilder(6).
		Mute(0).
		Fret(1, 3).
		Fret(2, 2).
		Fret(3, 0).
		Fret(4, 1).
		Fret(5, 0).
		Build()
	assert.Equal(t, "x32010", f.Encode())

	// Out-of-range indices are ignored.
	f = NewBuilder(4).Fret(10, 3).Build()
	assert.Equal(t, "xxxx", f.Encode())
}
