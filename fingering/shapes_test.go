package fingering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuitarShapeMatching(t *testing.T) {
	tests := []struct {
		tab   string
		shape string
		base  int
	}{
		{"x02210", "Am", 0},
		{"x24432", "Am", 2}, // Bm is the Am shape barred at 2
		{"x02220", "A", 0},
		{"022000", "Em", 0},
		{"022100", "E", 0},
		{"133211", "E", 1}, // F is the E shape barred at 1
		{"355433", "E", 3}, // G barre
		{"x32010", "C", 0},
		{"320003", "G", 0},
		{"xx0232", "D", 0},
		{"xx0231", "Dm", 0},
	}
	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			name, base, ok := MatchShape(Decode(tt.tab, 6), "Guitar")
			require.True(t, ok)
			assert.Equal(t, tt.shape, name)
			assert.Equal(t, tt.base, base)
		})
	}
}

func TestUkuleleShapeMatching(t *testing.T) {
	name, base, ok := MatchShape(Decode("0003", 4), "Ukulele")
	require.True(t, ok)
	assert.Equal(t, "C", name)
	assert.Equal(t, 0, base)

	name, base, ok = MatchShape(Decode("2010", 4), "Ukulele")
	require.True(t, ok)
	assert.Equal(t, "F", name)
	assert.Equal(t, 0, base)
}

func TestMandolinShapeMatching(t *testing.T) {
	name, base, ok := MatchShape(Decode("0023", 4), "Mandolin")
	require.True(t, ok)
	assert.Equal(t, "G", name)
	assert.Equal(t, 0, base)
}

func TestShapeMatchRejectsMismatches(t *testing.T) {
	// Inconsistent base frets across the zero-offset strings.
	_, ok := StandardShape{Name: "A", Pattern: []int8{-1, 0, 2, 2, 2, 0}}.
		Match(Decode("x12223", 6))
	assert.False(t, ok)

	// Wrong string count.
	_, _, ok2 := MatchShape(Decode("0003", 4), "Guitar")
	assert.False(t, ok2)

	// No table for unknown instruments.
	_, _, ok3 := MatchShape(Decode("x32010", 6), "Hurdy-Gurdy")
	assert.False(t, ok3)
}
