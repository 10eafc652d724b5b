package fingering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFullBarre(t *testing.T) {
	barres := DetectBarres(Decode("133211", 6))
	require.Len(t, barres, 2)

	assert.True(t, barres[0].Full)
	assert.Equal(t, 1, barres[0].Fret)
	assert.Equal(t, 0, barres[0].FromString)
	assert.Equal(t, 5, barres[0].ToString)
	assert.Equal(t, 6, barres[0].StringSpan())

	// The ring-finger pair at fret 3 is a mini-barre.
	assert.False(t, barres[1].Full)
	assert.Equal(t, 3, barres[1].Fret)
	assert.Equal(t, 1, barres[1].FromString)
	assert.Equal(t, 2, barres[1].ToString)
}

func TestDetectBarreAShape(t *testing.T) {
	// Bm barre: full barre at 2 plus mini-barre at 4.
	barres := DetectBarres(Decode("x24432", 6))
	require.Len(t, barres, 2)
	assert.True(t, barres[0].Full)
	assert.Equal(t, 2, barres[0].Fret)
	assert.Equal(t, 1, barres[0].FromString)
	assert.Equal(t, 5, barres[0].ToString)
	assert.False(t, barres[1].Full)
	assert.Equal(t, 4, barres[1].Fret)
}

func TestNoBarresInOpenChords(t *testing.T) {
	assert.Empty(t, DetectBarres(Decode("x32010", 6)))
	assert.Empty(t, DetectBarres(Decode("000000", 6)))
	assert.Empty(t, DetectBarres(Decode("xxxxxx", 6)))
}

func TestMiniBarreWithoutFullBarre(t *testing.T) {
	// D shape: strings 3 and 5 share fret 2 but aren't consecutive,
	// so no barre at all.
	assert.Empty(t, DetectBarres(Decode("xx0232", 6)))

	// F power-shape fragment: consecutive pair above the base fret.
	barres := DetectBarres(Decode("x133xx", 6))
	require.Len(t, barres, 1)
	assert.False(t, barres[0].Full)
	assert.Equal(t, 3, barres[0].Fret)
	assert.Equal(t, 2, barres[0].FromString)
	assert.Equal(t, 3, barres[0].ToString)
}

func TestHasFullBarre(t *testing.T) {
	assert.True(t, HasFullBarre(Decode("133211", 6)))
	assert.True(t, HasFullBarre(Decode("x24432", 6)))
	assert.False(t, HasFullBarre(Decode("x32010", 6)))
	assert.False(t, HasFullBarre(Decode("xx0232", 6)))
}
