package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfiles(t *testing.T) {
	w := Default()

	// Solo emphasizes root-in-bass and full voicings.
	assert.Greater(t, w.Solo.RootInBassBonus, w.Band.RootInBassBonus)
	assert.Greater(t, w.Solo.FullVoicingBonus, w.Band.FullVoicingBonus)

	// Band emphasizes compactness and staying off the low strings.
	assert.Greater(t, w.Band.CompactVoicingBonus, w.Solo.CompactVoicingBonus)
	assert.Greater(t, w.Band.AvoidLowStringsBonus, 0)

	// Band penalizes movement and distance harder.
	assert.Greater(t, w.BandTransition.MovementWeight, w.SoloTransition.MovementWeight)
	assert.Greater(t, w.BandTransition.DistancePenalty, w.SoloTransition.DistancePenalty)

	// Shared terms are identical across contexts.
	assert.Equal(t, w.Solo.StringUsageBonus, w.Band.StringUsageBonus)
	assert.Equal(t, w.Solo.InteriorMutePenalty, w.Band.InteriorMutePenalty)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	data := []byte("solo:\n  root_in_bass_bonus: 50\nband_transition:\n  distance_penalty: 12\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	w, err := Load(path)
	require.NoError(t, err)

	// Overridden fields take the file's values.
	assert.Equal(t, 50, w.Solo.RootInBassBonus)
	assert.Equal(t, 12, w.BandTransition.DistancePenalty)

	// Untouched fields keep their defaults.
	assert.Equal(t, Default().Solo.FullVoicingBonus, w.Solo.FullVoicingBonus)
	assert.Equal(t, Default().BandTransition.MovementWeight, w.BandTransition.MovementWeight)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solo: [not a map"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
