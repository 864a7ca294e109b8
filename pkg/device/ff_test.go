package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pensteer/pensteer/pkg/linuxinput"
)

func constantEffect(id int16, level int16) *linuxinput.FFEffect {
	var e linuxinput.FFEffect
	e.SetConstantLevel(level)
	e.ID = id
	return &e
}

func TestTrackerUploadAndPlay(t *testing.T) {
	var tr effectTracker

	require.True(t, tr.upload(constantEffect(2, 16384)))
	assert.Equal(t, float32(0), tr.feedback(), "loaded but not playing yet")

	tr.setPlaying(2, 1)
	assert.InDelta(t, 0.5, tr.feedback(), 1e-3)

	tr.setPlaying(2, 0)
	assert.Equal(t, float32(0), tr.feedback())
}

func TestTrackerLastUploadWins(t *testing.T) {
	var tr effectTracker
	tr.upload(constantEffect(1, 1000))
	tr.setPlaying(1, 1)

	// Re-uploading the same effect updates the magnitude in place.
	tr.upload(constantEffect(1, 2000))
	assert.Equal(t, int16(2000), tr.force)
	assert.True(t, tr.playing, "updating a playing effect keeps it playing")

	// A different effect id replaces it and starts stopped.
	tr.upload(constantEffect(7, 3000))
	assert.Equal(t, int16(7), int16(tr.id))
	assert.False(t, tr.playing)
}

func TestTrackerIgnoresOtherEffectKinds(t *testing.T) {
	var tr effectTracker
	var e linuxinput.FFEffect
	e.Type = linuxinput.FFRumble
	e.ID = 4

	assert.False(t, tr.upload(&e))
	assert.False(t, tr.active)
}

func TestTrackerEraseCorrelation(t *testing.T) {
	var tr effectTracker
	tr.upload(constantEffect(3, 5000))
	tr.setPlaying(3, 1)

	// Erasing an unrelated effect id leaves ours alone.
	tr.erase(9)
	assert.True(t, tr.active)
	assert.InDelta(t, 5000.0/32767.0, tr.feedback(), 1e-4)

	// Erasing the tracked id clears everything.
	tr.erase(3)
	assert.False(t, tr.active)
	assert.Equal(t, float32(0), tr.feedback())
}

func TestTrackerPlayingIgnoresOtherIDs(t *testing.T) {
	var tr effectTracker
	tr.upload(constantEffect(3, 5000))

	tr.setPlaying(8, 1)
	assert.False(t, tr.playing)
}
