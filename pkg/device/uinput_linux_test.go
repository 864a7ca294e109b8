package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pensteer/pensteer/pkg/linuxinput"
)

// decodeBatch splits an event report back into its events.
func decodeBatch(t *testing.T, buf []byte) []linuxinput.Event {
	t.Helper()
	require.Zero(t, len(buf)%linuxinput.EventSize, "batch must be whole events")

	var events []linuxinput.Event
	for len(buf) > 0 {
		var ev linuxinput.Event
		require.NoError(t, ev.UnmarshalBinary(buf))
		events = append(events, ev)
		buf = buf[linuxinput.EventSize:]
	}
	return events
}

func TestBatchNothingStaged(t *testing.T) {
	d := &uinputDevice{resolution: 32768}
	assert.Nil(t, d.batch(), "no staged values means no write at all")
}

func TestBatchWheelOnly(t *testing.T) {
	d := &uinputDevice{resolution: 32768}
	d.SetWheel(0.5)

	events := decodeBatch(t, d.batch())
	require.Len(t, events, 2)
	assert.Equal(t, linuxinput.EvAbs, events[0].Type)
	assert.Equal(t, linuxinput.AbsX, events[0].Code)
	assert.Equal(t, int32(16384), events[0].Value)
	assert.Equal(t, linuxinput.EvSyn, events[1].Type)
	assert.Equal(t, linuxinput.SynReport, events[1].Code)
}

func TestBatchHornOnly(t *testing.T) {
	d := &uinputDevice{resolution: 32768}
	d.SetHorn(true)

	events := decodeBatch(t, d.batch())
	require.Len(t, events, 2)
	assert.Equal(t, linuxinput.EvKey, events[0].Type)
	assert.Equal(t, linuxinput.BtnThumbR, events[0].Code)
	assert.Equal(t, int32(1), events[0].Value)
	assert.Equal(t, linuxinput.EvSyn, events[1].Type)
}

func TestBatchWheelAndHorn(t *testing.T) {
	d := &uinputDevice{resolution: 32768}
	d.SetWheel(-1)
	d.SetHorn(false)

	events := decodeBatch(t, d.batch())
	require.Len(t, events, 3, "one abs, one key, one sync")
	assert.Equal(t, linuxinput.EvAbs, events[0].Type)
	assert.Equal(t, int32(-32768), events[0].Value)
	assert.Equal(t, linuxinput.EvKey, events[1].Type)
	assert.Equal(t, int32(0), events[1].Value, "horn release is value 0")
	assert.Equal(t, linuxinput.EvSyn, events[2].Type)
}

func TestBatchLastStagedValueWins(t *testing.T) {
	d := &uinputDevice{resolution: 32768}
	d.SetWheel(0.25)
	d.SetWheel(-0.25)

	events := decodeBatch(t, d.batch())
	require.Len(t, events, 2)
	assert.Equal(t, int32(-8192), events[0].Value)
}

func TestBatchNotResentAfterFlush(t *testing.T) {
	d := &uinputDevice{resolution: 32768}
	d.SetWheel(0.5)
	d.SetHorn(true)

	require.NotNil(t, d.batch())
	d.flushed()
	assert.Nil(t, d.batch(), "flushed values must not be written twice")
}

func TestBatchKeepsValuesUntilFlushed(t *testing.T) {
	// A failed write never reaches flushed; the staged horn press must
	// still be in the next batch.
	d := &uinputDevice{resolution: 32768}
	d.SetHorn(true)

	first := decodeBatch(t, d.batch())
	again := decodeBatch(t, d.batch())
	assert.Equal(t, first, again)
}
