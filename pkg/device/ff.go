package device

import (
	"math"

	"github.com/pensteer/pensteer/pkg/linuxinput"
)

// effectTracker follows the single constant-force effect a game has
// uploaded.  Only one effect is tracked at a time; a new upload replaces
// the previous one, and an erase only clears the tracker when its effect id
// matches, so unrelated effects cannot clobber the one we care about.
type effectTracker struct {
	active  bool
	id      int16
	force   int16
	playing bool
}

// upload starts or updates the tracked effect.  Uploading the id already
// tracked keeps its playing state; a different id starts stopped.
func (t *effectTracker) upload(e *linuxinput.FFEffect) bool {
	level, ok := e.ConstantLevel()
	if !ok {
		return false
	}
	if !t.active || t.id != e.ID {
		t.playing = false
	}
	t.active = true
	t.id = e.ID
	t.force = level
	return true
}

func (t *effectTracker) erase(effectID uint32) {
	if !t.active || uint32(t.id) != effectID {
		return
	}
	*t = effectTracker{}
}

// setPlaying toggles output for the tracked effect.  EV_FF events carry the
// effect id as the code; anything else (gain, autocenter) is ignored.
func (t *effectTracker) setPlaying(code uint16, value int32) {
	if !t.active || code != uint16(t.id) {
		return
	}
	t.playing = value != 0
}

// feedback is the normalized magnitude in [-1, 1]; zero unless the tracked
// effect is currently playing.
func (t *effectTracker) feedback() float32 {
	if !t.active || !t.playing {
		return 0
	}
	return float32(t.force) / math.MaxInt16
}
