package linuxinput

import "encoding/binary"

// FFEffect mirrors struct ff_effect on 64-bit kernels.  The payload is a
// tagged union; only the variant selected by Type may be interpreted, and
// the payload bytes must never be read through any other variant's shape.
type FFEffect struct {
	Type            uint16
	ID              int16
	Direction       uint16
	TriggerButton   uint16
	TriggerInterval uint16
	ReplayLength    uint16
	ReplayDelay     uint16
	_               [2]byte
	Payload         [32]byte
}

// ConstantLevel returns the signed magnitude of a constant-force effect.
// ok is false when the effect is any other kind, in which case the payload
// is left alone.
func (e *FFEffect) ConstantLevel() (level int16, ok bool) {
	if e.Type != FFConstant {
		return 0, false
	}
	return int16(binary.LittleEndian.Uint16(e.Payload[0:2])), true
}

// SetConstantLevel writes a constant-force payload and tags the effect
// accordingly.  Used by tests and by tooling that fabricates upload
// requests.
func (e *FFEffect) SetConstantLevel(level int16) {
	e.Type = FFConstant
	binary.LittleEndian.PutUint16(e.Payload[0:2], uint16(level))
}

// FFUpload mirrors struct uinput_ff_upload, the payload of the
// UI_BEGIN_FF_UPLOAD/UI_END_FF_UPLOAD handshake.
type FFUpload struct {
	RequestID uint32
	Retval    int32
	Effect    FFEffect
	Old       FFEffect
}

// FFErase mirrors struct uinput_ff_erase.
type FFErase struct {
	RequestID uint32
	Retval    int32
	EffectID  uint32
}
