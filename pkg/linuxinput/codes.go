// Package linuxinput carries the subset of the Linux input and uinput ABI
// shared by the evdev pen source and the uinput virtual device: event type
// and code constants, the input_event wire codec and the force-feedback
// request structures.
package linuxinput

// Event types from input-event-codes.h.
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvAbs uint16 = 0x03
	EvFF  uint16 = 0x15

	// EvUinput events are kernel requests delivered to the owner of a
	// uinput device, not real input events.
	EvUinput uint16 = 0x0101
)

// Synchronization codes.
const (
	SynReport uint16 = 0x00
)

// Absolute axes.
const (
	AbsX        uint16 = 0x00
	AbsY        uint16 = 0x01
	AbsPressure uint16 = 0x18
)

// Buttons.
const (
	BtnSouth  uint16 = 0x130
	BtnEast   uint16 = 0x131
	BtnNorth  uint16 = 0x133
	BtnWest   uint16 = 0x134
	BtnThumbL uint16 = 0x13d
	BtnThumbR uint16 = 0x13e

	BtnToolPen uint16 = 0x140
	BtnTouch   uint16 = 0x14a
	BtnStylus  uint16 = 0x14b
	BtnStylus2 uint16 = 0x14c
)

// Force-feedback effect types and controls.
const (
	FFRumble     uint16 = 0x50
	FFPeriodic   uint16 = 0x51
	FFConstant   uint16 = 0x52
	FFSpring     uint16 = 0x53
	FFFriction   uint16 = 0x54
	FFDamper     uint16 = 0x55
	FFInertia    uint16 = 0x56
	FFRamp       uint16 = 0x57
	FFSquare     uint16 = 0x58
	FFTriangle   uint16 = 0x59
	FFSine       uint16 = 0x5a
	FFSawUp      uint16 = 0x5b
	FFSawDown    uint16 = 0x5c
	FFGain       uint16 = 0x60
	FFAutocenter uint16 = 0x61
)

// uinput request codes carried in EvUinput events.
const (
	UIFFUpload uint16 = 1
	UIFFErase  uint16 = 2
)

// UinputMaxNameSize is the uinput limit on device name length.
const UinputMaxNameSize = 80
