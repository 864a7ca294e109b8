package linuxinput

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// EventSize is the size of struct input_event on 64-bit kernels (16 bytes
// of timeval followed by type, code and value).
const EventSize = 24

var ErrShortEvent = errors.New("linuxinput: truncated input event")

// Event mirrors struct input_event.  The timestamp is left zero on writes;
// the kernel fills it in.
type Event struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// AppendBinary appends the little-endian encoding of the event to buf.
func (e Event) AppendBinary(buf []byte) []byte {
	var raw [EventSize]byte
	binary.LittleEndian.PutUint64(raw[0:8], uint64(e.Sec))
	binary.LittleEndian.PutUint64(raw[8:16], uint64(e.Usec))
	binary.LittleEndian.PutUint16(raw[16:18], e.Type)
	binary.LittleEndian.PutUint16(raw[18:20], e.Code)
	binary.LittleEndian.PutUint32(raw[20:24], uint32(e.Value))
	return append(buf, raw[:]...)
}

// UnmarshalBinary decodes one event from the first EventSize bytes of buf.
func (e *Event) UnmarshalBinary(buf []byte) error {
	if len(buf) < EventSize {
		return ErrShortEvent
	}
	e.Sec = int64(binary.LittleEndian.Uint64(buf[0:8]))
	e.Usec = int64(binary.LittleEndian.Uint64(buf[8:16]))
	e.Type = binary.LittleEndian.Uint16(buf[16:18])
	e.Code = binary.LittleEndian.Uint16(buf[18:20])
	e.Value = int32(binary.LittleEndian.Uint32(buf[20:24]))
	return nil
}
