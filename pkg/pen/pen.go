// Package pen defines the sample produced by a tablet source and the wire
// format used to ship samples between processes.
package pen

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Pen button bits as carried in the wire format.
const (
	ButtonLower = 1 << 0
	ButtonUpper = 1 << 1
)

// WireSize is the exact length of an encoded sample.  Datagrams of any other
// length are not samples and must be discarded.
const WireSize = 13

var ErrBadLength = errors.New("pen: datagram is not 13 bytes")

// Sample is one absolute pen reading in canonical space.  X and Y are in
// [-1, 1] with (0, 0) at the wheel centre.
type Sample struct {
	X        float32
	Y        float32
	Pressure uint32
	Buttons  uint8
}

// Touching reports whether the pen is pressed hard enough to count as
// being on the surface.
func (s Sample) Touching(pressureThreshold uint32) bool {
	return s.Pressure > pressureThreshold
}

// MarshalBinary encodes the sample as a little-endian 13-byte datagram:
// f32 x, f32 y, u32 pressure, u8 buttons.
func (s Sample) MarshalBinary() []byte {
	buf := make([]byte, WireSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(s.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(s.Y))
	binary.LittleEndian.PutUint32(buf[8:12], s.Pressure)
	buf[12] = s.Buttons
	return buf
}

// UnmarshalBinary decodes a 13-byte datagram.  Anything else is rejected so
// the caller can hold on to its previous sample.
func (s *Sample) UnmarshalBinary(buf []byte) error {
	if len(buf) != WireSize {
		return ErrBadLength
	}
	s.X = math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))
	s.Y = math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))
	s.Pressure = binary.LittleEndian.Uint32(buf[8:12])
	s.Buttons = buf[12]
	return nil
}
