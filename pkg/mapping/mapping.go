// Package mapping converts raw tablet coordinates into the canonical
// [-1, 1]² wheel space.  The transform is a pure value; applying it twice
// with the same configuration gives the same answer.
package mapping

// Orientation rotates the mapped point by a quarter-turn multiple.
type Orientation int

const (
	Rotate0 Orientation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (o Orientation) String() string {
	switch o {
	case Rotate90:
		return "90"
	case Rotate180:
		return "180"
	case Rotate270:
		return "270"
	default:
		return "0"
	}
}

type Mapping struct {
	MinInX  float32 `yaml:"min_in_x"`
	MinInY  float32 `yaml:"min_in_y"`
	MaxInX  float32 `yaml:"max_in_x"`
	MaxInY  float32 `yaml:"max_in_y"`
	MinOutX float32 `yaml:"min_out_x"`
	MinOutY float32 `yaml:"min_out_y"`
	MaxOutX float32 `yaml:"max_out_x"`
	MaxOutY float32 `yaml:"max_out_y"`

	Orientation Orientation `yaml:"orientation"`
	InvertX     bool        `yaml:"invert_x"`
	InvertY     bool        `yaml:"invert_y"`
}

// Default is the identity mapping: input and output both span [-1, 1] with
// no inversion or rotation.
func Default() Mapping {
	return Mapping{
		MinInX: -1, MinInY: -1,
		MaxInX: 1, MaxInY: 1,
		MinOutX: -1, MinOutY: -1,
		MaxOutX: 1, MaxOutY: 1,
	}
}

// Transform maps a raw point into wheel space.
func (m Mapping) Transform(x, y float32) (float32, float32) {
	x = clamp01(invLerp(x, m.MinInX, m.MaxInX))
	y = clamp01(invLerp(y, m.MinInY, m.MaxInY))

	if m.InvertX {
		x = 1 - x
	}
	if m.InvertY {
		y = 1 - y
	}

	x = clampUnit(lerp(x, m.MinOutX, m.MaxOutX))
	y = clampUnit(lerp(y, m.MinOutY, m.MaxOutY))

	switch m.Orientation {
	case Rotate90:
		return -y, x
	case Rotate180:
		return -x, -y
	case Rotate270:
		return y, -x
	default:
		return x, y
	}
}

func lerp(t, b1, b2 float32) float32 {
	return b1 + t*(b2-b1)
}

func invLerp(t, a1, a2 float32) float32 {
	return (t - a1) / (a2 - a1)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampUnit(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
