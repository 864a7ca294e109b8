package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsIdentity(t *testing.T) {
	m := Default()
	for _, p := range [][2]float32{
		{0, 0}, {1, 1}, {-1, -1}, {0.5, -0.25}, {-0.875, 0.125},
	} {
		x, y := m.Transform(p[0], p[1])
		assert.Equal(t, p[0], x)
		assert.Equal(t, p[1], y)
	}
}

func TestInputClamped(t *testing.T) {
	m := Default()
	x, y := m.Transform(5, -7)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)
}

func TestInputWindow(t *testing.T) {
	// Only the central half of the tablet is mapped.
	m := Default()
	m.MinInX, m.MaxInX = -0.5, 0.5
	m.MinInY, m.MaxInY = -0.5, 0.5

	x, y := m.Transform(0.25, -0.5)
	assert.InDelta(t, 0.5, x, 1e-6)
	assert.InDelta(t, -1.0, y, 1e-6)
}

func TestInversion(t *testing.T) {
	m := Default()
	m.InvertX = true
	x, y := m.Transform(0.5, 0.5)
	assert.InDelta(t, -0.5, x, 1e-6)
	assert.InDelta(t, 0.5, y, 1e-6)
}

func TestRotation(t *testing.T) {
	m := Default()
	tests := []struct {
		orientation Orientation
		wantX       float32
		wantY       float32
	}{
		{Rotate0, 0.5, 0.25},
		{Rotate90, -0.25, 0.5},
		{Rotate180, -0.5, -0.25},
		{Rotate270, 0.25, -0.5},
	}
	for _, tc := range tests {
		t.Run(tc.orientation.String(), func(t *testing.T) {
			m.Orientation = tc.orientation
			x, y := m.Transform(0.5, 0.25)
			assert.InDelta(t, tc.wantX, x, 1e-6)
			assert.InDelta(t, tc.wantY, y, 1e-6)
		})
	}
}

func TestOutputClamped(t *testing.T) {
	m := Default()
	m.MinOutX, m.MaxOutX = -2, 2
	x, _ := m.Transform(1, 0)
	assert.Equal(t, float32(1), x)
}
