package wheel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pensteer/pensteer/pkg/config"
	"github.com/pensteer/pensteer/pkg/pen"
)

// fakeDevice records staged values and plays back injected feedback.
type fakeDevice struct {
	wheel    []float32
	horn     []bool
	feedback float32
	hasFF    bool
}

func (d *fakeDevice) SetWheel(v float32)        { d.wheel = append(d.wheel, v) }
func (d *fakeDevice) SetHorn(on bool)           { d.horn = append(d.horn, on) }
func (d *fakeDevice) Feedback() (float32, bool) { return d.feedback, d.hasFF }
func (d *fakeDevice) lastHorn() bool            { return d.horn[len(d.horn)-1] }

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func touching(x, y float32) *pen.Sample {
	return &pen.Sample{X: x, Y: y, Pressure: 100}
}

func lifted(x, y float32) *pen.Sample {
	return &pen.Sample{X: x, Y: y, Pressure: 0}
}

const dt = float32(0.01)

func TestHonkAtCentre(t *testing.T) {
	// Pen down at the centre with the default 0.3 horn radius.
	cfg := testConfig()
	dev := &fakeDevice{}
	w := &Wheel{Angle: 0.5}

	w.Update(cfg, dev, touching(0, 0), dt)

	assert.True(t, w.Honking)
	assert.False(t, w.Dragging)
	assert.Equal(t, float32(0.5), w.Angle, "honking must not move the wheel")
	require.Len(t, dev.horn, 1)
	assert.True(t, dev.lastHorn())
}

func TestHonkHysteresis(t *testing.T) {
	cfg := testConfig()
	dev := &fakeDevice{}
	w := &Wheel{}

	w.Update(cfg, dev, touching(0, 0), dt)
	require.True(t, w.Honking)

	// Slide the pen well outside the horn radius without lifting.
	for _, p := range []*pen.Sample{touching(0.5, 0.5), touching(0.9, 0), touching(0, -0.9)} {
		w.Update(cfg, dev, p, dt)
		assert.True(t, w.Honking, "movement must not cancel the horn")
		assert.False(t, w.Dragging)
	}

	// Lifting releases it.
	w.Update(cfg, dev, lifted(0, -0.9), dt)
	assert.False(t, w.Honking)
	assert.False(t, dev.lastHorn())
}

func TestNoHonkWhileDragging(t *testing.T) {
	cfg := testConfig()
	dev := &fakeDevice{}
	w := &Wheel{}

	w.Update(cfg, dev, touching(0, 0.9), dt)
	require.True(t, w.Dragging)

	// Crossing the centre while dragging must not trigger the horn.
	w.Update(cfg, dev, touching(0, 0.1), dt)
	assert.True(t, w.Dragging)
	assert.False(t, w.Honking)
	assert.Empty(t, dev.horn)
}

func TestFreeSpinDecay(t *testing.T) {
	// inertia=1, friction=25, spring=0: velocity decays monotonically and
	// snaps to exactly zero.
	cfg := testConfig()
	cfg.Inertia = 1
	cfg.Friction = 25
	cfg.Spring = 0
	cfg.MaxTorque = 300

	w := &Wheel{Velocity: 10}
	prev := w.Velocity
	for i := 0; i < 200; i++ {
		w.Update(cfg, nil, nil, dt)
		require.LessOrEqual(t, w.Velocity, prev, "decay must be monotonic")
		require.GreaterOrEqual(t, w.Velocity, float32(0))
		prev = w.Velocity
	}
	assert.Equal(t, float32(0), w.Velocity, "velocity must snap to exactly zero")
}

func TestFreeSpinFeedbackTorque(t *testing.T) {
	cfg := testConfig()
	cfg.Friction = 0
	cfg.Spring = 0
	dev := &fakeDevice{feedback: 0.5, hasFF: true}

	w := &Wheel{}
	w.Update(cfg, dev, nil, dt)

	assert.InDelta(t, 0.5*cfg.MaxTorque, w.FeedbackTorque, 1e-4)
	assert.Greater(t, w.Velocity, float32(0), "positive torque accelerates the wheel")
	require.NotEmpty(t, dev.wheel, "angle is pushed to the device")
}

func TestSpringReturnsToCentre(t *testing.T) {
	cfg := testConfig()
	cfg.Spring = 50
	cfg.Friction = 10

	w := &Wheel{Angle: 1}
	for i := 0; i < 5000; i++ {
		w.Update(cfg, nil, nil, dt)
	}
	assert.InDelta(t, 0, w.Angle, 1e-2, "spring should centre the wheel")
}

func TestDragFollowsPen(t *testing.T) {
	cfg := testConfig()
	dev := &fakeDevice{}
	w := &Wheel{}

	// Start at twelve o'clock, rotate a quarter turn clockwise.
	w.Update(cfg, dev, touching(0, 0.9), dt)
	w.Update(cfg, dev, touching(0.9, 0), dt)

	assert.True(t, w.Dragging)
	assert.InDelta(t, math.Pi/2, w.Angle, 1e-4)
}

func TestDragHandoffVelocity(t *testing.T) {
	cfg := testConfig()
	w := &Wheel{}

	w.Update(cfg, nil, touching(0, 0.9), dt)
	w.Update(cfg, nil, touching(0.9, 0), dt)

	wantVel := (w.Angle - w.PrevAngle) / dt
	assert.Equal(t, wantVel, w.Velocity, "drag velocity is the clamped angular movement over dt")

	// The next free-spin tick must continue from that velocity with no
	// discontinuity.
	angleBefore := w.Angle
	velBefore := w.Velocity
	w.Update(cfg, nil, lifted(0.9, 0), dt)
	accel := (0 - cfg.Friction*velBefore - cfg.Spring*angleBefore) / cfg.Inertia
	assert.InDelta(t, velBefore+accel*dt, w.Velocity, 1e-3)
}

func TestDampingNearCentre(t *testing.T) {
	cfg := testConfig()
	cfg.HornRadius = 0.0 // keep the centre draggable for this test

	runDrag := func(r float32) float32 {
		w := &Wheel{}
		w.Update(cfg, nil, touching(0, r), dt)
		w.Update(cfg, nil, touching(r, 0), dt)
		return w.Angle
	}

	raw := AngleDelta(clockAngle(0, 1), clockAngle(1, 0))

	// Inside the base radius the applied delta is strictly smaller.
	inner := runDrag(0.3)
	assert.Less(t, inner, raw)
	assert.InDelta(t, raw*0.3/cfg.BaseRadius, inner, 1e-4)

	// At or beyond the base radius it is applied in full.
	outer := runDrag(0.9)
	assert.InDelta(t, raw, outer, 1e-4)
}

func TestAngleAlwaysClamped(t *testing.T) {
	cfg := testConfig()
	cfg.Range = 90 // quarter-turn lock to make the clamp easy to hit
	halfRange := cfg.Range * 0.5 * math.Pi / 180

	w := &Wheel{}
	points := []*pen.Sample{
		touching(0, 0.9), touching(0.9, 0), touching(0, -0.9),
		touching(-0.9, 0), touching(0, 0.9), lifted(0, 0.9),
		touching(-0.9, 0.1), touching(0.9, -0.1),
	}
	for _, p := range points {
		w.Update(cfg, nil, p, dt)
		assert.LessOrEqual(t, float32(math.Abs(float64(w.Angle))), halfRange)
	}
}

func TestNonFiniteStateRecovers(t *testing.T) {
	cfg := testConfig()
	w := &Wheel{
		Angle:    float32(math.NaN()),
		Velocity: float32(math.Inf(1)),
	}

	w.Update(cfg, nil, nil, dt)

	assert.False(t, math.IsNaN(float64(w.Angle)))
	assert.False(t, math.IsInf(float64(w.Velocity), 0))
	assert.Equal(t, float32(0), w.Angle)
}

func TestNilDeviceAndNilPen(t *testing.T) {
	cfg := testConfig()
	w := &Wheel{Velocity: 1}
	// Must not panic and must still run physics.
	w.Update(cfg, nil, nil, dt)
	assert.NotEqual(t, float32(1), w.Velocity)
}
