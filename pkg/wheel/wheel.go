// Package wheel simulates the steering wheel: a state machine over the pen
// (free-spinning, dragging, honking) plus the inertia/friction/spring
// physics that turn device feedback into wheel motion.
package wheel

import (
	"math"

	"github.com/pensteer/pensteer/pkg/config"
	"github.com/pensteer/pensteer/pkg/pen"
)

// Velocities below this snap to zero so friction can actually stop the
// wheel instead of decaying forever.
const velocitySnap = 1e-5

// Device is the slice of the virtual device the simulator drives.  A nil
// Device is legal; the physics still run so the wheel can return to centre.
type Device interface {
	// SetWheel stages a normalized wheel angle in [-1, 1].
	SetWheel(angle float32)
	// SetHorn stages the horn button state.
	SetHorn(on bool)
	// Feedback returns the current force-feedback magnitude in [-1, 1].
	// ok is false if the device has no feedback to report.
	Feedback() (value float32, ok bool)
}

// Wheel is the simulator state.  It is mutated once per controller tick and
// is never reset, except that non-finite angle/velocity values are zeroed.
type Wheel struct {
	// Angle in radians, clamped to ±half-range.
	Angle    float32
	Velocity float32
	// FeedbackTorque is the torque applied by the game last tick, for
	// display.
	FeedbackTorque float32

	Honking  bool
	Dragging bool

	PrevX     float32
	PrevY     float32
	PrevAngle float32
}

// Update advances the wheel by one tick of dt seconds.  p is the current
// pen sample, or nil if no sample has ever arrived.
func (w *Wheel) Update(cfg *config.Config, dev Device, p *pen.Sample, dt float32) {
	halfRange := cfg.Range * 0.5 * math.Pi / 180

	if p == nil || !p.Touching(cfg.PressureThreshold) {
		// Pen lifted.
		if w.Honking && dev != nil {
			dev.SetHorn(false)
		}
		w.Honking = false
		w.Dragging = false
		w.freeSpin(cfg, dev, dt, halfRange)
		if p != nil {
			w.PrevX, w.PrevY = p.X, p.Y
		}
		return
	}

	if w.Honking {
		// Hysteresis: moving the pen does not cancel a horn press, only
		// lifting it does.
		return
	}

	dist := float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y)))
	if !w.Dragging && dist <= cfg.HornRadius {
		w.Honking = true
		if dev != nil {
			dev.SetHorn(true)
		}
		return
	}

	w.drag(cfg, dev, p, dist, dt, halfRange)
}

// freeSpin runs the wheel physics while the pen is not dragging it.
func (w *Wheel) freeSpin(cfg *config.Config, dev Device, dt, halfRange float32) {
	if badFloat(w.Velocity) {
		w.Velocity = 0
	}
	if badFloat(w.Angle) {
		w.Angle = 0
	}

	var feedback float32
	if dev != nil {
		if f, ok := dev.Feedback(); ok {
			feedback = f
		}
	}
	w.FeedbackTorque = feedback * cfg.MaxTorque

	netTorque := w.FeedbackTorque - cfg.Friction*w.Velocity - cfg.Spring*w.Angle
	w.Velocity += netTorque / cfg.Inertia * dt
	if math.Abs(float64(w.Velocity)) < velocitySnap {
		w.Velocity = 0
	}

	w.PrevAngle = w.Angle
	w.Angle = ClampSymmetric(halfRange, w.Angle+w.Velocity*dt)
	if dev != nil {
		dev.SetWheel(normalize(w.Angle, halfRange))
	}
}

// drag rotates the wheel to follow the pen around the centre.
func (w *Wheel) drag(cfg *config.Config, dev Device, p *pen.Sample, dist, dt, halfRange float32) {
	prevTheta := clockAngle(w.PrevX, w.PrevY)
	theta := clockAngle(p.X, p.Y)
	delta := DampDelta(AngleDelta(prevTheta, theta), dist, cfg.BaseRadius)

	w.PrevAngle = w.Angle
	w.Angle = ClampSymmetric(halfRange, w.Angle+delta)
	// Derive velocity from the actual (clamped) movement so there is no
	// discontinuity when the drag ends and free-spin takes over.
	w.Velocity = (w.Angle - w.PrevAngle) / dt

	if dev != nil {
		dev.SetWheel(normalize(w.Angle, halfRange))
	}

	w.PrevX, w.PrevY = p.X, p.Y
	w.Dragging = true
}

func normalize(angle, halfRange float32) float32 {
	if halfRange == 0 {
		return 0
	}
	return angle / halfRange
}
