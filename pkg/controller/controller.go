// Package controller runs the fixed-rate loop that ties the pen source,
// the wheel simulator and the virtual device together.
package controller

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pensteer/pensteer/pkg/device"
	"github.com/pensteer/pensteer/pkg/source"
	"github.com/pensteer/pensteer/pkg/state"
)

type Controller struct {
	st *state.State

	// Constructor hooks, swapped out by tests.
	newSource source.Builder
	newDevice device.Builder

	freq   uint32
	period time.Duration
}

func New(st *state.State) *Controller {
	return &Controller{
		st:        st,
		newSource: source.Create,
		newDevice: device.Create,
	}
}

// Run ticks forever at the configured frequency.  It never returns; no
// failure inside a tick is allowed to stop the loop.  Deadlines advance by
// exactly one period per tick, so a slow tick makes the loop fire
// back-to-back to catch up instead of drifting.
func (c *Controller) Run() {
	next := time.Now()
	for {
		c.st.Lock()
		c.tick()
		c.updatePeriod()
		c.st.Unlock()

		// Sleep outside the lock so mutators are never starved for more
		// than one tick's work.
		next = next.Add(c.period)
		time.Sleep(time.Until(next))
	}
}

// updatePeriod recomputes the tick period when the configured frequency
// changes.  The wheel's angle and velocity are untouched.
func (c *Controller) updatePeriod() {
	freq := c.st.Config.UpdateFrequency
	if freq == 0 {
		freq = 1
	}
	if freq == c.freq {
		return
	}
	c.freq = freq
	c.period = time.Second / time.Duration(freq)
	log.Debug().Uint32("hz", freq).Dur("period", c.period).Msg("Tick period set")
}

// tick runs one scheduler step.  Caller holds the state lock.
func (c *Controller) tick() {
	st := c.st
	cfg := &st.Config

	if st.ResetSource {
		// Clear the flag first: a failed construction leaves the source
		// absent until the next explicit reset, with no automatic retry.
		st.ResetSource = false
		if st.Source != nil {
			if err := st.Source.Close(); err != nil {
				log.Error().Err(err).Msg("Closing pen source")
			}
			st.Source = nil
		}
		st.Pen = nil
		src, err := c.newSource(cfg)
		if err != nil {
			c.fail(err)
		} else {
			st.Source = src
		}
	}

	if st.ResetDevice {
		st.ResetDevice = false
		// The old device must be fully destroyed before a replacement
		// exists, so two virtual controllers never coexist.
		if st.Device != nil {
			if err := st.Device.Close(); err != nil {
				log.Error().Err(err).Msg("Closing virtual device")
			}
			st.Device = nil
		}
		dev, err := c.newDevice(cfg)
		if err != nil {
			c.fail(err)
		} else {
			st.Device = dev
		}
	}

	if st.Source != nil {
		if s, ok := st.Source.Poll(); ok {
			s.X, s.Y = cfg.Map.Transform(s.X, s.Y)
			st.Pen = &s
		}
		// No new sample: the previous one stays in effect.
	}

	p := st.PenOverride
	if p == nil {
		p = st.Pen
	}
	st.Wheel.Update(cfg, st.Device, p, float32(c.dt().Seconds()))

	if st.Device != nil {
		if err := st.Device.Apply(); err != nil {
			// Abort the rest of the tick; the next period retries.
			c.fail(err)
			return
		}
		st.Device.HandleEvents()
	}
}

// dt is the simulation step for the current tick.
func (c *Controller) dt() time.Duration {
	if c.period == 0 {
		freq := c.st.Config.UpdateFrequency
		if freq == 0 {
			freq = 1
		}
		return time.Second / time.Duration(freq)
	}
	return c.period
}

// fail records an error for the UI to display and logs it.  The loop
// itself carries on.
func (c *Controller) fail(err error) {
	c.st.LastError = err
	log.Error().Err(err).Msg("Controller tick failed")
}
