// Package device programs the virtual force-feedback controller that games
// see.  Backends register themselves at init time; platforms without a
// backend still get the always-available dummy.
package device

import (
	"math"

	"github.com/pkg/errors"

	"github.com/pensteer/pensteer/pkg/config"
	"github.com/pensteer/pensteer/pkg/linuxinput"
)

// Interface is the capability set the controller drives each tick.
type Interface interface {
	// SetWheel stages a normalized wheel angle in [-1, 1].  The value is
	// not written until Apply.
	SetWheel(angle float32)
	// SetHorn stages the horn button state.
	SetHorn(on bool)
	// Apply flushes staged values in one batched write, followed by a
	// single sync report.  With nothing staged it writes nothing.
	Apply() error
	// HandleEvents drains pending force-feedback requests from the
	// kernel.  It never blocks.
	HandleEvents()
	// Feedback returns the current force-feedback magnitude in [-1, 1].
	// ok is false if the backend has no feedback to report.
	Feedback() (value float32, ok bool)
	// Close destroys the kernel device.  It must complete before a
	// replacement device is constructed.
	Close() error
}

var (
	ErrResolutionTooHigh = errors.New("device: resolution does not fit the 16-bit axis range")
	ErrNameTooLong       = errors.New("device: name exceeds the uinput limit")
)

// Builder constructs one backend kind.
type Builder func(*config.Config) (Interface, error)

var builders = map[config.DeviceKind]Builder{}

func register(kind config.DeviceKind, b Builder) {
	builders[kind] = b
}

// Create builds the device selected by the config.  Unknown or unregistered
// kinds (a backend missing on this platform) fail construction; the kind
// "none" always yields the dummy.
func Create(cfg *config.Config) (Interface, error) {
	if cfg.Device == "" || cfg.Device == config.DeviceNone {
		return Dummy{}, nil
	}
	b, ok := builders[cfg.Device]
	if !ok {
		return nil, errors.Errorf("device: backend %q is not available on this platform", cfg.Device)
	}
	return b(cfg)
}

// validate rejects configurations the kernel interface cannot represent.
func validate(cfg *config.Config) error {
	if cfg.DeviceResolution > math.MaxUint16 {
		return errors.Wrapf(ErrResolutionTooHigh, "resolution %d", cfg.DeviceResolution)
	}
	// One byte is reserved for the terminating NUL.
	if len(cfg.DeviceName) >= linuxinput.UinputMaxNameSize {
		return errors.Wrapf(ErrNameTooLong, "name %q", cfg.DeviceName)
	}
	return nil
}
