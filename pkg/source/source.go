// Package source produces pen samples from a transport: UDP datagrams, a
// websocket bridge or a local evdev tablet.  Backends register themselves
// at init time so platform-specific ones simply do not exist elsewhere.
package source

import (
	"github.com/pkg/errors"

	"github.com/pensteer/pensteer/pkg/config"
	"github.com/pensteer/pensteer/pkg/pen"
)

// Interface is a pen sample producer.
type Interface interface {
	// Poll returns the newest pending sample without blocking.  ok is
	// false when no new sample has arrived since the last call; callers
	// are expected to hold the previous value.
	Poll() (s pen.Sample, ok bool)
	Close() error
}

// Builder constructs one source kind.
type Builder func(*config.Config) (Interface, error)

var builders = map[config.SourceKind]Builder{}

func register(kind config.SourceKind, b Builder) {
	builders[kind] = b
}

// Create builds the source selected by the config.  The kind "none" always
// yields the dummy; kinds without a registered backend on this platform
// fail construction.
func Create(cfg *config.Config) (Interface, error) {
	if cfg.Source == "" || cfg.Source == config.SourceNone {
		return Dummy{}, nil
	}
	b, ok := builders[cfg.Source]
	if !ok {
		return nil, errors.Errorf("source: backend %q is not available on this platform", cfg.Source)
	}
	return b(cfg)
}

// Tablet describes one enumerable pen device.
type Tablet struct {
	Path string
	Name string
}
