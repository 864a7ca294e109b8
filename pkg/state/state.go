// Package state holds the one record shared between the controller loop
// and external mutators (CLI, UI).  Everything is guarded by a single lock:
// the controller holds it for one tick's work, mutators take it per edit.
// Reset requests are level-triggered flags observed at the start of the
// next tick, never mid-tick.
package state

import (
	"sync"

	"github.com/pensteer/pensteer/pkg/config"
	"github.com/pensteer/pensteer/pkg/device"
	"github.com/pensteer/pensteer/pkg/pen"
	"github.com/pensteer/pensteer/pkg/source"
	"github.com/pensteer/pensteer/pkg/wheel"
)

type State struct {
	sync.Mutex

	Wheel wheel.Wheel
	// Pen is the last sample received from the source, already mapped
	// into wheel space; held over across ticks with no new sample.
	Pen *pen.Sample
	// PenOverride, when set, takes precedence over the source.
	PenOverride *pen.Sample

	Source source.Interface
	Device device.Interface

	Config config.Config

	// LastError is the most recent controller failure, kept for display
	// until taken.
	LastError error

	ResetSource bool
	ResetDevice bool
}

// New builds a State that will construct its source and device on the
// first controller tick.
func New(cfg config.Config) *State {
	return &State{
		Config:      cfg,
		ResetSource: true,
		ResetDevice: true,
	}
}

// Status is a display snapshot of the live wheel.
type Status struct {
	Angle          float32
	Velocity       float32
	FeedbackTorque float32
	Honking        bool
	Dragging       bool
	SourceActive   bool
	DeviceActive   bool
}

func (s *State) Snapshot() Status {
	s.Lock()
	defer s.Unlock()
	return Status{
		Angle:          s.Wheel.Angle,
		Velocity:       s.Wheel.Velocity,
		FeedbackTorque: s.Wheel.FeedbackTorque,
		Honking:        s.Wheel.Honking,
		Dragging:       s.Wheel.Dragging,
		SourceActive:   s.Source != nil,
		DeviceActive:   s.Device != nil,
	}
}

// TakeError returns and clears the last error, or nil.
func (s *State) TakeError() error {
	s.Lock()
	defer s.Unlock()
	err := s.LastError
	s.LastError = nil
	return err
}

// RequestReset asks the controller to rebuild the source and/or device on
// its next tick.
func (s *State) RequestReset(resetSource, resetDevice bool) {
	s.Lock()
	defer s.Unlock()
	s.ResetSource = s.ResetSource || resetSource
	s.ResetDevice = s.ResetDevice || resetDevice
}

// UpdateConfig edits the configuration in place.  The controller sees the
// new snapshot on its next tick.
func (s *State) UpdateConfig(edit func(*config.Config)) {
	s.Lock()
	defer s.Unlock()
	edit(&s.Config)
}

// SetPenOverride pins a synthetic pen sample (nil clears it).
func (s *State) SetPenOverride(p *pen.Sample) {
	s.Lock()
	defer s.Unlock()
	s.PenOverride = p
}

// Shutdown tears down the source and device.  The device handle must be
// destroyed before the process exits so no orphaned virtual controller is
// left behind.
func (s *State) Shutdown() {
	s.Lock()
	defer s.Unlock()
	if s.Source != nil {
		s.Source.Close()
		s.Source = nil
	}
	if s.Device != nil {
		s.Device.Close()
		s.Device = nil
	}
}
