package source

import "github.com/pensteer/pensteer/pkg/pen"

// Dummy is the no-op source used when input is disabled.
type Dummy struct{}

func (Dummy) Poll() (pen.Sample, bool) { return pen.Sample{}, false }

func (Dummy) Close() error { return nil }

var _ Interface = Dummy{}
