package device

// Dummy is the no-op backend used when output is disabled or the platform
// has no real backend.
type Dummy struct{}

func (Dummy) SetWheel(float32) {}

func (Dummy) SetHorn(bool) {}

func (Dummy) Apply() error { return nil }

func (Dummy) HandleEvents() {}

func (Dummy) Feedback() (float32, bool) { return 0, false }

func (Dummy) Close() error { return nil }

var _ Interface = Dummy{}
