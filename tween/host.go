package tween

import "time"

// Target is the visual object a tween animates. Transform must return the
// same non-nil record on every call.
type Target interface {
	ComputedValue(property string) (Value, error)
	SetStyle(property, value string) error
	Transform() *Transform
}

// Clock provides monotonic time as an offset from an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

type systemClock struct {
	origin time.Time
}

// NewSystemClock returns a Clock measuring from the moment it was created.
func NewSystemClock() Clock {
	return systemClock{origin: time.Now()}
}

func (c systemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// FrameSource invokes a callback once on the next display refresh.
type FrameSource interface {
	RequestFrame(fn func(now time.Duration))
}

// ManualFrames is a FrameSource stepped explicitly by its owner, for offline
// rendering and tests.
type ManualFrames struct {
	pending []func(time.Duration)
}

func (m *ManualFrames) RequestFrame(fn func(now time.Duration)) {
	m.pending = append(m.pending, fn)
}

// Pending returns the number of outstanding frame requests.
func (m *ManualFrames) Pending() int {
	return len(m.pending)
}

// Advance runs the callbacks requested before the call and returns how many
// ran. Callbacks requested while advancing wait for the next Advance.
func (m *ManualFrames) Advance(now time.Duration) int {
	batch := m.pending
	m.pending = nil
	for _, fn := range batch {
		fn(now)
	}
	return len(batch)
}
