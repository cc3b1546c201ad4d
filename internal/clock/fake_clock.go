package clock

import (
	"sync"
	"time"
)

// FakeClock is a fake implementation of the Clock interface.
// Time only moves when Advance is called, unless NowFn is set.
type FakeClock struct {
	NowFn func() time.Time

	mu      sync.Mutex
	current time.Time
}

// NewFakeClock creates a FakeClock anchored at t. If t is the zero value,
// a fixed reference instant is used.
func NewFakeClock(t time.Time) *FakeClock {
	if t.IsZero() {
		t = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	}
	return &FakeClock{current: t}
}

func (f *FakeClock) Now() time.Time {
	if f.NowFn != nil {
		return f.NowFn()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *FakeClock) Since(t time.Time) time.Duration {
	return f.Now().Sub(t)
}

// Advance moves the clock forward by d.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = f.current.Add(d)
}
