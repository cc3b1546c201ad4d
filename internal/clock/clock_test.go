package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock_Advance(t *testing.T) {
	c := NewFakeClock(time.Time{})
	start := c.Now()

	c.Advance(1500 * time.Millisecond)

	assert.Equal(t, 1500*time.Millisecond, c.Since(start))
	assert.Equal(t, start.Add(1500*time.Millisecond), c.Now())
}

func TestFakeClock_NowFn(t *testing.T) {
	fixed := time.Date(2030, time.March, 3, 0, 0, 0, 0, time.UTC)
	c := &FakeClock{NowFn: func() time.Time { return fixed }}

	assert.Equal(t, fixed, c.Now())
	assert.Equal(t, 2*time.Second, c.Since(fixed.Add(-2*time.Second)))
}

func TestSystemClock_Since(t *testing.T) {
	var c Clock = SystemClock{}
	start := c.Now()
	assert.GreaterOrEqual(t, c.Since(start), time.Duration(0))
}
