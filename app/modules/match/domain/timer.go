package matchdomain

import (
	"fmt"
	"time"

	"github.com/Black-And-White-Club/bjj-scoreboard/internal/clock"
)

// DefaultDurationSeconds is the regulation length of a match.
const DefaultDurationSeconds uint32 = 300

// MatchTimer is a pausable countdown. Remaining time is computed on demand
// from the closed running intervals plus the open one; nothing ticks.
//
// running is true iff lastRunningAt is set.
type MatchTimer struct {
	clock clock.Clock

	running             bool
	started             bool
	lastRunningAt       *time.Time
	durationSeconds     uint32
	elapsedMilliseconds int64
}

// NewMatchTimer creates a stopped timer of the given length. A nil clock
// falls back to the system clock.
func NewMatchTimer(durationSeconds uint32, c clock.Clock) *MatchTimer {
	if c == nil {
		c = clock.Default
	}
	return &MatchTimer{
		clock:           c,
		durationSeconds: durationSeconds,
	}
}

// Start opens a running interval. Calling Start while already running keeps
// the open interval.
func (t *MatchTimer) Start() {
	if t.running {
		return
	}
	now := t.clock.Now()
	t.running = true
	t.started = true
	t.lastRunningAt = &now
}

// Stop closes the open interval and folds its elapsed time into the total.
func (t *MatchTimer) Stop() {
	t.running = false
	if t.lastRunningAt != nil {
		t.elapsedMilliseconds += t.runningFor()
		t.lastRunningAt = nil
	}
}

// runningFor is the live length of the open interval in milliseconds.
func (t *MatchTimer) runningFor() int64 {
	if t.lastRunningAt == nil {
		return 0
	}
	// a clock that steps backwards counts as no time
	return max(0, t.clock.Since(*t.lastRunningAt).Milliseconds())
}

// RemainingMilliseconds is the countdown value, floored at zero. Closed
// intervals only count in whole seconds.
func (t *MatchTimer) RemainingMilliseconds() int64 {
	total := int64(t.durationSeconds) * 1000
	prior := t.elapsedMilliseconds / 1000 * 1000
	return saturatingSub(saturatingSub(total, prior), t.runningFor())
}

// Remaining is RemainingMilliseconds as a Duration.
func (t *MatchTimer) Remaining() time.Duration {
	return time.Duration(t.RemainingMilliseconds()) * time.Millisecond
}

// IsComplete reports whether the countdown reached zero.
func (t *MatchTimer) IsComplete() bool {
	return t.RemainingMilliseconds() == 0
}

func (t *MatchTimer) Running() bool { return t.running }

// Started reports whether the timer has ever been started.
func (t *MatchTimer) Started() bool { return t.started }

func (t *MatchTimer) DurationSeconds() uint32 { return t.durationSeconds }

// ElapsedMilliseconds is the time consumed by closed intervals.
func (t *MatchTimer) ElapsedMilliseconds() int64 { return t.elapsedMilliseconds }

// String renders the remaining time as MM:SS, rounding partial seconds up so
// 00:00 is only shown once the timer is complete.
func (t *MatchTimer) String() string {
	return FormatClock(t.RemainingMilliseconds())
}

// FormatClock renders milliseconds as MM:SS, rounding up.
func FormatClock(ms int64) string {
	secs := (ms + 999) / 1000
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func saturatingSub(a, b int64) int64 {
	if b >= a {
		return 0
	}
	return a - b
}
