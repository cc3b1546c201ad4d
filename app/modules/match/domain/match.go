package matchdomain

import (
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/bjj-scoreboard/internal/clock"
)

// MatchState is derived from the timer and the winner record; it is never
// stored.
type MatchState string

const (
	MatchStateNotStarted MatchState = "NOT_STARTED"
	MatchStateInProgress MatchState = "IN_PROGRESS"
	MatchStatePaused     MatchState = "PAUSED"
	MatchStateComplete   MatchState = "COMPLETE"
)

// Match is one bout between two competitors. A Match is owned by a single
// caller and is not safe for concurrent use.
type Match struct {
	competitorOne Competitor
	competitorTwo Competitor
	score         MatchScore
	timer         *MatchTimer
}

type matchOptions struct {
	durationSeconds uint32
	clock           clock.Clock
}

// Option configures a new Match.
type Option func(*matchOptions)

// WithDuration sets the match length. Sub-second parts are dropped, but a
// positive duration is never shorter than one second.
func WithDuration(d time.Duration) Option {
	return func(o *matchOptions) {
		if d > 0 {
			o.durationSeconds = max(1, uint32(d/time.Second))
		}
	}
}

// WithClock sets the timer's time source.
func WithClock(c clock.Clock) Option {
	return func(o *matchOptions) {
		o.clock = c
	}
}

// NewMatch creates a match that has not started.
func NewMatch(competitorOne, competitorTwo Competitor, opts ...Option) *Match {
	o := matchOptions{
		durationSeconds: DefaultDurationSeconds,
		clock:           clock.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Match{
		competitorOne: competitorOne,
		competitorTwo: competitorTwo,
		timer:         NewMatchTimer(o.durationSeconds, o.clock),
	}
}

func (m *Match) Start() { m.timer.Start() }
func (m *Match) Stop()  { m.timer.Stop() }

// IsComplete reports whether time ran out or a winner was declared.
func (m *Match) IsComplete() bool {
	return m.timer.IsComplete() || m.score.IsWinner()
}

func (m *Match) AddScore(points Points, n CompetitorNumber) error {
	return m.score.Add(points, n)
}

func (m *Match) RemoveScore(points Points, n CompetitorNumber) error {
	return m.score.Subtract(points, n)
}

func (m *Match) SetWinner(n CompetitorNumber, method WinMethod) error {
	return m.score.SetWinner(n, method)
}

func (m *Match) ClearWinner() { m.score.ClearWinner() }

func (m *Match) Winner() (Winner, bool) { return m.score.Winner() }

// Competitor returns the competitor on side n.
func (m *Match) Competitor(n CompetitorNumber) (Competitor, error) {
	switch n {
	case CompetitorOne:
		return m.competitorOne, nil
	case CompetitorTwo:
		return m.competitorTwo, nil
	}
	return Competitor{}, fmt.Errorf("%w: %d", ErrInvalidCompetitor, uint8(n))
}

// Score returns the tally for side n.
func (m *Match) Score(n CompetitorNumber) (CompetitorScore, error) {
	return m.score.Competitor(n)
}

func (m *Match) Timer() *MatchTimer { return m.timer }

func (m *Match) State() MatchState {
	switch {
	case m.IsComplete():
		return MatchStateComplete
	case m.timer.Running():
		return MatchStateInProgress
	case m.timer.Started():
		return MatchStatePaused
	default:
		return MatchStateNotStarted
	}
}

// Snapshot is a point-in-time copy of a match for display collaborators.
type Snapshot struct {
	CompetitorOne         Competitor      `json:"competitor_one"`
	CompetitorTwo         Competitor      `json:"competitor_two"`
	ScoreOne              CompetitorScore `json:"score_one"`
	ScoreTwo              CompetitorScore `json:"score_two"`
	Winner                *Winner         `json:"winner,omitempty"`
	State                 MatchState      `json:"state"`
	Running               bool            `json:"running"`
	RemainingMilliseconds int64           `json:"remaining_ms"`
}

// Snapshot reads the timer once so every field agrees on the same instant.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		CompetitorOne:         m.competitorOne,
		CompetitorTwo:         m.competitorTwo,
		ScoreOne:              m.score.competitorOne,
		ScoreTwo:              m.score.competitorTwo,
		Running:               m.timer.Running(),
		RemainingMilliseconds: m.timer.RemainingMilliseconds(),
	}
	if w, ok := m.score.Winner(); ok {
		s.Winner = &w
	}

	switch {
	case s.RemainingMilliseconds == 0 || s.Winner != nil:
		s.State = MatchStateComplete
	case s.Running:
		s.State = MatchStateInProgress
	case m.timer.Started():
		s.State = MatchStatePaused
	default:
		s.State = MatchStateNotStarted
	}
	return s
}

// String renders one line per competitor followed by the remaining time.
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", s.CompetitorOne.Name(), s.ScoreOne)
	fmt.Fprintf(&b, "%s: %s\n", s.CompetitorTwo.Name(), s.ScoreTwo)
	fmt.Fprintf(&b, "%s\n", FormatClock(s.RemainingMilliseconds))
	return b.String()
}

func (m *Match) String() string {
	return m.Snapshot().String()
}

// Leader returns the side ahead on the scoresheet: more points, then more
// advantages, then fewer penalties. ok is false on a tie.
func (m *Match) Leader() (CompetitorNumber, bool) {
	one, two := m.score.competitorOne, m.score.competitorTwo
	switch {
	case one.Points != two.Points:
		return pick(one.Points > two.Points), true
	case one.Advantages != two.Advantages:
		return pick(one.Advantages > two.Advantages), true
	case one.Penalties != two.Penalties:
		return pick(one.Penalties < two.Penalties), true
	}
	return 0, false
}

func pick(firstAhead bool) CompetitorNumber {
	if firstAhead {
		return CompetitorOne
	}
	return CompetitorTwo
}
