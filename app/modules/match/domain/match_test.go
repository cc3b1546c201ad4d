package matchdomain

import (
	"testing"
	"time"

	"github.com/Black-And-White-Club/bjj-scoreboard/internal/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(t *testing.T, opts ...Option) (*Match, *clock.FakeClock) {
	t.Helper()
	c := clock.NewFakeClock(time.Time{})
	team := NewTeam("Gracie Barra")
	m := NewMatch(
		NewCompetitor("Roger", "Gracie", team),
		NewCompetitor("Marcus", "Almeida", NewTeam("Checkmat")),
		append([]Option{WithClock(c)}, opts...)...,
	)
	return m, c
}

func TestMatch_States(t *testing.T) {
	m, c := newTestMatch(t)
	assert.Equal(t, MatchStateNotStarted, m.State())

	m.Start()
	assert.Equal(t, MatchStateInProgress, m.State())

	c.Advance(2 * time.Second)
	m.Stop()
	assert.Equal(t, MatchStatePaused, m.State())

	require.NoError(t, m.SetWinner(CompetitorOne, WinSubmission))
	assert.Equal(t, MatchStateComplete, m.State())
}

func TestMatch_WinnerCompletesWithTimeLeft(t *testing.T) {
	m, _ := newTestMatch(t)
	m.Start()

	require.NoError(t, m.SetWinner(CompetitorOne, WinSubmission))

	assert.True(t, m.IsComplete())
	assert.Greater(t, m.Timer().RemainingMilliseconds(), int64(0))

	m.ClearWinner()
	assert.False(t, m.IsComplete())
}

func TestMatch_ExpiresAfterDuration(t *testing.T) {
	m, c := newTestMatch(t, WithDuration(5*time.Second))
	m.Start()

	c.Advance(4 * time.Second)
	assert.False(t, m.IsComplete())

	c.Advance(1100 * time.Millisecond)
	assert.Equal(t, int64(0), m.Timer().RemainingMilliseconds())
	assert.True(t, m.IsComplete())
}

func TestMatch_CompetitorsDoNotAliasTeam(t *testing.T) {
	team := NewTeam("Alliance")
	one := NewCompetitor("A", "One", team)
	two := NewCompetitor("B", "Two", team)
	m := NewMatch(one, two)

	one.Team.Name = "Changed"

	got, err := m.Competitor(CompetitorOne)
	require.NoError(t, err)
	assert.Equal(t, "Alliance", got.Team.Name)

	_, err = m.Competitor(CompetitorNumber(0))
	assert.ErrorIs(t, err, ErrInvalidCompetitor)
}

func TestMatch_ScoreAfterCompletionIsAccepted(t *testing.T) {
	m, _ := newTestMatch(t)
	require.NoError(t, m.SetWinner(CompetitorTwo, WinWalkOver))

	require.NoError(t, m.AddScore(NewPoints(2), CompetitorTwo))
	require.NoError(t, m.RemoveScore(NewPoints(1), CompetitorTwo))

	got, _ := m.Score(CompetitorTwo)
	assert.Equal(t, uint8(1), got.Points)
}

func TestMatch_Snapshot(t *testing.T) {
	m, c := newTestMatch(t, WithDuration(10*time.Second))
	m.Start()
	c.Advance(3 * time.Second)
	require.NoError(t, m.AddScore(NewPoints(2), CompetitorOne))
	require.NoError(t, m.AddScore(NewAdvantages(1), CompetitorTwo))

	want := Snapshot{
		CompetitorOne:         NewCompetitor("Roger", "Gracie", NewTeam("Gracie Barra")),
		CompetitorTwo:         NewCompetitor("Marcus", "Almeida", NewTeam("Checkmat")),
		ScoreOne:              CompetitorScore{Points: 2},
		ScoreTwo:              CompetitorScore{Advantages: 1},
		State:                 MatchStateInProgress,
		Running:               true,
		RemainingMilliseconds: 7_000,
	}
	if diff := cmp.Diff(want, m.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch_String(t *testing.T) {
	m, c := newTestMatch(t)
	m.Start()
	c.Advance(30 * time.Second)
	require.NoError(t, m.AddScore(NewPoints(4), CompetitorOne))
	require.NoError(t, m.AddScore(NewPenalties(1), CompetitorTwo))

	want := "Roger Gracie: Pts: 4 - Adv: 0 - Pen: 0\n" +
		"Marcus Almeida: Pts: 0 - Adv: 0 - Pen: 1\n" +
		"04:30\n"
	assert.Equal(t, want, m.String())
}

func TestMatch_Leader(t *testing.T) {
	tests := []struct {
		name   string
		score  func(m *Match)
		want   CompetitorNumber
		wantOK bool
	}{
		{
			name:   "points decide",
			score:  func(m *Match) { _ = m.AddScore(NewPoints(2), CompetitorTwo) },
			want:   CompetitorTwo,
			wantOK: true,
		},
		{
			name: "advantages break a points tie",
			score: func(m *Match) {
				_ = m.AddScore(NewPoints(2), CompetitorOne)
				_ = m.AddScore(NewPoints(2), CompetitorTwo)
				_ = m.AddScore(NewAdvantages(1), CompetitorOne)
			},
			want:   CompetitorOne,
			wantOK: true,
		},
		{
			name: "fewer penalties break an advantage tie",
			score: func(m *Match) {
				_ = m.AddScore(NewPenalties(1), CompetitorOne)
			},
			want:   CompetitorTwo,
			wantOK: true,
		},
		{
			name:  "medical is ignored",
			score: func(m *Match) { _ = m.AddScore(NewMedical(1), CompetitorOne) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMatch(t)
			tt.score(m)
			got, ok := m.Leader()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithDuration(t *testing.T) {
	tests := []struct {
		name        string
		duration    time.Duration
		wantSeconds uint32
	}{
		{name: "whole seconds", duration: 90 * time.Second, wantSeconds: 90},
		{name: "fraction dropped", duration: 2500 * time.Millisecond, wantSeconds: 2},
		{name: "sub-second is one second", duration: 200 * time.Millisecond, wantSeconds: 1},
		{name: "zero keeps default", duration: 0, wantSeconds: DefaultDurationSeconds},
		{name: "negative keeps default", duration: -time.Minute, wantSeconds: DefaultDurationSeconds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMatch(t, WithDuration(tt.duration))
			assert.Equal(t, tt.wantSeconds, m.Timer().DurationSeconds())
			assert.False(t, m.IsComplete())
		})
	}
}
