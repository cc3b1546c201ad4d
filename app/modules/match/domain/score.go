package matchdomain

import (
	"fmt"
	"math"
)

// CompetitorScore is the running tally for one side.
type CompetitorScore struct {
	Points     uint8 `json:"points"`
	Advantages uint8 `json:"advantages"`
	Penalties  uint8 `json:"penalties"`
	Medical    uint8 `json:"medical"`
}

func (s CompetitorScore) String() string {
	return fmt.Sprintf("Pts: %d - Adv: %d - Pen: %d", s.Points, s.Advantages, s.Penalties)
}

// field returns the counter a kind targets.
func (s *CompetitorScore) field(kind PointsKind) (*uint8, error) {
	switch kind {
	case KindPoints:
		return &s.Points, nil
	case KindAdvantages:
		return &s.Advantages, nil
	case KindPenalties:
		return &s.Penalties, nil
	case KindMedical:
		return &s.Medical, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidPointsKind, uint8(kind))
}

// MatchScore holds both tallies and the optional winner.
type MatchScore struct {
	competitorOne CompetitorScore
	competitorTwo CompetitorScore
	winner        *Winner
}

func (m *MatchScore) competitor(n CompetitorNumber) (*CompetitorScore, error) {
	switch n {
	case CompetitorOne:
		return &m.competitorOne, nil
	case CompetitorTwo:
		return &m.competitorTwo, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidCompetitor, uint8(n))
}

// Competitor returns a copy of one side's tally.
func (m *MatchScore) Competitor(n CompetitorNumber) (CompetitorScore, error) {
	s, err := m.competitor(n)
	if err != nil {
		return CompetitorScore{}, err
	}
	return *s, nil
}

// Add increases the targeted counter, clamping at 255.
func (m *MatchScore) Add(points Points, n CompetitorNumber) error {
	f, err := m.target(points, n)
	if err != nil {
		return err
	}
	*f = saturatingAddU8(*f, points.Amount)
	return nil
}

// Subtract decreases the targeted counter, flooring at 0.
func (m *MatchScore) Subtract(points Points, n CompetitorNumber) error {
	f, err := m.target(points, n)
	if err != nil {
		return err
	}
	*f = saturatingSubU8(*f, points.Amount)
	return nil
}

func (m *MatchScore) target(points Points, n CompetitorNumber) (*uint8, error) {
	s, err := m.competitor(n)
	if err != nil {
		return nil, err
	}
	return s.field(points.Kind)
}

// SetWinner records the winner, overwriting any previous record.
func (m *MatchScore) SetWinner(n CompetitorNumber, method WinMethod) error {
	if !n.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidCompetitor, uint8(n))
	}
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidWinMethod, method)
	}
	m.winner = &Winner{Competitor: n, Method: method}
	return nil
}

func (m *MatchScore) ClearWinner() {
	m.winner = nil
}

func (m *MatchScore) IsWinner() bool {
	return m.winner != nil
}

// Winner returns the winner record, if any.
func (m *MatchScore) Winner() (Winner, bool) {
	if m.winner == nil {
		return Winner{}, false
	}
	return *m.winner, true
}

func saturatingAddU8(a, b uint8) uint8 {
	if b > math.MaxUint8-a {
		return math.MaxUint8
	}
	return a + b
}

func saturatingSubU8(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}
