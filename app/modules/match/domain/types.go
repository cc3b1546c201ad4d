package matchdomain

import (
	"fmt"
	"strings"
)

// CompetitorNumber selects a side of the match.
type CompetitorNumber uint8

const (
	CompetitorOne CompetitorNumber = iota + 1
	CompetitorTwo
)

// Valid reports whether n is One or Two.
func (n CompetitorNumber) Valid() bool {
	return n == CompetitorOne || n == CompetitorTwo
}

func (n CompetitorNumber) String() string {
	switch n {
	case CompetitorOne:
		return "ONE"
	case CompetitorTwo:
		return "TWO"
	default:
		return fmt.Sprintf("CompetitorNumber(%d)", uint8(n))
	}
}

// PointsKind names the tally a Points value targets.
type PointsKind uint8

const (
	KindPoints PointsKind = iota + 1
	KindAdvantages
	KindPenalties
	KindMedical
)

func (k PointsKind) String() string {
	switch k {
	case KindPoints:
		return "POINTS"
	case KindAdvantages:
		return "ADVANTAGES"
	case KindPenalties:
		return "PENALTIES"
	case KindMedical:
		return "MEDICAL"
	default:
		return fmt.Sprintf("PointsKind(%d)", uint8(k))
	}
}

// ParsePointsKind maps a kind name or its display abbreviation to its value.
func ParsePointsKind(s string) (PointsKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "points", "pts":
		return KindPoints, nil
	case "advantages", "adv":
		return KindAdvantages, nil
	case "penalties", "pen":
		return KindPenalties, nil
	case "medical", "med":
		return KindMedical, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPointsKind, s)
}

// Points is an amount of one kind of score.
type Points struct {
	Kind   PointsKind `json:"kind"`
	Amount uint8      `json:"amount"`
}

func NewPoints(amount uint8) Points     { return Points{Kind: KindPoints, Amount: amount} }
func NewAdvantages(amount uint8) Points { return Points{Kind: KindAdvantages, Amount: amount} }
func NewPenalties(amount uint8) Points  { return Points{Kind: KindPenalties, Amount: amount} }
func NewMedical(amount uint8) Points    { return Points{Kind: KindMedical, Amount: amount} }

func (p Points) String() string {
	return fmt.Sprintf("%s(%d)", p.Kind, p.Amount)
}

// WinMethod is how a match was decided.
type WinMethod string

const (
	WinSubmission       WinMethod = "SUBMISSION"
	WinPoints           WinMethod = "POINTS"
	WinRefDecision      WinMethod = "REF_DECISION"
	WinDisqualification WinMethod = "DISQUALIFICATION"
	WinWalkOver         WinMethod = "WALK_OVER"
	WinDoctorStoppage   WinMethod = "DOCTOR_STOPPAGE"
)

// Valid reports whether m is one of the known methods.
func (m WinMethod) Valid() bool {
	switch m {
	case WinSubmission, WinPoints, WinRefDecision, WinDisqualification, WinWalkOver, WinDoctorStoppage:
		return true
	}
	return false
}

// Winner is the explicit conclusion of a match.
type Winner struct {
	Competitor CompetitorNumber `json:"competitor"`
	Method     WinMethod        `json:"method"`
}
