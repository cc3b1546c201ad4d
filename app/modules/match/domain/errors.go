package matchdomain

import "errors"

// Domain errors. The match operations are otherwise total; these only
// reject selector values outside their enumerations.
var (
	// ErrInvalidCompetitor indicates a CompetitorNumber other than One or Two.
	ErrInvalidCompetitor = errors.New("invalid competitor number")

	// ErrInvalidPointsKind indicates a Points value with an unknown kind.
	ErrInvalidPointsKind = errors.New("invalid points kind")

	// ErrInvalidWinMethod indicates an unknown WinMethod.
	ErrInvalidWinMethod = errors.New("invalid win method")
)
