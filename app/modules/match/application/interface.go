package matchservice

import (
	"context"

	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	"github.com/google/uuid"
)

// Service defines the interface for the MatchService.
type Service interface {
	ID() uuid.UUID

	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	AddScore(ctx context.Context, points matchdomain.Points, competitor matchdomain.CompetitorNumber) error
	RemoveScore(ctx context.Context, points matchdomain.Points, competitor matchdomain.CompetitorNumber) error

	SetWinner(ctx context.Context, competitor matchdomain.CompetitorNumber, method matchdomain.WinMethod) error
	ClearWinner(ctx context.Context) error
	AwardOnPoints(ctx context.Context) (matchdomain.Winner, bool, error)

	// IsComplete polls completion and publishes the completion event the
	// first time it is observed.
	IsComplete(ctx context.Context) bool

	Snapshot(ctx context.Context) matchdomain.Snapshot
	Render(ctx context.Context) string
}
