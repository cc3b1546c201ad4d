package matchevents

import (
	"time"

	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	"github.com/google/uuid"
)

// Topic names for the match module.
const (
	MatchStarted       = "match.started"
	MatchStopped       = "match.stopped"
	MatchScoreChanged  = "match.score.changed"
	MatchWinnerSet     = "match.winner.set"
	MatchWinnerCleared = "match.winner.cleared"
	MatchCompleted     = "match.completed"
)

// Topics lists every match topic in publish order of a typical bout.
var Topics = []string{
	MatchStarted,
	MatchStopped,
	MatchScoreChanged,
	MatchWinnerSet,
	MatchWinnerCleared,
	MatchCompleted,
}

// Metadata keys set on every match message.
const (
	MetadataMatchID = "match_id"
	MetadataTopic   = "topic"
)

// ScoreOperation tells whether a score change added or removed.
type ScoreOperation string

const (
	ScoreAdded   ScoreOperation = "add"
	ScoreRemoved ScoreOperation = "remove"
)

// CompletionReason tells what ended a match.
type CompletionReason string

const (
	CompletedByTime   CompletionReason = "time_expired"
	CompletedByWinner CompletionReason = "winner_declared"
)

// MatchEventPayload is carried by every match event.
type MatchEventPayload struct {
	MatchID    uuid.UUID            `json:"match_id"`
	OccurredAt time.Time            `json:"occurred_at"`
	Snapshot   matchdomain.Snapshot `json:"snapshot"`
}

type MatchStartedPayload struct {
	MatchEventPayload
}

type MatchStoppedPayload struct {
	MatchEventPayload
}

type MatchScoreChangedPayload struct {
	MatchEventPayload
	Competitor matchdomain.CompetitorNumber `json:"competitor"`
	Points     matchdomain.Points           `json:"points"`
	Operation  ScoreOperation               `json:"operation"`
}

type MatchWinnerSetPayload struct {
	MatchEventPayload
	Winner matchdomain.Winner `json:"winner"`
}

type MatchWinnerClearedPayload struct {
	MatchEventPayload
}

type MatchCompletedPayload struct {
	MatchEventPayload
	Reason CompletionReason    `json:"reason"`
	Winner *matchdomain.Winner `json:"winner,omitempty"`
}
