package matchservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	matchevents "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain/events"
	"github.com/Black-And-White-Club/bjj-scoreboard/internal/eventbus"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CompletionPolicy decides what happens to scoring requests once a match is
// complete.
type CompletionPolicy string

const (
	// PolicyReject refuses AddScore, RemoveScore and Start on a completed match.
	PolicyReject CompletionPolicy = "reject"
	// PolicyAccept applies them silently.
	PolicyAccept CompletionPolicy = "accept"
)

// ParseCompletionPolicy validates a policy name.
func ParseCompletionPolicy(s string) (CompletionPolicy, error) {
	switch CompletionPolicy(s) {
	case PolicyReject, PolicyAccept:
		return CompletionPolicy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Publisher is the part of the event bus the service needs.
type Publisher interface {
	Publish(topic string, messages ...*message.Message) error
}

// MatchService implements the Service interface. It owns one Match and
// serializes every access to it.
type MatchService struct {
	mu        sync.Mutex
	id        uuid.UUID
	match     *matchdomain.Match
	policy    CompletionPolicy
	publisher Publisher
	logger    *slog.Logger
	metrics   MatchMetrics
	tracer    trace.Tracer
	now       func() time.Time

	completionPublished bool
}

// NewMatchService creates a new MatchService. A nil publisher disables
// events; nil metrics fall back to NoOpMetrics.
func NewMatchService(
	match *matchdomain.Match,
	policy CompletionPolicy,
	publisher Publisher,
	logger *slog.Logger,
	metrics MatchMetrics,
	tracer trace.Tracer,
) *MatchService {
	if metrics == nil {
		metrics = NoOpMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &MatchService{
		id:        id,
		match:     match,
		policy:    policy,
		publisher: publisher,
		logger:    logger.With(slog.String("match_id", id.String())),
		metrics:   metrics,
		tracer:    tracer,
		now:       time.Now,
	}
}

func (s *MatchService) ID() uuid.UUID { return s.id }

// withTelemetry wraps a service operation with tracing, metrics, locking
// and panic recovery.
func (s *MatchService) withTelemetry(
	ctx context.Context,
	operationName string,
	op func(ctx context.Context) error,
) (err error) {
	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("match_id", s.id.String()),
		))
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
	}

	s.metrics.RecordOperationAttempt(ctx, operationName)
	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
		}
	}()

	if err = op(ctx); err != nil {
		err = fmt.Errorf("%s: %w", operationName, err)
		s.logger.WarnContext(ctx, "Operation rejected",
			slog.String("operation", operationName),
			slog.Any("error", err),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		return err
	}

	s.logger.DebugContext(ctx, operationName+" completed successfully",
		slog.String("operation", operationName),
		slog.String("state", string(s.match.State())),
	)
	s.metrics.RecordOperationSuccess(ctx, operationName)
	s.observeCompletion(ctx)
	return nil
}

// guardComplete applies the completion policy. Caller holds s.mu.
func (s *MatchService) guardComplete() error {
	if s.policy == PolicyReject && s.match.IsComplete() {
		return ErrMatchComplete
	}
	return nil
}

func (s *MatchService) Start(ctx context.Context) error {
	return s.withTelemetry(ctx, "Start", func(ctx context.Context) error {
		if err := s.guardComplete(); err != nil {
			return err
		}
		if s.match.Timer().Running() {
			return nil
		}
		s.match.Start()
		s.logger.InfoContext(ctx, "Match clock started",
			slog.Int64("remaining_ms", s.match.Timer().RemainingMilliseconds()),
		)
		s.publish(ctx, matchevents.MatchStarted, func(base matchevents.MatchEventPayload) any {
			return matchevents.MatchStartedPayload{MatchEventPayload: base}
		})
		return nil
	})
}

func (s *MatchService) Stop(ctx context.Context) error {
	return s.withTelemetry(ctx, "Stop", func(ctx context.Context) error {
		if !s.match.Timer().Running() {
			return nil
		}
		s.match.Stop()
		s.logger.InfoContext(ctx, "Match clock stopped",
			slog.Int64("remaining_ms", s.match.Timer().RemainingMilliseconds()),
		)
		s.publish(ctx, matchevents.MatchStopped, func(base matchevents.MatchEventPayload) any {
			return matchevents.MatchStoppedPayload{MatchEventPayload: base}
		})
		return nil
	})
}

func (s *MatchService) AddScore(ctx context.Context, points matchdomain.Points, competitor matchdomain.CompetitorNumber) error {
	return s.withTelemetry(ctx, "AddScore", func(ctx context.Context) error {
		return s.changeScore(ctx, points, competitor, matchevents.ScoreAdded)
	})
}

func (s *MatchService) RemoveScore(ctx context.Context, points matchdomain.Points, competitor matchdomain.CompetitorNumber) error {
	return s.withTelemetry(ctx, "RemoveScore", func(ctx context.Context) error {
		return s.changeScore(ctx, points, competitor, matchevents.ScoreRemoved)
	})
}

func (s *MatchService) changeScore(
	ctx context.Context,
	points matchdomain.Points,
	competitor matchdomain.CompetitorNumber,
	op matchevents.ScoreOperation,
) error {
	if err := s.guardComplete(); err != nil {
		return err
	}

	var err error
	delta := int(points.Amount)
	if op == matchevents.ScoreAdded {
		err = s.match.AddScore(points, competitor)
	} else {
		err = s.match.RemoveScore(points, competitor)
		delta = -delta
	}
	if err != nil {
		return err
	}

	s.metrics.RecordScoreChange(ctx, competitor, points.Kind, delta)
	s.logger.InfoContext(ctx, "Score changed",
		slog.String("competitor", competitor.String()),
		slog.String("kind", points.Kind.String()),
		slog.Int("delta", delta),
	)
	s.publish(ctx, matchevents.MatchScoreChanged, func(base matchevents.MatchEventPayload) any {
		return matchevents.MatchScoreChangedPayload{
			MatchEventPayload: base,
			Competitor:        competitor,
			Points:            points,
			Operation:         op,
		}
	})
	return nil
}

func (s *MatchService) SetWinner(ctx context.Context, competitor matchdomain.CompetitorNumber, method matchdomain.WinMethod) error {
	return s.withTelemetry(ctx, "SetWinner", func(ctx context.Context) error {
		if err := s.match.SetWinner(competitor, method); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "Winner declared",
			slog.String("competitor", competitor.String()),
			slog.String("method", string(method)),
		)
		s.publish(ctx, matchevents.MatchWinnerSet, func(base matchevents.MatchEventPayload) any {
			return matchevents.MatchWinnerSetPayload{
				MatchEventPayload: base,
				Winner:            matchdomain.Winner{Competitor: competitor, Method: method},
			}
		})
		return nil
	})
}

func (s *MatchService) ClearWinner(ctx context.Context) error {
	return s.withTelemetry(ctx, "ClearWinner", func(ctx context.Context) error {
		if _, ok := s.match.Winner(); !ok {
			return nil
		}
		s.match.ClearWinner()
		if !s.match.IsComplete() {
			s.completionPublished = false
		}
		s.logger.InfoContext(ctx, "Winner cleared")
		s.publish(ctx, matchevents.MatchWinnerCleared, func(base matchevents.MatchEventPayload) any {
			return matchevents.MatchWinnerClearedPayload{MatchEventPayload: base}
		})
		return nil
	})
}

// AwardOnPoints declares the scoresheet leader the winner once time has run
// out. It reports false when time remains, a winner already exists or the
// scores are tied; a tie needs a referee decision through SetWinner.
func (s *MatchService) AwardOnPoints(ctx context.Context) (matchdomain.Winner, bool, error) {
	var (
		winner  matchdomain.Winner
		awarded bool
	)
	err := s.withTelemetry(ctx, "AwardOnPoints", func(ctx context.Context) error {
		if !s.match.Timer().IsComplete() {
			return nil
		}
		if w, ok := s.match.Winner(); ok {
			winner = w
			return nil
		}
		leader, ok := s.match.Leader()
		if !ok {
			s.logger.InfoContext(ctx, "Scores tied at time, referee decision required")
			return nil
		}
		if err := s.match.SetWinner(leader, matchdomain.WinPoints); err != nil {
			return err
		}
		winner = matchdomain.Winner{Competitor: leader, Method: matchdomain.WinPoints}
		awarded = true
		s.logger.InfoContext(ctx, "Winner declared on points",
			slog.String("competitor", leader.String()),
		)
		s.publish(ctx, matchevents.MatchWinnerSet, func(base matchevents.MatchEventPayload) any {
			return matchevents.MatchWinnerSetPayload{MatchEventPayload: base, Winner: winner}
		})
		return nil
	})
	return winner, awarded, err
}

func (s *MatchService) IsComplete(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.SetRemaining(ctx, s.match.Timer().Remaining())
	s.observeCompletion(ctx)
	return s.match.IsComplete()
}

func (s *MatchService) Snapshot(ctx context.Context) matchdomain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Snapshot()
}

func (s *MatchService) Render(ctx context.Context) string {
	return s.Snapshot(ctx).String()
}

// observeCompletion publishes MatchCompleted once per completion. Caller
// holds s.mu.
func (s *MatchService) observeCompletion(ctx context.Context) {
	if s.completionPublished || !s.match.IsComplete() {
		return
	}
	s.completionPublished = true

	reason := matchevents.CompletedByTime
	var winner *matchdomain.Winner
	if w, ok := s.match.Winner(); ok {
		reason = matchevents.CompletedByWinner
		winner = &w
	}

	s.metrics.RecordMatchCompleted(ctx, string(reason))
	s.logger.InfoContext(ctx, "Match complete",
		slog.String("reason", string(reason)),
	)
	s.publish(ctx, matchevents.MatchCompleted, func(base matchevents.MatchEventPayload) any {
		return matchevents.MatchCompletedPayload{
			MatchEventPayload: base,
			Reason:            reason,
			Winner:            winner,
		}
	})
}

// publish builds and sends an event. Publish failures are logged, never
// returned: the match state has already changed. Caller holds s.mu.
func (s *MatchService) publish(ctx context.Context, topic string, build func(matchevents.MatchEventPayload) any) {
	if s.publisher == nil {
		return
	}

	base := matchevents.MatchEventPayload{
		MatchID:    s.id,
		OccurredAt: s.now().UTC(),
		Snapshot:   s.match.Snapshot(),
	}
	msg, err := eventbus.NewMessage(build(base), map[string]string{
		matchevents.MetadataMatchID: s.id.String(),
		matchevents.MetadataTopic:   topic,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build event", slog.String("topic", topic), slog.Any("error", err))
		return
	}
	msg.SetContext(ctx)

	if err := s.publisher.Publish(topic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event", slog.String("topic", topic), slog.Any("error", err))
	}
}
