// Package display renders match events for a terminal.
package display

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	matchevents "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain/events"
	"github.com/Black-And-White-Club/bjj-scoreboard/internal/eventbus"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Subscriber is the part of the event bus the console needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// Console writes one line per match event followed by the snapshot.
type Console struct {
	out    io.Writer
	logger *slog.Logger

	mu sync.Mutex
	wg sync.WaitGroup
}

func NewConsole(out io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{out: out, logger: logger}
}

// Start subscribes to every match topic and renders in the background until
// ctx is done.
func (c *Console) Start(ctx context.Context, sub Subscriber) error {
	for _, topic := range matchevents.Topics {
		msgs, err := sub.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		c.wg.Add(1)
		go c.consume(topic, msgs)
	}
	return nil
}

// Wait blocks until every subscription has been drained.
func (c *Console) Wait() {
	c.wg.Wait()
}

// consume acks every message, rendered or not: a redelivered bad payload
// would fail the same way.
func (c *Console) consume(topic string, msgs <-chan *message.Message) {
	defer c.wg.Done()
	for msg := range msgs {
		if err := c.Handle(topic, msg); err != nil {
			c.logger.Warn("Failed to render event",
				slog.String("topic", topic),
				slog.String("message_id", msg.UUID),
				slog.Any("error", err),
			)
		}
		msg.Ack()
	}
}

// Handle renders a single message published on topic.
func (c *Console) Handle(topic string, msg *message.Message) error {
	headline, snap, err := decode(topic, msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintf(c.out, "[%s] %s\n%s", matchdomain.FormatClock(snap.RemainingMilliseconds), headline, snap); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

func decode(topic string, msg *message.Message) (string, matchdomain.Snapshot, error) {
	switch topic {
	case matchevents.MatchStarted:
		var p matchevents.MatchStartedPayload
		if err := eventbus.Decode(msg, &p); err != nil {
			return "", matchdomain.Snapshot{}, err
		}
		return "Clock started", p.Snapshot, nil
	case matchevents.MatchStopped:
		var p matchevents.MatchStoppedPayload
		if err := eventbus.Decode(msg, &p); err != nil {
			return "", matchdomain.Snapshot{}, err
		}
		return "Clock stopped", p.Snapshot, nil
	case matchevents.MatchScoreChanged:
		var p matchevents.MatchScoreChangedPayload
		if err := eventbus.Decode(msg, &p); err != nil {
			return "", matchdomain.Snapshot{}, err
		}
		sign := "+"
		if p.Operation == matchevents.ScoreRemoved {
			sign = "-"
		}
		name := competitorName(p.Snapshot, p.Competitor)
		return fmt.Sprintf("%s %s%d %s", name, sign, p.Points.Amount, p.Points.Kind), p.Snapshot, nil
	case matchevents.MatchWinnerSet:
		var p matchevents.MatchWinnerSetPayload
		if err := eventbus.Decode(msg, &p); err != nil {
			return "", matchdomain.Snapshot{}, err
		}
		return fmt.Sprintf("Winner: %s by %s", competitorName(p.Snapshot, p.Winner.Competitor), p.Winner.Method), p.Snapshot, nil
	case matchevents.MatchWinnerCleared:
		var p matchevents.MatchWinnerClearedPayload
		if err := eventbus.Decode(msg, &p); err != nil {
			return "", matchdomain.Snapshot{}, err
		}
		return "Winner cleared", p.Snapshot, nil
	case matchevents.MatchCompleted:
		var p matchevents.MatchCompletedPayload
		if err := eventbus.Decode(msg, &p); err != nil {
			return "", matchdomain.Snapshot{}, err
		}
		if p.Winner != nil {
			return fmt.Sprintf("Match over: %s wins by %s", competitorName(p.Snapshot, p.Winner.Competitor), p.Winner.Method), p.Snapshot, nil
		}
		return "Match over: time expired", p.Snapshot, nil
	}
	return "", matchdomain.Snapshot{}, fmt.Errorf("unknown topic %q", topic)
}

func competitorName(s matchdomain.Snapshot, n matchdomain.CompetitorNumber) string {
	if n == matchdomain.CompetitorTwo {
		return s.CompetitorTwo.Name()
	}
	return s.CompetitorOne.Name()
}
