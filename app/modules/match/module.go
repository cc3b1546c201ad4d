package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	matchservice "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	"github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/infrastructure/display"
	"github.com/Black-And-White-Club/bjj-scoreboard/config"
	"github.com/Black-And-White-Club/bjj-scoreboard/internal/clock"
	"github.com/Black-And-White-Club/bjj-scoreboard/internal/eventbus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// TickFunc is called by Run once per tick while the match is live.
type TickFunc func(ctx context.Context, svc matchservice.Service, tick int) error

// Module represents the match module.
type Module struct {
	MatchService matchservice.Service
	Console      *display.Console

	logger       *slog.Logger
	out          io.Writer
	tickInterval time.Duration
}

// Deps are the collaborators the module is built from.
type Deps struct {
	Logger   *slog.Logger
	EventBus eventbus.EventBus
	Metrics  matchservice.MatchMetrics
	Tracer   trace.Tracer
	Clock    clock.Clock
	Out      io.Writer
}

// NewMatchModule creates a new instance of the match module for one bout.
func NewMatchModule(
	cfg *config.Config,
	one, two matchdomain.Competitor,
	deps Deps,
) (*Module, error) {
	policy, err := matchservice.ParseCompletionPolicy(cfg.Match.CompletionPolicy)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}

	m := matchdomain.NewMatch(one, two,
		matchdomain.WithDuration(cfg.Match.Duration),
		matchdomain.WithClock(deps.Clock),
	)

	var publisher matchservice.Publisher
	if deps.EventBus != nil {
		publisher = deps.EventBus
	}
	svc := matchservice.NewMatchService(m, policy, publisher, logger, deps.Metrics, deps.Tracer)

	logger.Info("match.NewMatchModule called",
		slog.String("match_id", svc.ID().String()),
		slog.String("competitor_one", one.Name()),
		slog.String("competitor_two", two.Name()),
		slog.Duration("duration", cfg.Match.Duration),
	)

	return &Module{
		MatchService: svc,
		Console:      display.NewConsole(out, logger),
		logger:       logger,
		out:          out,
		tickInterval: cfg.Match.TickInterval,
	}, nil
}

// StartConsole attaches the console renderer to the event bus.
func (m *Module) StartConsole(ctx context.Context, sub display.Subscriber) error {
	return m.Console.Start(ctx, sub)
}

// Run starts the clock and renders the match once per tick until it is
// complete or ctx is done. On expiry the scoresheet leader is awarded the
// win. A canceled ctx pauses the clock.
func (m *Module) Run(ctx context.Context, onTick TickFunc) error {
	svc := m.MatchService
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start match: %w", err)
	}

	limiter := rate.NewLimiter(rate.Every(m.tickInterval), 1)
	for tick := 0; !svc.IsComplete(ctx); tick++ {
		if err := limiter.Wait(ctx); err != nil {
			m.logger.Info("Match interrupted, pausing clock", slog.Any("reason", err))
			_ = svc.Stop(context.WithoutCancel(ctx))
			return err
		}
		fmt.Fprint(m.out, svc.Render(ctx))

		if onTick == nil {
			continue
		}
		if err := onTick(ctx, svc, tick); err != nil && !errors.Is(err, matchservice.ErrMatchComplete) {
			_ = svc.Stop(ctx)
			return fmt.Errorf("tick %d: %w", tick, err)
		}
	}

	if err := svc.Stop(ctx); err != nil {
		return err
	}
	if _, _, err := svc.AwardOnPoints(ctx); err != nil {
		return err
	}

	snap := svc.Snapshot(ctx)
	fmt.Fprint(m.out, snap)
	if snap.Winner == nil {
		fmt.Fprintln(m.out, "Draw: referee decision required")
		return nil
	}
	name := snap.CompetitorOne.Name()
	if snap.Winner.Competitor == matchdomain.CompetitorTwo {
		name = snap.CompetitorTwo.Name()
	}
	fmt.Fprintf(m.out, "Winner: %s (%s)\n", name, snap.Winner.Method)
	return nil
}
