package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match"
	matchservice "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/application"
	"github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/infrastructure/roster"
	"github.com/Black-And-White-Club/bjj-scoreboard/config"
	"github.com/Black-And-White-Club/bjj-scoreboard/internal/clock"
	"github.com/Black-And-White-Club/bjj-scoreboard/internal/eventbus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
)

const tracerName = "github.com/Black-And-White-Club/bjj-scoreboard/match"

// App wires one match together with its collaborators.
type App struct {
	Config      *config.Config
	Logger      *slog.Logger
	Registry    *prometheus.Registry
	EventBus    *eventbus.PubSub
	MatchModule *match.Module

	metricsServer *http.Server
	cancelFunc    context.CancelFunc
}

// Option customises NewApp.
type Option func(*options)

type options struct {
	generator roster.Generator
	clock     clock.Clock
	events    bool
}

// WithGenerator overrides the configured roster source.
func WithGenerator(g roster.Generator) Option {
	return func(o *options) { o.generator = g }
}

// WithClock overrides the match clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithEventLog renders every match event to the output as it happens.
func WithEventLog(enabled bool) Option {
	return func(o *options) { o.events = enabled }
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer, opts ...Option) (*App, error) {
	o := options{clock: clock.Default}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.Default()
	}

	generator := o.generator
	if generator == nil {
		g, err := roster.New(cfg.Roster.Source, cfg.Roster.Path, cfg.Roster.Seed)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize roster: %w", err)
		}
		generator = g
	}
	one, two, err := roster.Pair(ctx, generator)
	if err != nil {
		return nil, fmt.Errorf("failed to draw competitors: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics, err := matchservice.NewPrometheusMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register match metrics: %w", err)
	}

	bus := eventbus.NewPubSub(logger, 64)

	module, err := match.NewMatchModule(cfg, one, two, match.Deps{
		Logger:   logger,
		EventBus: bus,
		Metrics:  metrics,
		Tracer:   otel.Tracer(tracerName),
		Clock:    o.clock,
		Out:      out,
	})
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("failed to initialize match module: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	a := &App{
		Config:      cfg,
		Logger:      logger,
		Registry:    registry,
		EventBus:    bus,
		MatchModule: module,
		cancelFunc:  cancel,
	}

	if o.events {
		if err := module.StartConsole(ctx, bus); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to start console: %w", err)
		}
	}

	if addr := cfg.Observability.MetricsAddress; addr != "" {
		a.startMetricsServer(addr)
	}

	return a, nil
}

func (a *App) startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	a.metricsServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.Logger.Info("Serving metrics", slog.String("address", addr))
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("Metrics server failed", slog.Any("error", err))
		}
	}()
}

// Run drives the match until it is complete or ctx is done.
func (a *App) Run(ctx context.Context, onTick match.TickFunc) error {
	return a.MatchModule.Run(ctx, onTick)
}

// Close shuts down the console, the event bus and the metrics server.
func (a *App) Close() error {
	var errs []error

	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop metrics server: %w", err))
		}
	}
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	if err := a.EventBus.Close(); err != nil {
		errs = append(errs, err)
	}
	a.MatchModule.Console.Wait()

	return errors.Join(errs...)
}
