package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/bjj-scoreboard/app"
	"github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match"
	"github.com/Black-And-White-Club/bjj-scoreboard/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "scoreboard",
		Usage: "run a BJJ match clock and scoreboard in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
			&cli.DurationFlag{Name: "duration", Usage: "match length, overrides the config"},
			&cli.DurationFlag{Name: "tick", Usage: "render interval, overrides the config"},
			&cli.Int64Flag{Name: "seed", Usage: "roster and demo seed, 0 for random"},
			&cli.BoolFlag{Name: "demo", Usage: "score the match at random"},
			&cli.BoolFlag{Name: "events", Usage: "print every match event as it is published"},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("duration") {
		cfg.Match.Duration = c.Duration("duration")
	}
	if c.IsSet("tick") {
		cfg.Match.TickInterval = c.Duration("tick")
	}
	if c.IsSet("seed") {
		cfg.Roster.Seed = c.Int64("seed")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.Observability.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, logger, os.Stdout, app.WithEventLog(c.Bool("events")))
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("Failed to shut down cleanly", "error", err)
		}
	}()

	var onTick match.TickFunc
	if c.Bool("demo") {
		onTick = match.DemoScript(cfg.Roster.Seed)
	}

	err = application.Run(ctx, onTick)
	if errors.Is(err, context.Canceled) {
		fmt.Println("Match paused, shutting down.")
		return nil
	}
	return err
}
