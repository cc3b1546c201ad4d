package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	matchservice "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	"github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/infrastructure/roster"
	"github.com/Black-And-White-Club/bjj-scoreboard/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Match.Duration = time.Minute
	cfg.Match.TickInterval = 10 * time.Millisecond
	cfg.Roster.Seed = 11
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApp_RunUntilSubmission(t *testing.T) {
	ctx := context.Background()
	out := &syncBuffer{}

	a, err := NewApp(ctx, testConfig(), discardLogger(), out, WithEventLog(true))
	require.NoError(t, err)

	err = a.Run(ctx, func(ctx context.Context, svc matchservice.Service, tick int) error {
		if tick == 0 {
			return svc.SetWinner(ctx, matchdomain.CompetitorTwo, matchdomain.WinSubmission)
		}
		return nil
	})
	require.NoError(t, err)

	snap := a.MatchModule.MatchService.Snapshot(ctx)
	assert.Equal(t, matchdomain.MatchStateComplete, snap.State)
	assert.Contains(t, out.String(), "Winner: "+snap.CompetitorTwo.Name()+" (SUBMISSION)")
	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Match over:"))
	}, time.Second, 10*time.Millisecond)

	families, err := a.Registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["scoreboard_match_operations_total"])
	assert.True(t, names["scoreboard_match_completed_total"])

	require.NoError(t, a.Close())
}

func TestApp_WithGenerator(t *testing.T) {
	ctx := context.Background()
	gen := roster.NewFakeGenerator(3)
	want, err := roster.NewFakeGenerator(3).Generate(ctx, 2)
	require.NoError(t, err)

	a, err := NewApp(ctx, testConfig(), discardLogger(), io.Discard, WithGenerator(gen))
	require.NoError(t, err)
	defer a.Close()

	snap := a.MatchModule.MatchService.Snapshot(ctx)
	assert.Equal(t, want[0], snap.CompetitorOne)
	assert.Equal(t, want[1], snap.CompetitorTwo)
	assert.Equal(t, matchdomain.MatchStateNotStarted, snap.State)
}

func TestNewApp_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name: "missing roster file",
			mutate: func(c *config.Config) {
				c.Roster.Source = "file"
				c.Roster.Path = "/does/not/exist.yaml"
			},
			wantErr: "failed to draw competitors",
		},
		{
			name:    "unknown roster source",
			mutate:  func(c *config.Config) { c.Roster.Source = "carrier-pigeon" },
			wantErr: "failed to initialize roster",
		},
		{
			name:    "unknown policy",
			mutate:  func(c *config.Config) { c.Match.CompletionPolicy = "maybe" },
			wantErr: "failed to initialize match module",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			_, err := NewApp(context.Background(), cfg, discardLogger(), io.Discard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
