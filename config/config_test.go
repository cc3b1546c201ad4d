package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
match:
  duration: 6m
  tick_interval: 500ms
  completion_policy: accept
roster:
  source: file
  path: roster.yaml
observability:
  log_level: debug
  log_format: json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 6*time.Minute, cfg.Match.Duration)
	assert.Equal(t, 500*time.Millisecond, cfg.Match.TickInterval)
	assert.Equal(t, "accept", cfg.Match.CompletionPolicy)
	assert.Equal(t, "file", cfg.Roster.Source)
	assert.Equal(t, "roster.yaml", cfg.Roster.Path)
	assert.Equal(t, slog.LevelDebug, cfg.Observability.SlogLevel())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDuration, cfg.Match.Duration)
	assert.Equal(t, DefaultTickInterval, cfg.Match.TickInterval)
	assert.Equal(t, DefaultPolicy, cfg.Match.CompletionPolicy)
	assert.Equal(t, DefaultRosterSource, cfg.Roster.Source)
	assert.Equal(t, "text", cfg.Observability.LogFormat)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "match:\n  duration: 6m\n")
	t.Setenv("MATCH_DURATION", "10s")
	t.Setenv("ROSTER_SEED", "42")
	t.Setenv("ENV", "test")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Match.Duration)
	assert.Equal(t, int64(42), cfg.Roster.Seed)
	assert.Equal(t, "test", cfg.Observability.Environment)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad yaml", body: "match: [oops"},
		{name: "bad policy", body: "match:\n  completion_policy: maybe\n"},
		{name: "file roster without path", body: "roster:\n  source: file\n"},
		{name: "unknown roster", body: "roster:\n  source: ldap\n"},
		{name: "bad duration env", body: "", env: map[string]string{"MATCH_DURATION": "forever"}},
		{name: "bad seed env", body: "", env: map[string]string{"ROSTER_SEED": "abc"}},
		{name: "sub-second duration", body: "match:\n  duration: 200ms\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestValidate_TickInterval(t *testing.T) {
	tests := []struct {
		name    string
		tick    time.Duration
		wantErr bool
	}{
		{name: "zero", tick: 0, wantErr: true},
		{name: "negative", tick: -time.Second, wantErr: true},
		{name: "positive", tick: 250 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Match.TickInterval = tt.tick
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "tick interval")
				return
			}
			assert.NoError(t, err)
		})
	}
}
