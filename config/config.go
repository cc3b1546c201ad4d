package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Match         MatchConfig         `yaml:"match"`
	Roster        RosterConfig        `yaml:"roster"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// MatchConfig holds the match rules and the driver cadence.
type MatchConfig struct {
	Duration         time.Duration `yaml:"duration"`
	TickInterval     time.Duration `yaml:"tick_interval"`
	CompletionPolicy string        `yaml:"completion_policy"` // reject|accept
}

// RosterConfig selects where competitors come from.
type RosterConfig struct {
	Source string `yaml:"source"` // fake|file|xlsx
	Path   string `yaml:"path"`
	Seed   int64  `yaml:"seed"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // text|json
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

const (
	DefaultDuration     = 5 * time.Minute
	DefaultTickInterval = time.Second
	DefaultPolicy       = "reject"
	DefaultRosterSource = "fake"
)

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads the configuration from a YAML file. A missing file falls
// back to defaults; environment variables override either source.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// env + defaults only
	default:
		return nil, fmt.Errorf("failed to read config %q: %w", filename, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// --- OVERRIDE WITH ENV VARS IF PRESENT ---
func (cfg *Config) applyEnv() error {
	if v := os.Getenv("MATCH_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MATCH_DURATION value: %w", err)
		}
		cfg.Match.Duration = d
	}
	if v := os.Getenv("MATCH_TICK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MATCH_TICK_INTERVAL value: %w", err)
		}
		cfg.Match.TickInterval = d
	}
	if v := os.Getenv("MATCH_COMPLETION_POLICY"); v != "" {
		cfg.Match.CompletionPolicy = v
	}
	if v := os.Getenv("ROSTER_SOURCE"); v != "" {
		cfg.Roster.Source = v
	}
	if v := os.Getenv("ROSTER_PATH"); v != "" {
		cfg.Roster.Path = v
	}
	if v := os.Getenv("ROSTER_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ROSTER_SEED value: %w", err)
		}
		cfg.Roster.Seed = seed
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Match.Duration <= 0 {
		cfg.Match.Duration = DefaultDuration
	}
	if cfg.Match.TickInterval <= 0 {
		cfg.Match.TickInterval = DefaultTickInterval
	}
	if cfg.Match.CompletionPolicy == "" {
		cfg.Match.CompletionPolicy = DefaultPolicy
	}
	if cfg.Roster.Source == "" {
		cfg.Roster.Source = DefaultRosterSource
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	if cfg.Observability.LogFormat == "" {
		cfg.Observability.LogFormat = "text"
	}
}

// Validate checks enumerated settings.
func (cfg *Config) Validate() error {
	if cfg.Match.Duration < time.Second {
		return fmt.Errorf("match duration must be at least 1s, got %s", cfg.Match.Duration)
	}
	if cfg.Match.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", cfg.Match.TickInterval)
	}
	switch cfg.Match.CompletionPolicy {
	case "reject", "accept":
	default:
		return fmt.Errorf("unknown completion policy %q", cfg.Match.CompletionPolicy)
	}
	switch cfg.Roster.Source {
	case "fake":
	case "file", "xlsx":
		if cfg.Roster.Path == "" {
			return fmt.Errorf("roster source %q requires a path", cfg.Roster.Source)
		}
	default:
		return fmt.Errorf("unknown roster source %q", cfg.Roster.Source)
	}
	return nil
}

// SlogLevel maps the configured log level to slog.
func (o ObservabilityConfig) SlogLevel() slog.Level {
	switch o.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger from the observability settings.
func (o ObservabilityConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: o.SlogLevel()}
	var h slog.Handler
	if o.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(h)
	if o.Environment != "" {
		logger = logger.With(slog.String("env", o.Environment))
	}
	return logger
}
