package matchservice

import (
	"context"
	"time"

	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// MatchMetrics records match service activity.
type MatchMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordScoreChange(ctx context.Context, competitor matchdomain.CompetitorNumber, kind matchdomain.PointsKind, delta int)
	RecordMatchCompleted(ctx context.Context, reason string)
	SetRemaining(ctx context.Context, remaining time.Duration)
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string) {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string) {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string) {}

func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}

func (NoOpMetrics) RecordScoreChange(context.Context, matchdomain.CompetitorNumber, matchdomain.PointsKind, int) {
}

func (NoOpMetrics) RecordMatchCompleted(context.Context, string) {}

func (NoOpMetrics) SetRemaining(context.Context, time.Duration) {}

// PrometheusMetrics is the MatchMetrics implementation backed by a registry.
type PrometheusMetrics struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	scores     *prometheus.CounterVec
	completed  *prometheus.CounterVec
	remaining  prometheus.Gauge
}

// NewPrometheusMetrics registers the match collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Subsystem: "match",
			Name:      "operations_total",
			Help:      "Match service operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scoreboard",
			Subsystem: "match",
			Name:      "operation_duration_seconds",
			Help:      "Match service operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"operation"}),
		scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Subsystem: "match",
			Name:      "score_changes_total",
			Help:      "Score adjustments by competitor, kind and direction.",
		}, []string{"competitor", "kind", "direction"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Subsystem: "match",
			Name:      "completed_total",
			Help:      "Completed matches by reason.",
		}, []string{"reason"}),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scoreboard",
			Subsystem: "match",
			Name:      "remaining_seconds",
			Help:      "Remaining time on the match clock at the last observation.",
		}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.durations, m.scores, m.completed, m.remaining} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "attempt").Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "success").Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "failure").Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordScoreChange(_ context.Context, competitor matchdomain.CompetitorNumber, kind matchdomain.PointsKind, delta int) {
	direction := "add"
	if delta < 0 {
		direction = "remove"
		delta = -delta
	}
	m.scores.WithLabelValues(competitor.String(), kind.String(), direction).Add(float64(delta))
}

func (m *PrometheusMetrics) RecordMatchCompleted(_ context.Context, reason string) {
	m.completed.WithLabelValues(reason).Inc()
}

func (m *PrometheusMetrics) SetRemaining(_ context.Context, remaining time.Duration) {
	m.remaining.Set(remaining.Seconds())
}
