package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProjectsLoggedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projects_logged_count",
			Help: "Total number of projects logged to the live board",
		},
		[]string{"location", "salesperson"},
	)

	RolloverCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "week_rollover_count",
			Help: "Total number of week rollover attempts",
		},
		[]string{"trigger", "outcome"}, // trigger: manual, auto; outcome: success, failed, empty
	)

	RolloverDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "week_rollover_duration_seconds",
			Help:    "Week rollover duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
	)

	AchievementUnlockCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_unlock_count",
			Help: "Total number of achievements unlocked",
		},
		[]string{"rule"},
	)

	DroppedEventCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aggregation_dropped_event_count",
			Help: "Live events excluded from aggregation because a required field was missing",
		},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_query_count",
			Help: "Total number of slow database queries",
		},
	)
)

func RecordProjectLogged(location, salesperson string) {
	ProjectsLoggedCount.WithLabelValues(location, salesperson).Inc()
}

func RecordRollover(trigger, outcome string, duration time.Duration) {
	RolloverCount.WithLabelValues(trigger, outcome).Inc()
	RolloverDuration.Observe(duration.Seconds())
}

func RecordAchievementUnlock(rule string) {
	AchievementUnlockCount.WithLabelValues(rule).Inc()
}

func RecordDroppedEvents(n int) {
	DroppedEventCount.Add(float64(n))
}

func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementSlowQuery() {
	SlowQueryCount.Inc()
}
