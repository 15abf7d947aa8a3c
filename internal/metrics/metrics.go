package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ai_quiz"

// Metrics holds the quiz counters. Create one per registry.
type Metrics struct {
	Transitions         *prometheus.CounterVec
	GuardViolations     *prometheus.CounterVec
	GenerationDuration  *prometheus.HistogramVec
	GenerationFailures  *prometheus.CounterVec
	QuizzesCompleted    prometheus.Counter
	FinalScores         prometheus.Histogram
	LeaderboardWrites   *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the quiz metrics on reg. A nil reg gives unregistered
// collectors, which is what tests usually want.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_transitions_total",
			Help:      "Accepted session transitions by event and resulting state.",
		}, []string{"event", "state"}),
		GuardViolations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_guard_violations_total",
			Help:      "Events rejected by the session state machine.",
		}, []string{"event"}),
		GenerationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "question_generation_duration_seconds",
			Help:      "Time spent obtaining a question batch.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 90},
		}, []string{"outcome"}),
		GenerationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_generation_failures_total",
			Help:      "Failed question batches by error code.",
		}, []string{"code"}),
		QuizzesCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quizzes_completed_total",
			Help:      "Attempts that reached the result screen.",
		}),
		FinalScores: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Distribution of final scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		LeaderboardWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaderboard_writes_total",
			Help:      "Leaderboard writes by operation and outcome.",
		}, []string{"operation", "outcome"}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}
