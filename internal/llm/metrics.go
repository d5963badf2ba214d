package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	llmCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_llm_calls_total",
			Help: "Total number of generation calls by outcome",
		},
		[]string{"provider", "status"}, // status: "ok" or a FailureKind
	)

	llmCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waypoint_llm_call_duration_seconds",
			Help:    "Duration of generation calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)

	breakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "waypoint_llm_breaker_state",
			Help: "Generation circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// MetricsObserver records call events as Prometheus metrics.
type MetricsObserver struct{}

func (MetricsObserver) OnCallComplete(event LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
	}
	provider := string(event.Provider)
	llmCalls.WithLabelValues(provider, status).Inc()
	llmCallDuration.WithLabelValues(provider).Observe(float64(event.LatencyMs) / 1000)
}
