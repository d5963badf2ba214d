package service

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	curriculaGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_curricula_generated_total",
			Help: "Curricula produced, by provenance and classified domain",
		},
		[]string{"provenance", "domain"},
	)

	useCaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waypoint_use_case_duration_seconds",
			Help:    "Duration of service use cases in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"use_case", "success"},
	)
)

// MetricsUseCaseObserver records use-case durations in Prometheus.
type MetricsUseCaseObserver struct{}

func (MetricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	useCaseDuration.WithLabelValues(event.Name, strconv.FormatBool(event.Success)).Observe(event.Duration.Seconds())
}
