package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/turing/pkg/domain"
)

// Metrics holds the Prometheus collectors for machine runs.
type Metrics struct {
	Steps  prometheus.Counter
	Runs   *prometheus.CounterVec
	Cycles prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turing_steps_total",
			Help: "Total number of transitions applied across all runs",
		}),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of finished runs by outcome",
			},
			[]string{"outcome"},
		),
		Cycles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turing_run_cycles",
			Help:    "Number of cycles a run took before it ended",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Steps, m.Runs, m.Cycles)
	}
	return m
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, _ *domain.StepEvent) {
			m.Steps.Inc()
		},
		OnFinish: func(_ context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(e.Outcome).Inc()
			m.Cycles.Observe(float64(e.Cycles))
		},
	}
}
