/*
Package observability provides tools for monitoring a running capability
system.

It exposes Prometheus collectors wired into the engine's lifecycle hooks,
so tick timing, the active set, and per-capability transitions can be
scraped without touching the evaluation code.
*/
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jesterworks/canopy/pkg/domain"
)

// Metrics holds the Prometheus collectors for one system.
type Metrics struct {
	ticks         prometheus.Counter
	tickDuration  prometheus.Histogram
	active        prometheus.Gauge
	activations   *prometheus.CounterVec
	deactivations *prometheus.CounterVec
	blocked       *prometheus.CounterVec
}

// NewMetrics registers the collectors on the given registerer. Pass
// prometheus.DefaultRegisterer for the process-global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "canopy",
			Name:      "ticks_total",
			Help:      "Total evaluation passes.",
		}),
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "canopy",
			Name:      "tick_duration_seconds",
			Help:      "Wall time of one evaluation pass including TickActive calls.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "canopy",
			Name:      "active_capabilities",
			Help:      "Capabilities active after the latest tick.",
		}),
		activations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canopy",
			Name:      "activations_total",
			Help:      "Activation transitions per capability.",
		}, []string{"capability"}),
		deactivations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canopy",
			Name:      "deactivations_total",
			Help:      "Deactivation transitions per capability.",
		}, []string{"capability"}),
		blocked: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canopy",
			Name:      "blocked_total",
			Help:      "Activations refused by the prevention block list, per capability.",
		}, []string{"capability"}),
	}
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTickEnd: func(_ context.Context, e *domain.TickEvent) {
			m.ticks.Inc()
			m.tickDuration.Observe(e.Duration.Seconds())
			m.active.Set(float64(len(e.Active)))
		},
		OnActivated: func(_ context.Context, e *domain.CapabilityEvent) {
			m.activations.WithLabelValues(e.Name).Inc()
		},
		OnDeactivated: func(_ context.Context, e *domain.CapabilityEvent) {
			m.deactivations.WithLabelValues(e.Name).Inc()
		},
		OnBlocked: func(_ context.Context, e *domain.CapabilityEvent) {
			m.blocked.WithLabelValues(e.Name).Inc()
		},
	}
}
