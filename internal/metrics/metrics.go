package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	tweaksApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arcboost",
			Subsystem: "tweaks",
			Name:      "applied_total",
			Help:      "Number of successful tweak applications.",
		}, []string{"id"},
	)
	tweaksRestored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arcboost",
			Subsystem: "tweaks",
			Name:      "restored_total",
			Help:      "Number of successful tweak restorations.",
		}, []string{"id"},
	)
	tweaksFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arcboost",
			Subsystem: "tweaks",
			Name:      "failed_total",
			Help:      "Number of tweak command failures (apply or restore).",
		}, []string{"id"},
	)
	tweaksSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arcboost",
			Subsystem: "tweaks",
			Name:      "skipped_privilege_total",
			Help:      "Number of tweaks skipped for missing elevation.",
		}, []string{"id"},
	)
	batchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arcboost",
			Subsystem: "batch",
			Name:      "duration_seconds",
			Help:      "Wall time of apply/restore batches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"},
	)
	appliedSetSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "arcboost",
			Subsystem: "state",
			Name:      "applied_tweaks",
			Help:      "Current size of the persisted applied-tweak set.",
		},
	)
)

// Register registers all metrics with the provided registerer, or with the
// default registerer when r is nil.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	if r == nil {
		r = prometheus.DefaultRegisterer
	}
	cs := []prometheus.Collector{tweaksApplied, tweaksRestored, tweaksFailed, tweaksSkipped, batchDuration, appliedSetSize}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			// If already registered, ignore (allows double Register with default registry)
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler that serves Prometheus metrics for the DefaultGatherer.
// The caller is responsible for starting an HTTP server and wiring the route.
func Handler() http.Handler { return promhttp.Handler() }

// Below are lightweight helpers used by the engine to record metrics.
// They no-op if Register hasn't been called.

func IncApplied(id string) {
	if regOK.Load() {
		tweaksApplied.WithLabelValues(id).Inc()
	}
}

func IncRestored(id string) {
	if regOK.Load() {
		tweaksRestored.WithLabelValues(id).Inc()
	}
}

func IncFailed(id string) {
	if regOK.Load() {
		tweaksFailed.WithLabelValues(id).Inc()
	}
}

func IncSkippedPrivilege(id string) {
	if regOK.Load() {
		tweaksSkipped.WithLabelValues(id).Inc()
	}
}

func ObserveBatchDuration(kind string, seconds float64) {
	if regOK.Load() {
		batchDuration.WithLabelValues(kind).Observe(seconds)
	}
}

func SetAppliedSetSize(n int) {
	if regOK.Load() {
		appliedSetSize.Set(float64(n))
	}
}
