// SPDX-License-Identifier: MIT

package cv

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values of the mode label.
const (
	modeTreated     = "treated"
	modeLeaveOneOut = "loo"
)

// Metrics records cross-validation activity. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	runs         *prometheus.CounterVec
	folds        *prometheus.CounterVec
	foldDuration *prometheus.HistogramVec
	poolWorkers  prometheus.Gauge
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sparsesc_cv_runs_total",
				Help: "Cross-validation runs by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		folds: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sparsesc_cv_folds_total",
				Help: "Evaluated folds by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		foldDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sparsesc_cv_fold_duration_seconds",
				Help:    "Wall time of one fold (all grid points)",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"mode"},
		),
		poolWorkers: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "sparsesc_cv_pool_workers",
				Help: "Workers of the pool used by the current parallel run, 0 when idle",
			},
		),
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}

func (m *Metrics) observeFold(mode string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.folds.WithLabelValues(mode, outcome(err)).Inc()
	m.foldDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (m *Metrics) observeRun(mode string, err error) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(mode, outcome(err)).Inc()
}

func (m *Metrics) setWorkers(n int) {
	if m == nil {
		return
	}
	m.poolWorkers.Set(float64(n))
}
