// Package metrics holds the Prometheus counters/histograms the CLI driver
// records around each compile run (read, parse, compile and emit of one
// file), plus an HTTP server that
// exposes them alongside the standard Go/process collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are compile-run counters/histograms, registered against the
// registry passed to NewServer.
type Metrics struct {
	CompileDuration prometheus.Histogram
	CompileTotal    *prometheus.CounterVec
	RulesEmitted    prometheus.Counter
	RulesUseless    prometheus.Counter
}

// New creates and registers compiler metrics against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CompileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ifppc_compile_duration_seconds",
			Help:    "Histogram of compile-run latency (read, parse, compile, emit) in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		CompileTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ifppc_compile_runs_total",
			Help: "Total number of compile runs by outcome",
		}, []string{"outcome"}),
		RulesEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "ifppc_rules_emitted_total",
			Help: "Total number of native rules emitted across all compile runs",
		}),
		RulesUseless: factory.NewCounter(prometheus.CounterOpts{
			Name: "ifppc_rules_useless_total",
			Help: "Total number of rules discarded as useless across all compile runs",
		}),
	}
}

// RecordCompile records one completed compile run.
func (m *Metrics) RecordCompile(d time.Duration, ok bool, rulesEmitted, rulesUseless int) {
	m.CompileDuration.Observe(d.Seconds())
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.CompileTotal.WithLabelValues(outcome).Inc()
	m.RulesEmitted.Add(float64(rulesEmitted))
	m.RulesUseless.Add(float64(rulesUseless))
}
