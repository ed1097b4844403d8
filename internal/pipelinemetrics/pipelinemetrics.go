// Package pipelinemetrics instruments the HIR->MIR->FMM pipeline with
// Prometheus counters and histograms: per-phase wall-clock duration,
// synthesized-helper counts (equal_T/hash_T/ctx_T per compile), and
// reference-counting op counts. Metrics are written here but never read
// back inside the pipeline itself — the Registry is exposed for an
// embedding CLI to scrape, nothing more.
package pipelinemetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds one compile run's instrumentation, backed by its own
// registry rather than the global default so multiple compiles (e.g.
// one per test) never collide on metric registration.
type Metrics struct {
	Registry *prometheus.Registry

	phaseDuration      *prometheus.HistogramVec
	synthesizedHelpers *prometheus.CounterVec
	rcOps              *prometheus.CounterVec
}

// New returns a Metrics with every collector registered against a fresh
// Registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "corelang_pipeline_phase_duration_seconds",
			Help:    "Wall-clock time spent in each compilation phase.",
			Buckets: prometheus.DefBuckets,
		}, []string{"phase"}),
		synthesizedHelpers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "corelang_pipeline_synthesized_helpers_total",
			Help: "Monomorphic helpers synthesized during HIR->MIR lowering, by kind.",
		}, []string{"kind"}),
		rcOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "corelang_pipeline_rc_ops_total",
			Help: "Reference-count operations inserted into MIR, by kind.",
		}, []string{"kind"}),
	}
	m.Registry.MustRegister(m.phaseDuration, m.synthesizedHelpers, m.rcOps)
	return m
}

// Time runs fn, records its wall-clock duration under phase, and
// returns whatever error fn returned.
func (m *Metrics) Time(phase string, fn func() error) error {
	start := time.Now()
	err := fn()
	m.phaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
	return err
}

// Helper kinds recorded by CountSynthesizedHelper.
const (
	HelperEqual   = "equal"
	HelperHash    = "hash"
	HelperContext = "context"
)

// CountSynthesizedHelper increments the synthesized-helper counter for
// kind (one of the Helper* constants).
func (m *Metrics) CountSynthesizedHelper(kind string) {
	m.synthesizedHelpers.WithLabelValues(kind).Inc()
}

// RC op kinds recorded by CountRCOp.
const (
	RCOpClone       = "clone"
	RCOpDrop        = "drop"
	RCOpSynchronize = "synchronize"
)

// CountRCOp increments the reference-counting op counter for kind (one
// of the RCOp* constants).
func (m *Metrics) CountRCOp(kind string) {
	m.rcOps.WithLabelValues(kind).Inc()
}
