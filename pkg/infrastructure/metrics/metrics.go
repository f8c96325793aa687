package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the distribution engine's Prometheus collectors behind
// a private registry so tests can create isolated instances.
type Registry struct {
	reg *prometheus.Registry

	PassesTotal      prometheus.Counter
	AllocationsTotal prometheus.Counter
	AllocatedUnits   prometheus.Counter
	DebitFailures    prometheus.Counter
	PassDurationSec  prometheus.Histogram
	WaitlistDepth    prometheus.Gauge
}

// NewRegistry creates and registers all collectors.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	passes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookdist_passes_total",
		Help: "Completed allocation passes.",
	})
	allocations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookdist_allocations_total",
		Help: "Committed allocation moves across all passes.",
	})
	units := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookdist_allocated_units_total",
		Help: "Total book units allocated across all passes.",
	})
	debitFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookdist_debit_failures_total",
		Help: "Ledger debits that found insufficient stock.",
	})
	passDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookdist_pass_duration_seconds",
		Help:    "Wall time per allocation pass.",
		Buckets: prometheus.DefBuckets,
	})
	waitlistDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bookdist_waitlist_depth",
		Help: "Institutions currently queued across all titles.",
	})

	r.MustRegister(passes, allocations, units, debitFailures, passDuration, waitlistDepth)
	return &Registry{
		reg:              r,
		PassesTotal:      passes,
		AllocationsTotal: allocations,
		AllocatedUnits:   units,
		DebitFailures:    debitFailures,
		PassDurationSec:  passDuration,
		WaitlistDepth:    waitlistDepth,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
