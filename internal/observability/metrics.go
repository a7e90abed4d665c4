package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for accident data
// loading, summarizing, and plotting.
type Metrics struct {
	FilesLoaded    prometheus.Counter
	LoadFailures   prometheus.Counter
	RecordsLoaded  prometheus.Counter
	SummariesBuilt prometheus.Counter
	PlotsRendered  prometheus.Counter

	LoadDuration prometheus.Histogram
	CacheLookups *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "files_loaded_total",
			Help:      "Total accident files parsed successfully.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "load_failures_total",
			Help:      "Total accident file loads that failed.",
		}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "records_loaded_total",
			Help:      "Total accident records read from disk.",
		}),
		SummariesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "summaries_built_total",
			Help:      "Total monthly summary tables built.",
		}),
		PlotsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "plots_rendered_total",
			Help:      "Total state maps rendered.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fars",
			Name:      "load_duration_seconds",
			Help:      "Accident file parse duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "dataset_cache_lookups_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.FilesLoaded,
		m.LoadFailures,
		m.RecordsLoaded,
		m.SummariesBuilt,
		m.PlotsRendered,
		m.LoadDuration,
		m.CacheLookups,
	)

	return m
}

// NewMetricsForTesting creates Metrics with no registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FilesLoaded:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars", Name: "files_loaded_total"}),
		LoadFailures:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars", Name: "load_failures_total"}),
		RecordsLoaded:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars", Name: "records_loaded_total"}),
		SummariesBuilt: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars", Name: "summaries_built_total"}),
		PlotsRendered:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars", Name: "plots_rendered_total"}),
		LoadDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fars", Name: "load_duration_seconds"}),
		CacheLookups:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fars", Name: "dataset_cache_lookups_total"}, []string{"result"}),
	}
}
