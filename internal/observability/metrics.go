// Package observability exposes the service's prometheus metrics.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chembldb/internal/chembl"
)

// Collector holds all prometheus metrics on a private registry so tests
// can build as many instances as they like.
type Collector struct {
	registry *prometheus.Registry

	// Dataset state, refreshed on every load.
	RecordsLoaded prometheus.Gauge
	SkippedLines  prometheus.Gauge
	DuplicateIDs  prometheus.Gauge

	// Load activity.
	Reloads        prometheus.Counter
	ReloadFailures prometheus.Counter

	// Query activity.
	LookupHits     prometheus.Counter
	LookupMisses   prometheus.Counter
	SampleRequests prometheus.Counter
}

// NewCollector creates and registers the service metrics under the given
// namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Number of compounds in the live store",
		}),
		SkippedLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "skipped_lines",
			Help:      "Malformed lines skipped by the last load",
		}),
		DuplicateIDs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "duplicate_ids",
			Help:      "Duplicate-ID overwrites seen by the last load",
		}),
		Reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Successful dataset loads since start",
		}),
		ReloadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reload_failures_total",
			Help:      "Failed dataset loads since start",
		}),
		LookupHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_hits_total",
			Help:      "Compound lookups that found a record",
		}),
		LookupMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_misses_total",
			Help:      "Compound lookups for unknown IDs",
		}),
		SampleRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sample_requests_total",
			Help:      "Random-sample requests served",
		}),
	}

	c.registry.MustRegister(
		c.RecordsLoaded, c.SkippedLines, c.DuplicateIDs,
		c.Reloads, c.ReloadFailures,
		c.LookupHits, c.LookupMisses, c.SampleRequests,
	)
	return c
}

// ObserveLoad refreshes the dataset gauges after a successful load.
func (c *Collector) ObserveLoad(st chembl.Stats) {
	c.RecordsLoaded.Set(float64(st.Loaded))
	c.SkippedLines.Set(float64(st.SkippedLines))
	c.DuplicateIDs.Set(float64(st.DuplicateIDs))
	c.Reloads.Inc()
}

// Handler serves the registry in the standard exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
