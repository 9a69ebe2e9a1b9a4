package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes application metrics that are safe to scrape via Prometheus.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpRequestDur      *prometheus.HistogramVec
	pinsDropped         prometheus.Counter
	ingestRunsTotal     prometheus.Counter
	ingestRunDuration   prometheus.Histogram
	ingestLeadsUpserted prometheus.Counter
}

// New creates a fresh Metrics registry with HTTP, map and ingest metrics
// registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cobecium",
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests processed by the server",
	}, []string{"method", "path", "status"})

	httpRequestDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cobecium",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	pinsDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cobecium",
		Name:      "map_pins_dropped_total",
		Help:      "Pins excluded from the map because their region code has no centroid",
	})

	ingestRunsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cobecium",
		Name:      "ingest_runs_total",
		Help:      "Total number of lead ingest runs processed",
	})

	ingestRunDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cobecium",
		Name:      "ingest_run_duration_seconds",
		Help:      "Duration of lead ingest runs from claim to completion",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})

	ingestLeadsUpserted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cobecium",
		Name:      "ingest_leads_upserted_total",
		Help:      "Lead rows inserted or refreshed by ingest runs",
	})

	registry.MustRegister(
		httpRequests,
		httpRequestDur,
		pinsDropped,
		ingestRunsTotal,
		ingestRunDuration,
		ingestLeadsUpserted,
	)

	return &Metrics{
		registry:            registry,
		httpRequests:        httpRequests,
		httpRequestDur:      httpRequestDur,
		pinsDropped:         pinsDropped,
		ingestRunsTotal:     ingestRunsTotal,
		ingestRunDuration:   ingestRunDuration,
		ingestLeadsUpserted: ingestLeadsUpserted,
	}
}

// ObserveHTTPRequest records a single HTTP request/response cycle.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDur.With(labels).Observe(duration.Seconds())
}

// AddPinsDropped counts pins excluded from a map projection.
func (m *Metrics) AddPinsDropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pinsDropped.Add(float64(n))
}

// IncIngestRun increments the ingest run counter.
func (m *Metrics) IncIngestRun() {
	if m == nil {
		return
	}
	m.ingestRunsTotal.Inc()
}

// ObserveIngestRunDuration observes an ingest run duration.
func (m *Metrics) ObserveIngestRunDuration(duration time.Duration) {
	if m == nil {
		return
	}
	m.ingestRunDuration.Observe(duration.Seconds())
}

// AddLeadsUpserted counts lead rows written by an ingest run.
func (m *Metrics) AddLeadsUpserted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ingestLeadsUpserted.Add(float64(n))
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
