package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder records dashboard query and dataset metrics on its own registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	queryCounter   *prometheus.CounterVec
	queryDuration  *prometheus.HistogramVec
	filteredRows   *prometheus.HistogramVec
	datasetRows    prometheus.Gauge
	integrityDrift prometheus.Counter
	httpRequests   *prometheus.CounterVec
}

// NewPrometheusRecorder creates a new instance of PrometheusRecorder.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		queryCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bikes_queries_total",
			Help: "Total number of dashboard queries by kind and outcome.",
		}, []string{"kind", "outcome"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bikes_query_duration_seconds",
			Help:    "Duration of filter and aggregation runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		filteredRows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bikes_filtered_rows",
			Help:    "Number of rows left after filtering.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9),
		}, []string{"kind"}),
		datasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bikes_dataset_rows",
			Help: "Number of rows in the loaded base table.",
		}),
		integrityDrift: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bikes_integrity_drift_total",
			Help: "Integrity checks that found the source differing from the loaded table.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bikes_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	registry.MustRegister(r.queryCounter)
	registry.MustRegister(r.queryDuration)
	registry.MustRegister(r.filteredRows)
	registry.MustRegister(r.datasetRows)
	registry.MustRegister(r.integrityDrift)
	registry.MustRegister(r.httpRequests)

	return r
}

// Handler exposes the registry in the Prometheus text format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordQuery records one filter/aggregation run.
func (r *PrometheusRecorder) RecordQuery(kind, outcome string, rows int, elapsed time.Duration) {
	r.queryCounter.WithLabelValues(kind, outcome).Inc()
	r.queryDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	r.filteredRows.WithLabelValues(kind).Observe(float64(rows))
}

// SetDatasetRows records the size of the loaded table.
func (r *PrometheusRecorder) SetDatasetRows(n int) {
	r.datasetRows.Set(float64(n))
}

// RecordIntegrityDrift counts an integrity check that found a changed source.
func (r *PrometheusRecorder) RecordIntegrityDrift() {
	r.integrityDrift.Inc()
}

// RecordHTTPRequest counts a served HTTP request.
func (r *PrometheusRecorder) RecordHTTPRequest(route string, code int) {
	r.httpRequests.WithLabelValues(route, statusLabel(code)).Inc()
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
