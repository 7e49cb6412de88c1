package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	Runs            *prometheus.CounterVec
	RunDurationSec  prometheus.Histogram
	RowsSkipped     prometheus.Counter
	Duplicates      prometheus.Counter
	Anomalies       prometheus.Counter
	Products        prometheus.Gauge
	Links           prometheus.Gauge
	Coils           prometheus.Gauge
	LastSuccessUnix prometheus.Gauge

	Requests *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "catalog_ingestion_runs_total"}, []string{"result"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_ingestion_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_rows_skipped_total"})
	duplicates := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_duplicates_dropped_total"})
	anomalies := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_grouping_anomalies_total"})
	products := prometheus.NewGauge(prometheus.GaugeOpts{Name: "catalog_products"})
	links := prometheus.NewGauge(prometheus.GaugeOpts{Name: "catalog_product_tags"})
	coils := prometheus.NewGauge(prometheus.GaugeOpts{Name: "catalog_coils"})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{Name: "catalog_last_success_timestamp_seconds"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "catalog_http_requests_total"}, []string{"route", "status"})

	r.MustRegister(runs, duration, skipped, duplicates, anomalies, products, links, coils, lastSuccess, requests)
	return &Registry{
		reg:             r,
		Runs:            runs,
		RunDurationSec:  duration,
		RowsSkipped:     skipped,
		Duplicates:      duplicates,
		Anomalies:       anomalies,
		Products:        products,
		Links:           links,
		Coils:           coils,
		LastSuccessUnix: lastSuccess,
		Requests:        requests,
	}
}

// ObserveRequest counts one served request by route template and status.
func (r *Registry) ObserveRequest(route string, status int) {
	r.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
