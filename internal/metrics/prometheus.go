package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder backed by Prometheus.
type PrometheusRecorder struct {
	requests        *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	uploads         *prometheus.CounterVec
	uploadRows      *prometheus.CounterVec
	uploadsRejected *prometheus.CounterVec
	analysisLatency *prometheus.HistogramVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheus creates a recorder and registers its collectors.
//
// reg defaults to prometheus.DefaultRegisterer and namespace to "slotting".
func NewPrometheus(reg prometheus.Registerer, namespace string) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "slotting"
	}

	p := &PrometheusRecorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "uploads_total",
			Help:      "Accepted pick uploads by kind (element, item).",
		}, []string{"kind"}),
		uploadRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rows_total",
			Help:      "Pick rows stored by upload kind.",
		}, []string{"kind"}),
		uploadsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rejected_total",
			Help:      "Uploads rejected by validation, by kind.",
		}, []string{"kind"}),
		analysisLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "duration_seconds",
			Help:      "Time spent computing an analysis, by name.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~2s
		}, []string{"analysis"}),
	}

	for _, c := range []prometheus.Collector{
		p.requests, p.requestLatency, p.uploads, p.uploadRows, p.uploadsRejected, p.analysisLatency,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ObserveRequest records one served HTTP request.
func (p *PrometheusRecorder) ObserveRequest(method, route string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}

// RecordUpload records an accepted pick upload.
func (p *PrometheusRecorder) RecordUpload(kind string, rows int) {
	p.uploads.WithLabelValues(kind).Inc()
	p.uploadRows.WithLabelValues(kind).Add(float64(rows))
}

// RecordUploadRejected records an upload that failed validation.
func (p *PrometheusRecorder) RecordUploadRejected(kind string) {
	p.uploadsRejected.WithLabelValues(kind).Inc()
}

// ObserveAnalysis records the duration of one analytics computation.
func (p *PrometheusRecorder) ObserveAnalysis(name string, latency time.Duration) {
	p.analysisLatency.WithLabelValues(name).Observe(latency.Seconds())
}
