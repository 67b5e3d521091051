// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Evaluation metrics
	EvaluationsTotal   *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	SamplesEvaluated   prometheus.Counter
	LastF1Score        prometheus.Gauge
	LastAUCROC         prometheus.Gauge

	// Feed metrics
	FeedFramesReceived prometheus.Counter
	FeedFramesDropped  *prometheus.CounterVec
	FeedReconnects     prometheus.Counter

	// Storage metrics
	ReportWritesTotal  *prometheus.CounterVec
	ReportReadsTotal   *prometheus.CounterVec
	StorageDuration    *prometheus.HistogramVec
	StorageErrorsTotal *prometheus.CounterVec

	// Health metrics
	LastSuccessfulEvaluation prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "fraud_eval"
	}

	return &Metrics{
		// Evaluation metrics
		EvaluationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "evaluation",
			Name:      "runs_total",
			Help:      "Total number of evaluation runs by status",
		}, []string{"status"}),
		EvaluationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "evaluation",
			Name:      "duration_seconds",
			Help:      "Evaluation run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		SamplesEvaluated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "evaluation",
			Name:      "samples_total",
			Help:      "Total number of transaction samples evaluated",
		}),
		LastF1Score: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "evaluation",
			Name:      "last_f1_score",
			Help:      "F1 score of the most recent evaluation run",
		}),
		LastAUCROC: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "evaluation",
			Name:      "last_auc_roc",
			Help:      "AUC-ROC of the most recent evaluation run",
		}),

		// Feed metrics
		FeedFramesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "frames_received_total",
			Help:      "Total number of batch frames received from the feed",
		}),
		FeedFramesDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "frames_dropped_total",
			Help:      "Total number of batch frames dropped by reason",
		}, []string{"reason"}),
		FeedReconnects: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "reconnects_total",
			Help:      "Total number of feed reconnect attempts",
		}),

		// Storage metrics
		ReportWritesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "report_writes_total",
			Help:      "Total number of report writes by backend",
		}, []string{"backend"}),
		ReportReadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "report_reads_total",
			Help:      "Total number of report reads by backend and operation",
		}, []string{"backend", "operation"}),
		StorageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "operation_duration_seconds",
			Help:      "Storage operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "operation"}),
		StorageErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "errors_total",
			Help:      "Total number of storage errors by backend and operation",
		}, []string{"backend", "operation"}),

		// Health metrics
		LastSuccessfulEvaluation: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_evaluation_timestamp",
			Help:      "Unix timestamp of last successful evaluation run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordEvaluation records an evaluation run.
func RecordEvaluation(status string, durationSeconds float64, samples int) {
	DefaultMetrics.EvaluationsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.EvaluationDuration.Observe(durationSeconds)
	DefaultMetrics.SamplesEvaluated.Add(float64(samples))
}

// RecordEvaluationScores updates the last-run score gauges and the
// health timestamp.
func RecordEvaluationScores(f1, aucROC float64, completedAtUnix int64) {
	DefaultMetrics.LastF1Score.Set(f1)
	DefaultMetrics.LastAUCROC.Set(aucROC)
	DefaultMetrics.LastSuccessfulEvaluation.Set(float64(completedAtUnix))
}

// RecordFeedFrame increments the frames received counter.
func RecordFeedFrame() {
	DefaultMetrics.FeedFramesReceived.Inc()
}

// RecordFeedFrameDropped records a dropped frame with a reason.
func RecordFeedFrameDropped(reason string) {
	DefaultMetrics.FeedFramesDropped.WithLabelValues(reason).Inc()
}

// RecordFeedReconnect increments the feed reconnect counter.
func RecordFeedReconnect() {
	DefaultMetrics.FeedReconnects.Inc()
}

// RecordStorageOp records a storage operation.
func RecordStorageOp(backend, operation string, seconds float64, err error) {
	DefaultMetrics.StorageDuration.WithLabelValues(backend, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.StorageErrorsTotal.WithLabelValues(backend, operation).Inc()
	}
}

// RecordReportWrite increments the report writes counter for a backend.
func RecordReportWrite(backend string) {
	DefaultMetrics.ReportWritesTotal.WithLabelValues(backend).Inc()
}

// RecordReportRead increments the report reads counter.
func RecordReportRead(backend, operation string) {
	DefaultMetrics.ReportReadsTotal.WithLabelValues(backend, operation).Inc()
}
