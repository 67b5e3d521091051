package reporting

import (
	"context"
	"time"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/storage"
)

// comparedMetrics lists the metrics included in model comparisons, in
// presentation order.
var comparedMetrics = []string{
	"precision", "recall", "f1_score", "accuracy",
	"fraud_capture_rate", "false_positive_rate",
	"auc_pr", "auc_roc",
}

// Generator produces comparisons and trend summaries from stored reports.
type Generator struct {
	history storage.MetricHistoryStore
	now     func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(history storage.MetricHistoryStore) *Generator {
	return &Generator{
		history: history,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Compare builds a per-metric comparison of two evaluation runs.
// Differences are first minus second, so a positive value means the first
// model scored higher.
func Compare(first, second *domain.StoredReport) []ComparisonRow {
	firstVals := metricValues(&first.Metrics)
	secondVals := metricValues(&second.Metrics)

	rows := make([]ComparisonRow, 0, len(comparedMetrics))
	for _, metric := range comparedMetrics {
		a := firstVals[metric]
		b := secondVals[metric]
		rows = append(rows, ComparisonRow{
			Metric:     metric,
			First:      a,
			Second:     b,
			Difference: a - b,
		})
	}
	return rows
}

// Trend summarizes the most recent evaluation runs. Delta fields compare the
// newest run in the window against the oldest.
func (g *Generator) Trend(ctx context.Context, limit int) (*TrendSummary, error) {
	reports, err := g.history.GetRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	summary := &TrendSummary{
		GeneratedAt: g.now(),
		Runs:        make([]TrendPoint, 0, len(reports)),
	}

	for _, r := range reports {
		summary.Runs = append(summary.Runs, TrendPoint{
			ReportID:  r.ReportID,
			Timestamp: r.Metadata.Timestamp,
			Samples:   r.Metadata.TotalSamples,
			Precision: r.Metrics.Precision,
			Recall:    r.Metrics.Recall,
			F1Score:   r.Metrics.F1Score,
			Accuracy:  r.Metrics.Accuracy,
			AUCPR:     r.Metrics.AUCPR,
			AUCROC:    r.Metrics.AUCROC,
		})
	}

	if len(reports) > 1 {
		newest := reports[0].Metrics
		oldest := reports[len(reports)-1].Metrics
		summary.F1Delta = newest.F1Score - oldest.F1Score
		summary.RecallDelta = newest.Recall - oldest.Recall
		summary.AUCROCDelta = newest.AUCROC - oldest.AUCROC
	}

	return summary, nil
}

// metricValues flattens the comparable metrics into a name-keyed map.
func metricValues(m *domain.Metrics) map[string]float64 {
	return map[string]float64{
		"precision":           m.Precision,
		"recall":              m.Recall,
		"f1_score":            m.F1Score,
		"accuracy":            m.Accuracy,
		"fraud_capture_rate":  m.FraudCaptureRate,
		"false_positive_rate": m.FalsePositiveRate,
		"auc_pr":              m.AUCPR,
		"auc_roc":             m.AUCROC,
	}
}
