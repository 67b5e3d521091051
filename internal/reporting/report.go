package reporting

import "time"

// ComparisonRow is one metric compared across two reports.
type ComparisonRow struct {
	Metric     string  `json:"metric"`
	First      float64 `json:"first"`
	Second     float64 `json:"second"`
	Difference float64 `json:"difference"` // first - second
}

// TrendPoint is one historical evaluation run in a trend summary.
type TrendPoint struct {
	ReportID  string    `json:"report_id"`
	Timestamp time.Time `json:"timestamp"`
	Samples   int       `json:"samples"`
	Precision float64   `json:"precision"`
	Recall    float64   `json:"recall"`
	F1Score   float64   `json:"f1_score"`
	Accuracy  float64   `json:"accuracy"`
	AUCPR     float64   `json:"auc_pr"`
	AUCROC    float64   `json:"auc_roc"`
}

// TrendSummary aggregates recent evaluation runs, newest first.
type TrendSummary struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Runs        []TrendPoint `json:"runs"`

	// Deltas between the newest and oldest run in the window.
	F1Delta     float64 `json:"f1_delta"`
	RecallDelta float64 `json:"recall_delta"`
	AUCROCDelta float64 `json:"auc_roc_delta"`
}
