package domain

import "time"

// EvaluationType tags every report with the kind of evaluation that produced it.
const EvaluationType = "fraud_detection"

// Metrics is the flat metric set of one evaluation run.
// All ratios follow the denominator-zero => 0 convention, so every field is
// always a finite number.
type Metrics struct {
	// Confusion matrix counts
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`

	// Classification
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
	Accuracy  float64 `json:"accuracy"`

	// Business
	FraudRate         float64 `json:"fraud_rate"`
	FraudCaptureRate  float64 `json:"fraud_capture_rate"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
	FalseNegativeRate float64 `json:"false_negative_rate"`

	// Monetary
	TotalFraudAmount  float64 `json:"total_fraud_amount"`
	MissedFraudAmount float64 `json:"missed_fraud_amount"`
	FraudLossRate     float64 `json:"fraud_loss_rate"`

	// Confidence statistics, grouped by predicted class
	FraudConfidenceAvg      float64 `json:"fraud_confidence_avg"`
	FraudConfidenceStd      float64 `json:"fraud_confidence_std"`
	LegitimateConfidenceAvg float64 `json:"legitimate_confidence_avg"`
	LegitimateConfidenceStd float64 `json:"legitimate_confidence_std"`

	// Ranking-curve areas
	AUCPR  float64 `json:"auc_pr"`
	AUCROC float64 `json:"auc_roc"`
}

// ReportMetadata describes the run that produced a report.
type ReportMetadata struct {
	Timestamp         time.Time `json:"timestamp"` // UTC
	EvaluationType    string    `json:"evaluation_type"`
	TotalSamples      int       `json:"total_samples"`
	FraudSamples      int       `json:"fraud_samples"`      // tp + fn
	LegitimateSamples int       `json:"legitimate_samples"` // tn + fp
}

// EvaluationReport is the immutable result of one evaluation run.
type EvaluationReport struct {
	Metrics  Metrics        `json:"metrics"`
	Metadata ReportMetadata `json:"metadata"`
}

// StoredReport is an EvaluationReport under its persistence identifier.
// Identifiers sort lexicographically in write order.
type StoredReport struct {
	ReportID string `json:"report_id"`
	EvaluationReport
}
