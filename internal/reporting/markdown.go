package reporting

import (
	"fmt"
	"strings"
	"time"

	"fraud-eval-lab/internal/domain"
)

// RenderMarkdown renders one evaluation report as Markdown string.
func RenderMarkdown(r *domain.StoredReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Fraud Detection Evaluation Report\n\n")
	sb.WriteString(fmt.Sprintf("Report ID: %s\n\n", r.ReportID))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.Metadata.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Samples: %d (fraud: %d, legitimate: %d)\n\n",
		r.Metadata.TotalSamples, r.Metadata.FraudSamples, r.Metadata.LegitimateSamples))

	m := r.Metrics

	// Confusion Matrix
	sb.WriteString("## Confusion Matrix\n\n")
	sb.WriteString("| | Predicted Fraud | Predicted Legitimate |\n")
	sb.WriteString("|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Actual Fraud | %d | %d |\n", m.TruePositives, m.FalseNegatives))
	sb.WriteString(fmt.Sprintf("| Actual Legitimate | %d | %d |\n", m.FalsePositives, m.TrueNegatives))
	sb.WriteString("\n")

	// Classification Metrics
	sb.WriteString("## Classification Metrics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Precision | %.4f |\n", m.Precision))
	sb.WriteString(fmt.Sprintf("| Recall | %.4f |\n", m.Recall))
	sb.WriteString(fmt.Sprintf("| F1 Score | %.4f |\n", m.F1Score))
	sb.WriteString(fmt.Sprintf("| Accuracy | %.4f |\n", m.Accuracy))
	sb.WriteString(fmt.Sprintf("| AUC-PR | %.4f |\n", m.AUCPR))
	sb.WriteString(fmt.Sprintf("| AUC-ROC | %.4f |\n", m.AUCROC))
	sb.WriteString("\n")

	// Business Metrics
	sb.WriteString("## Business Metrics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Fraud Rate | %.4f |\n", m.FraudRate))
	sb.WriteString(fmt.Sprintf("| Fraud Capture Rate | %.4f |\n", m.FraudCaptureRate))
	sb.WriteString(fmt.Sprintf("| False Positive Rate | %.4f |\n", m.FalsePositiveRate))
	sb.WriteString(fmt.Sprintf("| False Negative Rate | %.4f |\n", m.FalseNegativeRate))
	sb.WriteString(fmt.Sprintf("| Total Fraud Amount | %.2f |\n", m.TotalFraudAmount))
	sb.WriteString(fmt.Sprintf("| Missed Fraud Amount | %.2f |\n", m.MissedFraudAmount))
	sb.WriteString(fmt.Sprintf("| Fraud Loss Rate | %.4f |\n", m.FraudLossRate))
	sb.WriteString("\n")

	// Confidence Statistics
	sb.WriteString("## Confidence Statistics\n\n")
	sb.WriteString("| Predicted Class | Mean | Stddev |\n")
	sb.WriteString("|-----------------|------|--------|\n")
	sb.WriteString(fmt.Sprintf("| Fraud | %.4f | %.4f |\n", m.FraudConfidenceAvg, m.FraudConfidenceStd))
	sb.WriteString(fmt.Sprintf("| Legitimate | %.4f | %.4f |\n", m.LegitimateConfidenceAvg, m.LegitimateConfidenceStd))
	sb.WriteString("\n")

	return sb.String()
}

// RenderComparisonMarkdown renders a two-model comparison as Markdown.
func RenderComparisonMarkdown(rows []ComparisonRow) string {
	var sb strings.Builder

	sb.WriteString("# Model Comparison\n\n")
	if len(rows) == 0 {
		sb.WriteString("No comparable metrics.\n")
		return sb.String()
	}

	sb.WriteString("| Metric | Model 1 | Model 2 | Difference |\n")
	sb.WriteString("|--------|---------|---------|------------|\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %.4f | %.4f | %+.4f |\n",
			row.Metric, row.First, row.Second, row.Difference))
	}
	sb.WriteString("\n")

	return sb.String()
}

// RenderTrendMarkdown renders a trend summary as Markdown.
func RenderTrendMarkdown(t *TrendSummary) string {
	var sb strings.Builder

	sb.WriteString("# Evaluation Trend\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", t.GeneratedAt.Format(time.RFC3339)))

	if len(t.Runs) == 0 {
		sb.WriteString("No evaluation runs recorded.\n")
		return sb.String()
	}

	sb.WriteString("| Report | Timestamp | Samples | Precision | Recall | F1 | Accuracy | AUC-PR | AUC-ROC |\n")
	sb.WriteString("|--------|-----------|---------|-----------|--------|----|----------|--------|--------|\n")
	for _, run := range t.Runs {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			run.ReportID, run.Timestamp.Format(time.RFC3339), run.Samples,
			run.Precision, run.Recall, run.F1Score, run.Accuracy, run.AUCPR, run.AUCROC))
	}
	sb.WriteString("\n")

	if len(t.Runs) > 1 {
		sb.WriteString(fmt.Sprintf("F1 delta over window: %+.4f | Recall delta: %+.4f | AUC-ROC delta: %+.4f\n",
			t.F1Delta, t.RecallDelta, t.AUCROCDelta))
	}

	return sb.String()
}
