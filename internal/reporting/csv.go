package reporting

import (
	"fmt"
	"strings"
	"time"

	"fraud-eval-lab/internal/domain"
)

// RenderCSV renders stored reports as CSV string, one row per run.
func RenderCSV(reports []*domain.StoredReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString("report_id,timestamp,total_samples,fraud_samples,legitimate_samples,")
	sb.WriteString("true_positives,false_positives,true_negatives,false_negatives,")
	sb.WriteString("precision,recall,f1_score,accuracy,")
	sb.WriteString("fraud_rate,fraud_capture_rate,false_positive_rate,false_negative_rate,")
	sb.WriteString("total_fraud_amount,missed_fraud_amount,fraud_loss_rate,")
	sb.WriteString("fraud_confidence_avg,fraud_confidence_std,legitimate_confidence_avg,legitimate_confidence_std,")
	sb.WriteString("auc_pr,auc_roc\n")

	// Rows
	for _, r := range reports {
		m := r.Metrics
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%d,%d,%d,%d,%d,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.2f,%.2f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f\n",
			r.ReportID,
			r.Metadata.Timestamp.Format(time.RFC3339),
			r.Metadata.TotalSamples,
			r.Metadata.FraudSamples,
			r.Metadata.LegitimateSamples,
			m.TruePositives,
			m.FalsePositives,
			m.TrueNegatives,
			m.FalseNegatives,
			m.Precision,
			m.Recall,
			m.F1Score,
			m.Accuracy,
			m.FraudRate,
			m.FraudCaptureRate,
			m.FalsePositiveRate,
			m.FalseNegativeRate,
			m.TotalFraudAmount,
			m.MissedFraudAmount,
			m.FraudLossRate,
			m.FraudConfidenceAvg,
			m.FraudConfidenceStd,
			m.LegitimateConfidenceAvg,
			m.LegitimateConfidenceStd,
			m.AUCPR,
			m.AUCROC,
		))
	}

	return sb.String()
}
