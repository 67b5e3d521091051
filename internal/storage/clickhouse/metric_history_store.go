package clickhouse

import (
	"context"
	"fmt"
	"time"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/storage"
)

// MetricHistoryStore implements storage.MetricHistoryStore using ClickHouse.
// One flat row per evaluation run; the wide column layout keeps trend
// queries (per-metric aggregation across runs) cheap.
type MetricHistoryStore struct {
	conn *Conn
}

// NewMetricHistoryStore creates a new MetricHistoryStore.
func NewMetricHistoryStore(conn *Conn) *MetricHistoryStore {
	return &MetricHistoryStore{conn: conn}
}

// Compile-time interface check.
var _ storage.MetricHistoryStore = (*MetricHistoryStore)(nil)

// Append adds one history row. ClickHouse MergeTree does not enforce
// uniqueness at insert time, so an explicit existence check provides the
// append-only contract.
func (s *MetricHistoryStore) Append(ctx context.Context, report *domain.StoredReport) error {
	if report == nil || report.ReportID == "" {
		return storage.ErrInvalidInput
	}

	exists, err := s.exists(ctx, report.ReportID)
	if err != nil {
		return fmt.Errorf("check exists: %w: %v", storage.ErrStorage, err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	query := `
		INSERT INTO metric_history (
			report_id, evaluated_at,
			total_samples, fraud_samples, legitimate_samples,
			true_positives, false_positives, true_negatives, false_negatives,
			precision, recall, f1_score, accuracy,
			fraud_rate, fraud_capture_rate, false_positive_rate, false_negative_rate,
			total_fraud_amount, missed_fraud_amount, fraud_loss_rate,
			fraud_confidence_avg, fraud_confidence_std,
			legitimate_confidence_avg, legitimate_confidence_std,
			auc_pr, auc_roc
		) VALUES (
			?, ?,
			?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?,
			?, ?,
			?, ?,
			?, ?
		)
	`

	m := report.Metrics
	md := report.Metadata
	err = s.conn.Exec(ctx, query,
		report.ReportID, md.Timestamp,
		md.TotalSamples, md.FraudSamples, md.LegitimateSamples,
		m.TruePositives, m.FalsePositives, m.TrueNegatives, m.FalseNegatives,
		m.Precision, m.Recall, m.F1Score, m.Accuracy,
		m.FraudRate, m.FraudCaptureRate, m.FalsePositiveRate, m.FalseNegativeRate,
		m.TotalFraudAmount, m.MissedFraudAmount, m.FraudLossRate,
		m.FraudConfidenceAvg, m.FraudConfidenceStd,
		m.LegitimateConfidenceAvg, m.LegitimateConfidenceStd,
		m.AUCPR, m.AUCROC,
	)
	if err != nil {
		return fmt.Errorf("insert metric history row: %w: %v", storage.ErrStorage, err)
	}
	return nil
}

// GetRecent returns up to limit rows ordered by report_id descending.
func (s *MetricHistoryStore) GetRecent(ctx context.Context, limit int) ([]*domain.StoredReport, error) {
	query := `
		SELECT
			report_id, evaluated_at,
			total_samples, fraud_samples, legitimate_samples,
			true_positives, false_positives, true_negatives, false_negatives,
			precision, recall, f1_score, accuracy,
			fraud_rate, fraud_capture_rate, false_positive_rate, false_negative_rate,
			total_fraud_amount, missed_fraud_amount, fraud_loss_rate,
			fraud_confidence_avg, fraud_confidence_std,
			legitimate_confidence_avg, legitimate_confidence_std,
			auc_pr, auc_roc
		FROM metric_history
		ORDER BY report_id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query metric history: %w: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	var result []*domain.StoredReport
	for rows.Next() {
		var (
			r         domain.StoredReport
			evaluated time.Time
			totalS    uint32
			fraudS    uint32
			legitS    uint32
			tp        uint32
			fp        uint32
			tn        uint32
			fn        uint32
		)
		err := rows.Scan(
			&r.ReportID, &evaluated,
			&totalS, &fraudS, &legitS,
			&tp, &fp, &tn, &fn,
			&r.Metrics.Precision, &r.Metrics.Recall, &r.Metrics.F1Score, &r.Metrics.Accuracy,
			&r.Metrics.FraudRate, &r.Metrics.FraudCaptureRate, &r.Metrics.FalsePositiveRate, &r.Metrics.FalseNegativeRate,
			&r.Metrics.TotalFraudAmount, &r.Metrics.MissedFraudAmount, &r.Metrics.FraudLossRate,
			&r.Metrics.FraudConfidenceAvg, &r.Metrics.FraudConfidenceStd,
			&r.Metrics.LegitimateConfidenceAvg, &r.Metrics.LegitimateConfidenceStd,
			&r.Metrics.AUCPR, &r.Metrics.AUCROC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan metric history row: %w: %v", storage.ErrStorage, err)
		}

		r.Metadata = domain.ReportMetadata{
			Timestamp:         evaluated,
			EvaluationType:    domain.EvaluationType,
			TotalSamples:      int(totalS),
			FraudSamples:      int(fraudS),
			LegitimateSamples: int(legitS),
		}
		r.Metrics.TruePositives = int(tp)
		r.Metrics.FalsePositives = int(fp)
		r.Metrics.TrueNegatives = int(tn)
		r.Metrics.FalseNegatives = int(fn)

		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metric history rows: %w: %v", storage.ErrStorage, err)
	}
	return result, nil
}

// exists checks whether a report_id was already appended.
func (s *MetricHistoryStore) exists(ctx context.Context, reportID string) (bool, error) {
	var count uint64
	row := s.conn.QueryRow(ctx, `SELECT count() FROM metric_history WHERE report_id = ?`, reportID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
