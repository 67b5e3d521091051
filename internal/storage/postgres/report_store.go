package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/storage"
)

// ReportStore implements storage.ReportStore using PostgreSQL.
// Reports are stored whole as JSONB; report_id is the primary key, so the
// latest-retrieval invariant reduces to ORDER BY report_id DESC LIMIT 1.
type ReportStore struct {
	pool *Pool
	ids  *storage.ReportIDGenerator
}

// NewReportStore creates a new ReportStore.
func NewReportStore(pool *Pool) *ReportStore {
	return &ReportStore{
		pool: pool,
		ids:  storage.NewReportIDGenerator(),
	}
}

// WithIDGenerator sets a custom identifier generator.
func (s *ReportStore) WithIDGenerator(ids *storage.ReportIDGenerator) *ReportStore {
	s.ids = ids
	return s
}

// Compile-time interface check.
var _ storage.ReportStore = (*ReportStore)(nil)

// Write persists the report under a freshly minted identifier.
func (s *ReportStore) Write(ctx context.Context, report *domain.EvaluationReport) (string, error) {
	if report == nil {
		return "", storage.ErrInvalidInput
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w: %v", storage.ErrStorage, err)
	}

	id := s.ids.Next()
	query := `
		INSERT INTO eval_reports (report_id, report, created_at)
		VALUES ($1, $2, $3)
	`

	_, err = s.pool.Exec(ctx, query, id, payload, report.Metadata.Timestamp)
	if err != nil {
		if isDuplicateKeyError(err) {
			return "", storage.ErrDuplicateKey
		}
		return "", fmt.Errorf("insert eval report: %w: %v", storage.ErrStorage, err)
	}
	return id, nil
}

// GetLatest returns the report with the greatest identifier.
func (s *ReportStore) GetLatest(ctx context.Context) (*domain.StoredReport, error) {
	query := `
		SELECT report_id, report
		FROM eval_reports
		ORDER BY report_id DESC
		LIMIT 1
	`
	return s.scanOne(s.pool.QueryRow(ctx, query))
}

// GetByID retrieves a report by its identifier.
func (s *ReportStore) GetByID(ctx context.Context, reportID string) (*domain.StoredReport, error) {
	query := `
		SELECT report_id, report
		FROM eval_reports
		WHERE report_id = $1
	`
	return s.scanOne(s.pool.QueryRow(ctx, query, reportID))
}

// ListIDs returns all report identifiers in ascending order.
func (s *ReportStore) ListIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT report_id
		FROM eval_reports
		ORDER BY report_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list eval report ids: %w: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan eval report id: %w: %v", storage.ErrStorage, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate eval report ids: %w: %v", storage.ErrStorage, err)
	}
	return ids, nil
}

// scanOne scans a single (report_id, report) row.
func (s *ReportStore) scanOne(row interface{ Scan(...any) error }) (*domain.StoredReport, error) {
	var (
		id      string
		payload []byte
	)
	if err := row.Scan(&id, &payload); err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get eval report: %w: %v", storage.ErrStorage, err)
	}

	var report domain.EvaluationReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("decode eval report %s: %w: %v", id, storage.ErrStorage, err)
	}

	return &domain.StoredReport{ReportID: id, EvaluationReport: report}, nil
}
