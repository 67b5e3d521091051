package storage

import (
	"context"

	"fraud-eval-lab/internal/domain"
)

// ReportStore persists evaluation reports under sortable identifiers.
// Identifiers increase monotonically, so the lexicographically greatest
// identifier always belongs to the most recent write.
type ReportStore interface {
	// Write persists the report under a freshly minted identifier and
	// returns it. Each write is atomic from the caller's perspective:
	// concurrent readers never observe a partially written report.
	// Persistence failures wrap ErrStorage.
	Write(ctx context.Context, report *domain.EvaluationReport) (string, error)

	// GetLatest returns the report with the greatest identifier.
	// Returns ErrNotFound when the store is empty.
	GetLatest(ctx context.Context) (*domain.StoredReport, error)

	// GetByID retrieves a report by its identifier. Returns ErrNotFound
	// if it does not exist.
	GetByID(ctx context.Context, reportID string) (*domain.StoredReport, error)

	// ListIDs returns all report identifiers in ascending order.
	ListIDs(ctx context.Context) ([]string, error)
}

// MetricHistoryStore is an append-only analytics sink holding one flat row
// per evaluation run, for trend queries across runs.
type MetricHistoryStore interface {
	// Append adds one history row. Returns ErrDuplicateKey if the report
	// identifier was already appended.
	Append(ctx context.Context, report *domain.StoredReport) error

	// GetRecent returns up to limit rows ordered by report identifier
	// descending (newest first). limit <= 0 means no limit.
	GetRecent(ctx context.Context, limit int) ([]*domain.StoredReport, error)
}
