package storage

import (
	"context"
	"errors"
	"time"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/observability"
)

// InstrumentedReportStore wraps a ReportStore with Prometheus metrics.
// The backend label distinguishes fs, postgres and memory in dashboards.
type InstrumentedReportStore struct {
	inner   ReportStore
	backend string
}

// NewInstrumentedReportStore wraps the given store.
func NewInstrumentedReportStore(inner ReportStore, backend string) *InstrumentedReportStore {
	return &InstrumentedReportStore{inner: inner, backend: backend}
}

var _ ReportStore = (*InstrumentedReportStore)(nil)

// storageError filters out ErrNotFound: an empty store is not a failure.
func storageError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Write records the write, its duration and any error, then delegates.
func (s *InstrumentedReportStore) Write(ctx context.Context, report *domain.EvaluationReport) (string, error) {
	start := time.Now()
	id, err := s.inner.Write(ctx, report)
	observability.RecordStorageOp(s.backend, "write", time.Since(start).Seconds(), storageError(err))
	if err == nil {
		observability.RecordReportWrite(s.backend)
	}
	return id, err
}

// GetLatest delegates and records the read.
func (s *InstrumentedReportStore) GetLatest(ctx context.Context) (*domain.StoredReport, error) {
	start := time.Now()
	report, err := s.inner.GetLatest(ctx)
	observability.RecordStorageOp(s.backend, "get_latest", time.Since(start).Seconds(), storageError(err))
	if err == nil {
		observability.RecordReportRead(s.backend, "get_latest")
	}
	return report, err
}

// GetByID delegates and records the read.
func (s *InstrumentedReportStore) GetByID(ctx context.Context, reportID string) (*domain.StoredReport, error) {
	start := time.Now()
	report, err := s.inner.GetByID(ctx, reportID)
	observability.RecordStorageOp(s.backend, "get_by_id", time.Since(start).Seconds(), storageError(err))
	if err == nil {
		observability.RecordReportRead(s.backend, "get_by_id")
	}
	return report, err
}

// ListIDs delegates and records the read.
func (s *InstrumentedReportStore) ListIDs(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := s.inner.ListIDs(ctx)
	observability.RecordStorageOp(s.backend, "list_ids", time.Since(start).Seconds(), storageError(err))
	if err == nil {
		observability.RecordReportRead(s.backend, "list_ids")
	}
	return ids, err
}
