package memory

import (
	"context"
	"sort"
	"sync"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/storage"
)

// ReportStore is an in-memory implementation of storage.ReportStore.
// Used by tests and the --use-memory server mode.
type ReportStore struct {
	mu   sync.RWMutex
	data map[string]*domain.EvaluationReport
	ids  *storage.ReportIDGenerator
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		data: make(map[string]*domain.EvaluationReport),
		ids:  storage.NewReportIDGenerator(),
	}
}

// WithIDGenerator sets a custom identifier generator, e.g. one with a
// fixed clock for deterministic tests.
func (s *ReportStore) WithIDGenerator(ids *storage.ReportIDGenerator) *ReportStore {
	s.ids = ids
	return s
}

// Write persists the report under a freshly minted identifier.
func (s *ReportStore) Write(_ context.Context, report *domain.EvaluationReport) (string, error) {
	if report == nil {
		return "", storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids.Next()
	if _, exists := s.data[id]; exists {
		return "", storage.ErrDuplicateKey
	}

	reportCopy := *report
	s.data[id] = &reportCopy
	return id, nil
}

// GetLatest returns the report with the greatest identifier.
func (s *ReportStore) GetLatest(_ context.Context) (*domain.StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latestID := ""
	for id := range s.data {
		if id > latestID {
			latestID = id
		}
	}
	if latestID == "" {
		return nil, storage.ErrNotFound
	}

	reportCopy := *s.data[latestID]
	return &domain.StoredReport{ReportID: latestID, EvaluationReport: reportCopy}, nil
}

// GetByID retrieves a report by its identifier.
func (s *ReportStore) GetByID(_ context.Context, reportID string) (*domain.StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, exists := s.data[reportID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	reportCopy := *report
	return &domain.StoredReport{ReportID: reportID, EvaluationReport: reportCopy}, nil
}

// ListIDs returns all report identifiers in ascending order.
func (s *ReportStore) ListIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

var _ storage.ReportStore = (*ReportStore)(nil)
