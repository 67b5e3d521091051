package memory

import (
	"context"
	"sort"
	"sync"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/storage"
)

// MetricHistoryStore is an in-memory implementation of
// storage.MetricHistoryStore.
type MetricHistoryStore struct {
	mu   sync.RWMutex
	data map[string]*domain.StoredReport
}

// NewMetricHistoryStore creates a new in-memory metric history store.
func NewMetricHistoryStore() *MetricHistoryStore {
	return &MetricHistoryStore{
		data: make(map[string]*domain.StoredReport),
	}
}

// Append adds one history row. Returns ErrDuplicateKey if the report
// identifier was already appended.
func (s *MetricHistoryStore) Append(_ context.Context, report *domain.StoredReport) error {
	if report == nil || report.ReportID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[report.ReportID]; exists {
		return storage.ErrDuplicateKey
	}

	reportCopy := *report
	s.data[report.ReportID] = &reportCopy
	return nil
}

// GetRecent returns up to limit rows, newest first.
func (s *MetricHistoryStore) GetRecent(_ context.Context, limit int) ([]*domain.StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.StoredReport, 0, len(s.data))
	for _, r := range s.data {
		reportCopy := *r
		result = append(result, &reportCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ReportID > result[j].ReportID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

var _ storage.MetricHistoryStore = (*MetricHistoryStore)(nil)
