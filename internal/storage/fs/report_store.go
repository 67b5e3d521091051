// Package fs persists evaluation reports as JSON documents on the local
// filesystem, one file per run: eval_report_<id>.json. The identifier embeds
// a sortable UTC timestamp, so a directory listing is chronological.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/storage"
)

const (
	filePrefix = "eval_report_"
	fileSuffix = ".json"
)

// ReportStore is a filesystem implementation of storage.ReportStore.
// Writes go to a temp file first and are renamed into place, so concurrent
// readers never observe a partially written report.
type ReportStore struct {
	dir string
	ids *storage.ReportIDGenerator
}

// NewReportStore creates a report store rooted at dir, creating it if needed.
func NewReportStore(dir string) (*ReportStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w: %v", storage.ErrStorage, err)
	}
	return &ReportStore{
		dir: dir,
		ids: storage.NewReportIDGenerator(),
	}, nil
}

// WithIDGenerator sets a custom identifier generator.
func (s *ReportStore) WithIDGenerator(ids *storage.ReportIDGenerator) *ReportStore {
	s.ids = ids
	return s
}

// Write persists the report atomically under a freshly minted identifier.
func (s *ReportStore) Write(_ context.Context, report *domain.EvaluationReport) (string, error) {
	if report == nil {
		return "", storage.ErrInvalidInput
	}

	id := s.ids.Next()
	path := filepath.Join(s.dir, filePrefix+id+fileSuffix)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(s.dir, filePrefix+"*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp report file: %w: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write report file: %w: %v", storage.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close report file: %w: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("publish report file: %w: %v", storage.ErrStorage, err)
	}

	return id, nil
}

// GetLatest returns the report with the greatest identifier.
func (s *ReportStore) GetLatest(ctx context.Context) (*domain.StoredReport, error) {
	ids, err := s.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, storage.ErrNotFound
	}
	return s.GetByID(ctx, ids[len(ids)-1])
}

// GetByID retrieves a report by its identifier.
func (s *ReportStore) GetByID(_ context.Context, reportID string) (*domain.StoredReport, error) {
	path := filepath.Join(s.dir, filePrefix+reportID+fileSuffix)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read report file: %w: %v", storage.ErrStorage, err)
	}

	var report domain.EvaluationReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report file %s: %w: %v", path, storage.ErrStorage, err)
	}

	return &domain.StoredReport{ReportID: reportID, EvaluationReport: report}, nil
}

// ListIDs returns all report identifiers in ascending order.
// Identifiers sort lexicographically, so this is write order.
func (s *ReportStore) ListIDs(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list report directory: %w: %v", storage.ErrStorage, err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix))
	}
	sort.Strings(ids)
	return ids, nil
}

var _ storage.ReportStore = (*ReportStore)(nil)
