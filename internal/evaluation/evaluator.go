package evaluation

import (
	"context"
	"fmt"
	"log"
	"time"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/storage"
)

// ComputeReport runs the full evaluation over the two collections and
// assembles the report. It is a pure function: no I/O, no shared state,
// safe to call concurrently. The clock value becomes the report timestamp.
func ComputeReport(groundTruth []domain.GroundTruthRecord, predictions []domain.PredictionRecord, now time.Time) (*domain.EvaluationReport, error) {
	if err := ValidateInputs(groundTruth, predictions); err != nil {
		return nil, err
	}

	acc := buildConfusion(groundTruth, predictions)
	metrics := computeMetrics(acc)

	ranked := rankRecords(groundTruth, predictions)
	totalFraud := acc.tp + acc.fn
	totalLegitimate := acc.tn + acc.fp
	metrics.AUCPR = computeAUCPR(ranked, totalFraud)
	metrics.AUCROC = computeAUCROC(ranked, totalFraud, totalLegitimate)

	return &domain.EvaluationReport{
		Metrics: metrics,
		Metadata: domain.ReportMetadata{
			Timestamp:         now.UTC(),
			EvaluationType:    domain.EvaluationType,
			TotalSamples:      acc.total(),
			FraudSamples:      totalFraud,
			LegitimateSamples: totalLegitimate,
		},
	}, nil
}

// Evaluator evaluates prediction batches and persists the resulting reports.
// It replaces the original module-level singleton: construct one explicitly
// and inject the store and clock so tests can substitute both.
type Evaluator struct {
	store   storage.ReportStore
	history storage.MetricHistoryStore // optional trend analytics sink
	now     func() time.Time
	logger  *log.Logger
}

// NewEvaluator creates an evaluator backed by the given report store.
func NewEvaluator(store storage.ReportStore) *Evaluator {
	return &Evaluator{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock for deterministic report timestamps.
func (e *Evaluator) WithClock(now func() time.Time) *Evaluator {
	e.now = now
	return e
}

// WithMetricHistory adds an append-only metric history sink. Append failures
// are logged and do not fail the evaluation.
func (e *Evaluator) WithMetricHistory(history storage.MetricHistoryStore) *Evaluator {
	e.history = history
	return e
}

// WithLogger sets the logger used for non-fatal warnings.
func (e *Evaluator) WithLogger(logger *log.Logger) *Evaluator {
	e.logger = logger
	return e
}

// Evaluate computes a report for the batch and persists it.
// Returns ErrLengthMismatch on input contract violation and a storage error
// when the write fails.
func (e *Evaluator) Evaluate(ctx context.Context, groundTruth []domain.GroundTruthRecord, predictions []domain.PredictionRecord) (*domain.StoredReport, error) {
	report, err := ComputeReport(groundTruth, predictions, e.now())
	if err != nil {
		return nil, err
	}

	reportID, err := e.store.Write(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("persist evaluation report: %w", err)
	}

	stored := &domain.StoredReport{ReportID: reportID, EvaluationReport: *report}

	if e.history != nil {
		if err := e.history.Append(ctx, stored); err != nil && e.logger != nil {
			e.logger.Printf("metric history append failed for %s: %v", reportID, err)
		}
	}

	return stored, nil
}

// Latest returns the most recently written report.
// Returns storage.ErrNotFound when no report exists yet.
func (e *Evaluator) Latest(ctx context.Context) (*domain.StoredReport, error) {
	return e.store.GetLatest(ctx)
}
