package ingestion

import (
	"context"
	"errors"
	"log"
	"time"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/evaluation"
	"fraud-eval-lab/internal/observability"
)

// Runner consumes labeled batches from a feed and evaluates each one.
// Batches with contract violations are dropped; storage failures abort
// the run so the operator notices a dead backend.
type Runner struct {
	source    BatchSource
	evaluator *evaluation.Evaluator
	logger    *log.Logger
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	Source    BatchSource
	Evaluator *evaluation.Evaluator
	Logger    *log.Logger
}

// NewRunner creates a new feed evaluation runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		source:    opts.Source,
		evaluator: opts.Evaluator,
		logger:    logger,
	}
}

// Run consumes batches until the context is cancelled or the feed closes.
func (r *Runner) Run(ctx context.Context) error {
	batches, err := r.source.Subscribe(ctx)
	if err != nil {
		return err
	}
	r.logger.Println("Subscribed to prediction feed")

	for {
		select {
		case <-ctx.Done():
			r.logger.Println("Runner stopping...")
			return ctx.Err()

		case batch, ok := <-batches:
			if !ok {
				r.logger.Println("Feed channel closed")
				return errors.New("feed channel closed")
			}
			if err := r.handleBatch(ctx, batch); err != nil {
				return err
			}
		}
	}
}

// handleBatch evaluates one batch. Length mismatches are a feed contract
// violation: the frame is dropped and ingestion continues.
func (r *Runner) handleBatch(ctx context.Context, batch domain.LabeledBatch) error {
	start := time.Now()

	stored, err := r.evaluator.Evaluate(ctx, batch.GroundTruth, batch.Predictions)
	if err != nil {
		if errors.Is(err, evaluation.ErrLengthMismatch) {
			r.logger.Printf("Dropping batch: %v (ground_truth=%d predictions=%d)",
				err, len(batch.GroundTruth), len(batch.Predictions))
			observability.RecordFeedFrameDropped("length_mismatch")
			observability.RecordEvaluation("rejected", time.Since(start).Seconds(), 0)
			return nil
		}
		observability.RecordEvaluation("error", time.Since(start).Seconds(), 0)
		return err
	}

	observability.RecordEvaluation("ok", time.Since(start).Seconds(), stored.Metadata.TotalSamples)
	observability.RecordEvaluationScores(stored.Metrics.F1Score, stored.Metrics.AUCROC, stored.Metadata.Timestamp.Unix())

	r.logger.Printf("Evaluated batch %s: samples=%d precision=%.4f recall=%.4f f1=%.4f",
		stored.ReportID, stored.Metadata.TotalSamples,
		stored.Metrics.Precision, stored.Metrics.Recall, stored.Metrics.F1Score)

	return nil
}
