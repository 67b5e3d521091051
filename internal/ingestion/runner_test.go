package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/evaluation"
	"fraud-eval-lab/internal/storage/memory"
)

// fakeSource replays a fixed set of batches and then closes the channel.
type fakeSource struct {
	batches []domain.LabeledBatch
}

func (f *fakeSource) Subscribe(ctx context.Context) (<-chan domain.LabeledBatch, error) {
	ch := make(chan domain.LabeledBatch, len(f.batches))
	for _, b := range f.batches {
		ch <- b
	}
	close(ch)
	return ch, nil
}

func (f *fakeSource) Close() error { return nil }

func confPtr(v float64) *float64 { return &v }

func validBatch() domain.LabeledBatch {
	return domain.LabeledBatch{
		GroundTruth: []domain.GroundTruthRecord{
			{TransactionID: "tx1", IsFraud: true, Amount: 1000},
			{TransactionID: "tx2", IsFraud: false, Amount: 100},
		},
		Predictions: []domain.PredictionRecord{
			{TransactionID: "tx1", Decision: domain.DecisionFraud, Confidence: confPtr(0.9)},
			{TransactionID: "tx2", Decision: domain.DecisionLegitimate, Confidence: confPtr(0.1)},
		},
	}
}

func TestRunner_EvaluatesBatches(t *testing.T) {
	store := memory.NewReportStore()
	evaluator := evaluation.NewEvaluator(store)

	source := &fakeSource{batches: []domain.LabeledBatch{validBatch(), validBatch()}}
	runner := NewRunner(RunnerOptions{Source: source, Evaluator: evaluator})

	err := runner.Run(context.Background())
	if err == nil || err.Error() != "feed channel closed" {
		t.Fatalf("expected feed channel closed error, got %v", err)
	}

	ids, err := store.ListIDs(context.Background())
	if err != nil {
		t.Fatalf("ListIDs() error: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 stored reports, got %d", len(ids))
	}
}

func TestRunner_DropsMismatchedBatch(t *testing.T) {
	store := memory.NewReportStore()
	evaluator := evaluation.NewEvaluator(store)

	mismatched := domain.LabeledBatch{
		GroundTruth: []domain.GroundTruthRecord{{TransactionID: "tx1", IsFraud: true, Amount: 50}},
		Predictions: nil,
	}

	source := &fakeSource{batches: []domain.LabeledBatch{mismatched, validBatch()}}
	runner := NewRunner(RunnerOptions{Source: source, Evaluator: evaluator})

	err := runner.Run(context.Background())
	if err == nil || err.Error() != "feed channel closed" {
		t.Fatalf("expected feed channel closed error, got %v", err)
	}

	// The mismatched batch must be dropped, the valid one evaluated.
	ids, err := store.ListIDs(context.Background())
	if err != nil {
		t.Fatalf("ListIDs() error: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("expected 1 stored report, got %d", len(ids))
	}
}

func TestRunner_ContextCancellation(t *testing.T) {
	store := memory.NewReportStore()
	evaluator := evaluation.NewEvaluator(store)

	// A source whose channel never produces
	blocked := &blockingSource{ch: make(chan domain.LabeledBatch)}
	runner := NewRunner(RunnerOptions{Source: blocked, Evaluator: evaluator})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after context cancellation")
	}
}

type blockingSource struct {
	ch chan domain.LabeledBatch
}

func (b *blockingSource) Subscribe(ctx context.Context) (<-chan domain.LabeledBatch, error) {
	return b.ch, nil
}

func (b *blockingSource) Close() error { return nil }
