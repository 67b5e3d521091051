package ingestion

import (
	"context"

	"fraud-eval-lab/internal/domain"
)

// BatchSource provides labeled prediction batches from an external feed.
type BatchSource interface {
	// Subscribe returns a channel of batches. The channel is closed when the
	// source shuts down. Malformed frames are dropped by the source.
	Subscribe(ctx context.Context) (<-chan domain.LabeledBatch, error)

	// Close shuts down the source and closes the subscription channel.
	Close() error
}
