package evaluation

import (
	"errors"
	"testing"

	"fraud-eval-lab/internal/domain"
)

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name        string
		groundTruth []domain.GroundTruthRecord
		predictions []domain.PredictionRecord
		wantErr     bool
	}{
		{
			name:        "equal lengths",
			groundTruth: make([]domain.GroundTruthRecord, 3),
			predictions: make([]domain.PredictionRecord, 3),
			wantErr:     false,
		},
		{
			name:        "both empty",
			groundTruth: nil,
			predictions: nil,
			wantErr:     false,
		},
		{
			name:        "more ground truth",
			groundTruth: make([]domain.GroundTruthRecord, 2),
			predictions: make([]domain.PredictionRecord, 1),
			wantErr:     true,
		},
		{
			name:        "more predictions",
			groundTruth: make([]domain.GroundTruthRecord, 1),
			predictions: make([]domain.PredictionRecord, 4),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputs(tt.groundTruth, tt.predictions)
			if tt.wantErr {
				if !errors.Is(err, ErrLengthMismatch) {
					t.Errorf("expected ErrLengthMismatch, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
