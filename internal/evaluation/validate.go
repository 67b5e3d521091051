package evaluation

import (
	"errors"

	"fraud-eval-lab/internal/domain"
)

// ErrLengthMismatch is returned when the ground-truth and prediction
// collections differ in length. It is the only input contract violation;
// missing record fields default silently instead of failing.
var ErrLengthMismatch = errors.New("number of predictions must match number of ground truth samples")

// ValidateInputs checks the structural precondition on the two collections.
// Records are paired by position, so equal length is the entire contract.
func ValidateInputs(groundTruth []domain.GroundTruthRecord, predictions []domain.PredictionRecord) error {
	if len(groundTruth) != len(predictions) {
		return ErrLengthMismatch
	}
	return nil
}
