package evaluation

import "fraud-eval-lab/internal/domain"

// confusionAccumulator collects per-class counts and samples for one
// evaluation run. Each run owns its own accumulator, so the walk needs
// no locking and is safe for concurrent callers.
type confusionAccumulator struct {
	tp, fp, tn, fn int

	// Amount samples grouped by actual class.
	fraudAmounts      []float64
	legitimateAmounts []float64

	// Confidence samples grouped by predicted class.
	fraudConfidences      []float64
	legitimateConfidences []float64

	totalFraudAmount  float64
	missedFraudAmount float64
}

// total returns the number of classified pairs.
func (a *confusionAccumulator) total() int {
	return a.tp + a.fp + a.tn + a.fn
}

// buildConfusion classifies each index pair into TP/FN/FP/TN and accumulates
// the amount and confidence samples. Inputs must be length-validated.
func buildConfusion(groundTruth []domain.GroundTruthRecord, predictions []domain.PredictionRecord) *confusionAccumulator {
	acc := &confusionAccumulator{}

	for i := range groundTruth {
		actualFraud := groundTruth[i].IsFraud
		predictedFraud := predictions[i].PredictedFraud()
		confidence := predictions[i].ConfidenceOrDefault()
		amount := groundTruth[i].Amount

		switch {
		case actualFraud && predictedFraud:
			acc.tp++
		case actualFraud && !predictedFraud:
			acc.fn++
		case !actualFraud && predictedFraud:
			acc.fp++
		default:
			acc.tn++
		}

		if actualFraud {
			acc.fraudAmounts = append(acc.fraudAmounts, amount)
			acc.totalFraudAmount += amount
			if !predictedFraud {
				acc.missedFraudAmount += amount
			}
		} else {
			acc.legitimateAmounts = append(acc.legitimateAmounts, amount)
		}

		if predictedFraud {
			acc.fraudConfidences = append(acc.fraudConfidences, confidence)
		} else {
			acc.legitimateConfidences = append(acc.legitimateConfidences, confidence)
		}
	}

	return acc
}
