package evaluation

import (
	"math"

	"fraud-eval-lab/internal/domain"
)

// computeMetrics derives the classification, business, monetary, and
// confidence metrics from a populated accumulator. The ranking-curve
// fields are filled in separately by the caller.
func computeMetrics(acc *confusionAccumulator) domain.Metrics {
	total := acc.total()

	precision := safeRatio(float64(acc.tp), float64(acc.tp+acc.fp))
	recall := safeRatio(float64(acc.tp), float64(acc.tp+acc.fn))

	return domain.Metrics{
		TruePositives:  acc.tp,
		FalsePositives: acc.fp,
		TrueNegatives:  acc.tn,
		FalseNegatives: acc.fn,

		Precision: precision,
		Recall:    recall,
		F1Score:   safeRatio(2*precision*recall, precision+recall),
		Accuracy:  safeRatio(float64(acc.tp+acc.tn), float64(total)),

		FraudRate:         safeRatio(float64(acc.tp+acc.fn), float64(total)),
		FraudCaptureRate:  recall,
		FalsePositiveRate: safeRatio(float64(acc.fp), float64(acc.fp+acc.tn)),
		FalseNegativeRate: safeRatio(float64(acc.fn), float64(acc.fn+acc.tp)),

		TotalFraudAmount:  acc.totalFraudAmount,
		MissedFraudAmount: acc.missedFraudAmount,
		FraudLossRate:     safeRatio(acc.missedFraudAmount, acc.totalFraudAmount),

		FraudConfidenceAvg:      computeMean(acc.fraudConfidences),
		FraudConfidenceStd:      computeSampleStddev(acc.fraudConfidences),
		LegitimateConfidenceAvg: computeMean(acc.legitimateConfidences),
		LegitimateConfidenceStd: computeSampleStddev(acc.legitimateConfidences),
	}
}

// safeRatio returns num/denom, or 0 when the denominator is zero.
// Every ratio in a report goes through this, so no metric is ever NaN or Inf.
func safeRatio(num, denom float64) float64 {
	if denom == 0 {
		return 0
	}
	return num / denom
}

// computeMean calculates the arithmetic mean. Mean of an empty sequence is 0.
func computeMean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// computeSampleStddev calculates sample standard deviation (n-1 denominator).
// Fewer than 2 samples yields 0.
func computeSampleStddev(samples []float64) float64 {
	n := len(samples)
	if n < 2 {
		return 0
	}
	mean := computeMean(samples)
	sumSq := 0.0
	for _, s := range samples {
		diff := s - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}
