package evaluation

import (
	"sort"

	"fraud-eval-lab/internal/domain"
)

// rankedRecord is one (confidence, actual label) pair for curve construction.
// Every input pair contributes one record regardless of predicted class.
type rankedRecord struct {
	confidence  float64
	actualFraud bool
}

// rankRecords builds the confidence-ranked sequence: descending by
// confidence, ties keeping original input order (stable sort). Callers that
// need deterministic areas across runs must control their input order.
func rankRecords(groundTruth []domain.GroundTruthRecord, predictions []domain.PredictionRecord) []rankedRecord {
	ranked := make([]rankedRecord, len(groundTruth))
	for i := range groundTruth {
		ranked[i] = rankedRecord{
			confidence:  predictions[i].ConfidenceOrDefault(),
			actualFraud: groundTruth[i].IsFraud,
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].confidence > ranked[j].confidence
	})
	return ranked
}

// computeAUCPR approximates the area under the precision-recall curve.
// The walk records a (recall, precision) point whenever at least one true
// positive has been seen, starts the curve at (0, 1), and integrates
// precision over the recall axis. Returns 0 when there is no positive class.
func computeAUCPR(ranked []rankedRecord, totalFraud int) float64 {
	if totalFraud == 0 {
		return 0
	}

	recalls := []float64{0}
	precisions := []float64{1}

	tpCount, fpCount := 0, 0
	for _, r := range ranked {
		if r.actualFraud {
			tpCount++
		} else {
			fpCount++
		}
		if tpCount > 0 {
			recalls = append(recalls, float64(tpCount)/float64(totalFraud))
			precisions = append(precisions, float64(tpCount)/float64(tpCount+fpCount))
		}
	}

	area := 0.0
	for i := 1; i < len(recalls); i++ {
		area += (recalls[i] - recalls[i-1]) * precisions[i]
	}
	return area
}

// computeAUCROC approximates the area under the ROC curve by the trapezoidal
// rule over the false-positive-rate axis, starting from the origin. Returns 0
// when either class is empty, since one of the axes would be degenerate.
func computeAUCROC(ranked []rankedRecord, totalFraud, totalLegitimate int) float64 {
	if totalFraud == 0 || totalLegitimate == 0 {
		return 0
	}

	fprs := []float64{0}
	tprs := []float64{0}

	tpCount, fpCount := 0, 0
	for _, r := range ranked {
		if r.actualFraud {
			tpCount++
		} else {
			fpCount++
		}
		if tpCount > 0 || fpCount > 0 {
			fprs = append(fprs, float64(fpCount)/float64(totalLegitimate))
			tprs = append(tprs, float64(tpCount)/float64(totalFraud))
		}
	}

	area := 0.0
	for i := 1; i < len(fprs); i++ {
		area += (fprs[i] - fprs[i-1]) * (tprs[i] + tprs[i-1]) / 2
	}
	return area
}
