package evaluation

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestComputeMetrics_BalancedMatrix(t *testing.T) {
	// One sample in every confusion cell.
	acc := &confusionAccumulator{
		tp: 1, fp: 1, tn: 1, fn: 1,
		fraudAmounts:          []float64{1000, 500},
		legitimateAmounts:     []float64{200, 100},
		fraudConfidences:      []float64{0.9, 0.8},
		legitimateConfidences: []float64{0.2, 0.1},
		totalFraudAmount:      1500,
		missedFraudAmount:     500,
	}

	m := computeMetrics(acc)

	if !almostEqual(m.Precision, 0.5) {
		t.Errorf("Precision = %f, want 0.5", m.Precision)
	}
	if !almostEqual(m.Recall, 0.5) {
		t.Errorf("Recall = %f, want 0.5", m.Recall)
	}
	if !almostEqual(m.F1Score, 0.5) {
		t.Errorf("F1Score = %f, want 0.5", m.F1Score)
	}
	if !almostEqual(m.Accuracy, 0.5) {
		t.Errorf("Accuracy = %f, want 0.5", m.Accuracy)
	}
	if !almostEqual(m.FraudRate, 0.5) {
		t.Errorf("FraudRate = %f, want 0.5", m.FraudRate)
	}
	if !almostEqual(m.FraudCaptureRate, m.Recall) {
		t.Errorf("FraudCaptureRate = %f, want recall %f", m.FraudCaptureRate, m.Recall)
	}
	if !almostEqual(m.FalsePositiveRate, 0.5) {
		t.Errorf("FalsePositiveRate = %f, want 0.5", m.FalsePositiveRate)
	}
	if !almostEqual(m.FalseNegativeRate, 0.5) {
		t.Errorf("FalseNegativeRate = %f, want 0.5", m.FalseNegativeRate)
	}

	if m.TotalFraudAmount != 1500 || m.MissedFraudAmount != 500 {
		t.Errorf("amounts = %f/%f, want 1500/500", m.TotalFraudAmount, m.MissedFraudAmount)
	}
	if !almostEqual(m.FraudLossRate, 500.0/1500.0) {
		t.Errorf("FraudLossRate = %f, want 1/3", m.FraudLossRate)
	}

	if !almostEqual(m.FraudConfidenceAvg, 0.85) {
		t.Errorf("FraudConfidenceAvg = %f, want 0.85", m.FraudConfidenceAvg)
	}
	if !almostEqual(m.LegitimateConfidenceAvg, 0.15) {
		t.Errorf("LegitimateConfidenceAvg = %f, want 0.15", m.LegitimateConfidenceAvg)
	}

	// Sample stddev of {0.9, 0.8} with n-1 denominator.
	wantStd := math.Sqrt(0.005)
	if !almostEqual(m.FraudConfidenceStd, wantStd) {
		t.Errorf("FraudConfidenceStd = %f, want %f", m.FraudConfidenceStd, wantStd)
	}
}

func TestComputeMetrics_EmptyInput(t *testing.T) {
	m := computeMetrics(&confusionAccumulator{})

	// Every ratio must be 0, never NaN.
	values := map[string]float64{
		"Precision":               m.Precision,
		"Recall":                  m.Recall,
		"F1Score":                 m.F1Score,
		"Accuracy":                m.Accuracy,
		"FraudRate":               m.FraudRate,
		"FraudCaptureRate":        m.FraudCaptureRate,
		"FalsePositiveRate":       m.FalsePositiveRate,
		"FalseNegativeRate":       m.FalseNegativeRate,
		"FraudLossRate":           m.FraudLossRate,
		"FraudConfidenceAvg":      m.FraudConfidenceAvg,
		"FraudConfidenceStd":      m.FraudConfidenceStd,
		"LegitimateConfidenceAvg": m.LegitimateConfidenceAvg,
		"LegitimateConfidenceStd": m.LegitimateConfidenceStd,
	}
	for name, v := range values {
		if v != 0 {
			t.Errorf("%s = %f, want 0 on empty input", name, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is not finite: %f", name, v)
		}
	}
}

func TestComputeMetrics_PerfectClassifier(t *testing.T) {
	acc := &confusionAccumulator{
		tp: 10, tn: 90,
		totalFraudAmount: 5000,
	}

	m := computeMetrics(acc)

	if m.Precision != 1 || m.Recall != 1 || m.F1Score != 1 || m.Accuracy != 1 {
		t.Errorf("perfect classifier: precision=%f recall=%f f1=%f accuracy=%f, want all 1",
			m.Precision, m.Recall, m.F1Score, m.Accuracy)
	}
	if m.FalsePositiveRate != 0 || m.FalseNegativeRate != 0 || m.FraudLossRate != 0 {
		t.Errorf("perfect classifier error rates not zero: %f/%f/%f",
			m.FalsePositiveRate, m.FalseNegativeRate, m.FraudLossRate)
	}
	if !almostEqual(m.FraudRate, 0.1) {
		t.Errorf("FraudRate = %f, want 0.1", m.FraudRate)
	}
}

func TestSafeRatio(t *testing.T) {
	if got := safeRatio(1, 0); got != 0 {
		t.Errorf("safeRatio(1, 0) = %f, want 0", got)
	}
	if got := safeRatio(3, 4); !almostEqual(got, 0.75) {
		t.Errorf("safeRatio(3, 4) = %f, want 0.75", got)
	}
	if got := safeRatio(0, 0); got != 0 {
		t.Errorf("safeRatio(0, 0) = %f, want 0", got)
	}
}

func TestComputeMean(t *testing.T) {
	if got := computeMean(nil); got != 0 {
		t.Errorf("computeMean(nil) = %f, want 0", got)
	}
	if got := computeMean([]float64{0.5}); got != 0.5 {
		t.Errorf("computeMean([0.5]) = %f, want 0.5", got)
	}
	if got := computeMean([]float64{0.2, 0.4, 0.6}); !almostEqual(got, 0.4) {
		t.Errorf("computeMean = %f, want 0.4", got)
	}
}

func TestComputeSampleStddev(t *testing.T) {
	if got := computeSampleStddev(nil); got != 0 {
		t.Errorf("stddev(nil) = %f, want 0", got)
	}
	// Single sample yields 0, not NaN.
	if got := computeSampleStddev([]float64{0.9}); got != 0 {
		t.Errorf("stddev of single sample = %f, want 0", got)
	}
	// Identical samples yield 0.
	if got := computeSampleStddev([]float64{0.5, 0.5, 0.5}); got != 0 {
		t.Errorf("stddev of identical samples = %f, want 0", got)
	}
	// {2, 4, 4, 4, 5, 5, 7, 9} has sample stddev sqrt(32/7).
	samples := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	want := math.Sqrt(32.0 / 7.0)
	if got := computeSampleStddev(samples); !almostEqual(got, want) {
		t.Errorf("stddev = %f, want %f", got, want)
	}
}
