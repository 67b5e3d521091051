package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/storage/memory"
)

func storedReport(id string, ts time.Time, metrics domain.Metrics, samples int) *domain.StoredReport {
	return &domain.StoredReport{
		ReportID: id,
		EvaluationReport: domain.EvaluationReport{
			Metrics: metrics,
			Metadata: domain.ReportMetadata{
				Timestamp:      ts,
				EvaluationType: domain.EvaluationType,
				TotalSamples:   samples,
			},
		},
	}
}

func TestCompare(t *testing.T) {
	first := storedReport("20260101_000000_000001", time.Now(), domain.Metrics{
		Precision: 0.9, Recall: 0.8, F1Score: 0.85, Accuracy: 0.95,
		FraudCaptureRate: 0.8, FalsePositiveRate: 0.02,
		AUCPR: 0.88, AUCROC: 0.93,
	}, 100)
	second := storedReport("20260101_000000_000002", time.Now(), domain.Metrics{
		Precision: 0.7, Recall: 0.9, F1Score: 0.79, Accuracy: 0.90,
		FraudCaptureRate: 0.9, FalsePositiveRate: 0.05,
		AUCPR: 0.80, AUCROC: 0.91,
	}, 100)

	rows := Compare(first, second)
	if len(rows) != len(comparedMetrics) {
		t.Fatalf("expected %d rows, got %d", len(comparedMetrics), len(rows))
	}

	byName := make(map[string]ComparisonRow)
	for _, row := range rows {
		byName[row.Metric] = row
	}

	precision := byName["precision"]
	if precision.First != 0.9 || precision.Second != 0.7 {
		t.Errorf("precision row = %+v", precision)
	}
	if diff := precision.Difference; diff < 0.1999 || diff > 0.2001 {
		t.Errorf("precision difference = %f, want 0.2", diff)
	}

	recall := byName["recall"]
	if recall.Difference > -0.0999 || recall.Difference < -0.1001 {
		t.Errorf("recall difference = %f, want -0.1", recall.Difference)
	}
}

func TestTrend(t *testing.T) {
	ctx := context.Background()
	history := memory.NewMetricHistoryStore()

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	runs := []*domain.StoredReport{
		storedReport("20260115_100000_000001", base, domain.Metrics{F1Score: 0.70, Recall: 0.65, AUCROC: 0.80}, 100),
		storedReport("20260115_110000_000002", base.Add(time.Hour), domain.Metrics{F1Score: 0.75, Recall: 0.70, AUCROC: 0.85}, 120),
		storedReport("20260115_120000_000003", base.Add(2*time.Hour), domain.Metrics{F1Score: 0.80, Recall: 0.72, AUCROC: 0.90}, 150),
	}
	for _, r := range runs {
		if err := history.Append(ctx, r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	fixedNow := base.Add(3 * time.Hour)
	gen := NewGenerator(history).WithClock(func() time.Time { return fixedNow })

	summary, err := gen.Trend(ctx, 0)
	if err != nil {
		t.Fatalf("Trend() error: %v", err)
	}

	if !summary.GeneratedAt.Equal(fixedNow) {
		t.Errorf("GeneratedAt = %v, want %v", summary.GeneratedAt, fixedNow)
	}
	if len(summary.Runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(summary.Runs))
	}

	// Newest first
	if summary.Runs[0].ReportID != "20260115_120000_000003" {
		t.Errorf("first run = %s, want newest", summary.Runs[0].ReportID)
	}

	// Deltas: newest minus oldest
	if summary.F1Delta < 0.0999 || summary.F1Delta > 0.1001 {
		t.Errorf("F1Delta = %f, want 0.1", summary.F1Delta)
	}
	if summary.AUCROCDelta < 0.0999 || summary.AUCROCDelta > 0.1001 {
		t.Errorf("AUCROCDelta = %f, want 0.1", summary.AUCROCDelta)
	}
}

func TestTrend_Limit(t *testing.T) {
	ctx := context.Background()
	history := memory.NewMetricHistoryStore()

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"20260115_100000_000001", "20260115_110000_000002", "20260115_120000_000003"} {
		r := storedReport(id, base.Add(time.Duration(i)*time.Hour), domain.Metrics{}, 10)
		if err := history.Append(ctx, r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	gen := NewGenerator(history)
	summary, err := gen.Trend(ctx, 2)
	if err != nil {
		t.Fatalf("Trend() error: %v", err)
	}
	if len(summary.Runs) != 2 {
		t.Errorf("expected 2 runs with limit, got %d", len(summary.Runs))
	}
}

func TestRenderMarkdown(t *testing.T) {
	report := storedReport("20260115_103000_000001",
		time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		domain.Metrics{
			TruePositives: 8, FalsePositives: 2, TrueNegatives: 88, FalseNegatives: 2,
			Precision: 0.8, Recall: 0.8, F1Score: 0.8, Accuracy: 0.96,
			TotalFraudAmount: 10000, MissedFraudAmount: 2000, FraudLossRate: 0.2,
			AUCPR: 0.85, AUCROC: 0.92,
		}, 100)
	report.Metadata.FraudSamples = 10
	report.Metadata.LegitimateSamples = 90

	md := RenderMarkdown(report)

	for _, want := range []string{
		"# Fraud Detection Evaluation Report",
		"Report ID: 20260115_103000_000001",
		"## Confusion Matrix",
		"## Classification Metrics",
		"| Precision | 0.8000 |",
		"## Business Metrics",
		"| Missed Fraud Amount | 2000.00 |",
		"## Confidence Statistics",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderComparisonMarkdown(t *testing.T) {
	rows := []ComparisonRow{
		{Metric: "precision", First: 0.9, Second: 0.7, Difference: 0.2},
	}
	md := RenderComparisonMarkdown(rows)
	if !strings.Contains(md, "| precision | 0.9000 | 0.7000 | +0.2000 |") {
		t.Errorf("comparison markdown missing row: %s", md)
	}

	empty := RenderComparisonMarkdown(nil)
	if !strings.Contains(empty, "No comparable metrics") {
		t.Error("expected placeholder for empty comparison")
	}
}

func TestRenderTrendMarkdown(t *testing.T) {
	summary := &TrendSummary{
		GeneratedAt: time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC),
		Runs: []TrendPoint{
			{ReportID: "20260115_120000_000002", Timestamp: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), Samples: 150, F1Score: 0.80},
			{ReportID: "20260115_100000_000001", Timestamp: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), Samples: 100, F1Score: 0.70},
		},
		F1Delta: 0.1, RecallDelta: 0.07, AUCROCDelta: 0.1,
	}

	md := RenderTrendMarkdown(summary)

	for _, want := range []string{
		"# Evaluation Trend",
		"| 20260115_120000_000002 |",
		"| 20260115_100000_000001 |",
		"F1 delta over window: +0.1000",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("trend markdown missing %q", want)
		}
	}

	empty := RenderTrendMarkdown(&TrendSummary{GeneratedAt: time.Now()})
	if !strings.Contains(empty, "No evaluation runs recorded") {
		t.Error("expected placeholder for empty trend")
	}
}

func TestRenderCSV(t *testing.T) {
	report := storedReport("20260115_103000_000001",
		time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		domain.Metrics{TruePositives: 1, Precision: 0.5}, 4)

	csv := RenderCSV([]*domain.StoredReport{report})

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "report_id,timestamp,total_samples") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "20260115_103000_000001,2026-01-15T10:30:00Z,4,") {
		t.Errorf("unexpected row: %s", lines[1])
	}

	header := strings.Split(lines[0], ",")
	row := strings.Split(lines[1], ",")
	if len(header) != len(row) {
		t.Errorf("header has %d columns, row has %d", len(header), len(row))
	}
}
