// Package main renders stored evaluation reports: single report, CSV
// export, a two-model comparison, or a trend summary over recent runs.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/reporting"
	fsstore "fraud-eval-lab/internal/storage/fs"
	"fraud-eval-lab/internal/storage/memory"
)

func main() {
	dataDir := flag.String("data-dir", "data", "Directory holding stored reports")
	reportID := flag.String("report-id", "", "Report to render (default: latest)")
	compareWith := flag.String("compare-with", "", "Second report id for a two-model comparison")
	format := flag.String("format", "markdown", "Output format: markdown, json or csv")
	all := flag.Bool("all", false, "Render all stored reports (csv format)")
	trend := flag.Int("trend", 0, "Render a trend summary over the N most recent reports")

	flag.Parse()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)

	store, err := fsstore.NewReportStore(*dataDir)
	if err != nil {
		logger.Fatalf("Failed to open report directory: %v", err)
	}
	ctx := context.Background()

	if *all {
		reports, err := loadAll(ctx, store)
		if err != nil {
			logger.Fatalf("Failed to load reports: %v", err)
		}
		fmt.Print(reporting.RenderCSV(reports))
		return
	}

	if *trend > 0 {
		summary, err := trendSummary(ctx, store, *trend)
		if err != nil {
			logger.Fatalf("Failed to build trend summary: %v", err)
		}
		switch *format {
		case "json":
			printJSON(logger, summary)
		default:
			fmt.Print(reporting.RenderTrendMarkdown(summary))
		}
		return
	}

	report, err := loadOne(ctx, store, *reportID)
	if err != nil {
		logger.Fatalf("Failed to load report: %v", err)
	}

	if *compareWith != "" {
		other, err := store.GetByID(ctx, *compareWith)
		if err != nil {
			logger.Fatalf("Failed to load comparison report %s: %v", *compareWith, err)
		}
		rows := reporting.Compare(report, other)
		switch *format {
		case "json":
			printJSON(logger, rows)
		default:
			fmt.Print(reporting.RenderComparisonMarkdown(rows))
		}
		return
	}

	switch *format {
	case "json":
		printJSON(logger, report)
	case "csv":
		fmt.Print(reporting.RenderCSV([]*domain.StoredReport{report}))
	default:
		fmt.Print(reporting.RenderMarkdown(report))
	}
}

func loadOne(ctx context.Context, store *fsstore.ReportStore, reportID string) (*domain.StoredReport, error) {
	if reportID != "" {
		return store.GetByID(ctx, reportID)
	}
	return store.GetLatest(ctx)
}

func loadAll(ctx context.Context, store *fsstore.ReportStore) ([]*domain.StoredReport, error) {
	ids, err := store.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]*domain.StoredReport, 0, len(ids))
	for _, id := range ids {
		r, err := store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// trendSummary replays the stored reports through an in-memory history so the
// trend generator can run without an analytics backend.
func trendSummary(ctx context.Context, store *fsstore.ReportStore, limit int) (*reporting.TrendSummary, error) {
	reports, err := loadAll(ctx, store)
	if err != nil {
		return nil, err
	}

	history := memory.NewMetricHistoryStore()
	for _, r := range reports {
		if err := history.Append(ctx, r); err != nil {
			return nil, err
		}
	}

	return reporting.NewGenerator(history).Trend(ctx, limit)
}

func printJSON(logger *log.Logger, v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Fatalf("Failed to encode output: %v", err)
	}
}
