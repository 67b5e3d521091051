// Package main runs a one-shot evaluation over a labeled batch from disk.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/evaluation"
	"fraud-eval-lab/internal/reporting"
	fsstore "fraud-eval-lab/internal/storage/fs"
)

func main() {
	input := flag.String("input", "", "Path to a JSON file holding {ground_truth, predictions}")
	groundTruthPath := flag.String("ground-truth", "", "Path to a JSON array of ground truth records (alternative to --input)")
	predictionsPath := flag.String("predictions", "", "Path to a JSON array of prediction records (alternative to --input)")
	dataDir := flag.String("data-dir", "data", "Directory for report storage")
	format := flag.String("format", "json", "Output format: json or markdown")

	flag.Parse()

	logger := log.New(os.Stderr, "[evaluate] ", log.LstdFlags)

	batch, err := loadBatch(*input, *groundTruthPath, *predictionsPath)
	if err != nil {
		logger.Fatalf("Failed to load input: %v", err)
	}

	store, err := fsstore.NewReportStore(*dataDir)
	if err != nil {
		logger.Fatalf("Failed to open report directory: %v", err)
	}

	evaluator := evaluation.NewEvaluator(store).WithLogger(logger)

	stored, err := evaluator.Evaluate(context.Background(), batch.GroundTruth, batch.Predictions)
	if err != nil {
		logger.Fatalf("Evaluation failed: %v", err)
	}

	logger.Printf("Report %s written to %s/", stored.ReportID, *dataDir)

	switch *format {
	case "markdown":
		fmt.Print(reporting.RenderMarkdown(stored))
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stored); err != nil {
			logger.Fatalf("Failed to encode report: %v", err)
		}
	}
}

// loadBatch reads the labeled batch from a single file or a file pair.
func loadBatch(input, groundTruthPath, predictionsPath string) (*domain.LabeledBatch, error) {
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", input, err)
		}
		var batch domain.LabeledBatch
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("decode %s: %w", input, err)
		}
		return &batch, nil
	}

	if groundTruthPath == "" || predictionsPath == "" {
		return nil, fmt.Errorf("either --input or both --ground-truth and --predictions are required")
	}

	var batch domain.LabeledBatch

	data, err := os.ReadFile(groundTruthPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", groundTruthPath, err)
	}
	if err := json.Unmarshal(data, &batch.GroundTruth); err != nil {
		return nil, fmt.Errorf("decode %s: %w", groundTruthPath, err)
	}

	data, err = os.ReadFile(predictionsPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", predictionsPath, err)
	}
	if err := json.Unmarshal(data, &batch.Predictions); err != nil {
		return nil, fmt.Errorf("decode %s: %w", predictionsPath, err)
	}

	return &batch, nil
}
