// Package main generates a synthetic labeled batch with simulated model
// output, for exercising the evaluation pipeline end to end.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"fraud-eval-lab/internal/generation"
)

func main() {
	datasetID := flag.String("dataset-id", "synthetic", "Dataset identifier baked into transaction ids")
	count := flag.Int("count", 1000, "Number of transactions to generate")
	fraudRate := flag.Float64("fraud-rate", 0.1, "Target fraud share [0,1]")
	accuracy := flag.Float64("accuracy", 0.9, "Simulated model accuracy [0,1]")
	seed := flag.Int64("seed", 42, "Random seed")
	output := flag.String("output", "", "Output file (default: stdout)")

	flag.Parse()

	logger := log.New(os.Stderr, "[generate] ", log.LstdFlags)

	gen := generation.NewGenerator(generation.Config{
		DatasetID:       *datasetID,
		NumTransactions: *count,
		FraudRate:       *fraudRate,
		Seed:            *seed,
	})

	batch := gen.Batch(*accuracy)

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(batch); err != nil {
		logger.Fatalf("Failed to encode batch: %v", err)
	}

	fraudCount := 0
	for _, rec := range batch.GroundTruth {
		if rec.IsFraud {
			fraudCount++
		}
	}
	logger.Printf("Generated %d transactions (%d fraudulent) at simulated accuracy %.2f",
		len(batch.GroundTruth), fraudCount, *accuracy)
}
