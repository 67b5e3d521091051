// Package main consumes a scoring-agent WebSocket feed and evaluates
// every labeled batch it emits.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fraud-eval-lab/internal/evaluation"
	"fraud-eval-lab/internal/ingestion"
	"fraud-eval-lab/internal/observability"
	fsstore "fraud-eval-lab/internal/storage/fs"
	"fraud-eval-lab/internal/storage/memory"
)

func main() {
	feedEndpoint := flag.String("feed-endpoint", os.Getenv("FEED_WS_ENDPOINT"), "WebSocket endpoint of the scoring-agent feed")
	dataDir := flag.String("data-dir", "data", "Directory for report storage")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address")

	flag.Parse()

	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags|log.Lshortfile)

	if *feedEndpoint == "" {
		logger.Fatal("--feed-endpoint is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	// Metrics server
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.Handler())
		logger.Printf("Starting metrics server on %s", *metricsAddr)
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
			logger.Printf("Metrics server error: %v", err)
		}
	}()

	store, err := fsstore.NewReportStore(*dataDir)
	if err != nil {
		logger.Fatalf("Failed to open report directory: %v", err)
	}

	evaluator := evaluation.NewEvaluator(store).
		WithMetricHistory(memory.NewMetricHistoryStore()).
		WithLogger(logger)

	source, err := ingestion.NewWSBatchSource(ctx, *feedEndpoint, nil, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to feed: %v", err)
	}
	defer source.Close()

	runner := ingestion.NewRunner(ingestion.RunnerOptions{
		Source:    source,
		Evaluator: evaluator,
		Logger:    logger,
	})

	logger.Printf("Consuming feed from %s", *feedEndpoint)
	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatalf("Feed ingestion error: %v", err)
	}

	logger.Println("Shutdown complete")
}
