// Package main runs the fraud evaluation service:
// - HTTP API: evaluate batches, fetch reports, trend analytics
// - Feed ingestion (optional): WebSocket scoring-agent feed
// - Prometheus metrics endpoint
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fraud-eval-lab/internal/api"
	"fraud-eval-lab/internal/evaluation"
	"fraud-eval-lab/internal/ingestion"
	"fraud-eval-lab/internal/observability"
	"fraud-eval-lab/internal/reporting"
	"fraud-eval-lab/internal/storage"
	chstore "fraud-eval-lab/internal/storage/clickhouse"
	fsstore "fraud-eval-lab/internal/storage/fs"
	"fraud-eval-lab/internal/storage/memory"
	"fraud-eval-lab/internal/storage/migrations"
	pgstore "fraud-eval-lab/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("EVAL_ADDR", ":8080"), "HTTP API address")
	metricsAddr := flag.String("metrics-addr", envOr("EVAL_METRICS_ADDR", ":9090"), "Prometheus metrics HTTP address")
	dataDir := flag.String("data-dir", envOr("EVAL_DATA_DIR", "data"), "Directory for filesystem report storage")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string (report storage)")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (metric history)")
	feedEndpoint := flag.String("feed-endpoint", os.Getenv("FEED_WS_ENDPOINT"), "WebSocket endpoint of the scoring-agent feed (optional)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of filesystem/PostgreSQL")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create stores
	reportStore, historyStore, cleanup, err := createStores(ctx, *dataDir, *postgresDSN, *clickhouseDSN, *useMemory, logger)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	evaluator := evaluation.NewEvaluator(reportStore).
		WithMetricHistory(historyStore).
		WithLogger(logger)

	server := api.NewServer(evaluator, reportStore, logger).
		WithTrends(reporting.NewGenerator(historyStore))

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		}
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

	// Feed ingestion (optional)
	errCh := make(chan error, 2)
	if *feedEndpoint != "" {
		go func() {
			if err := runFeed(ctx, *feedEndpoint, evaluator); err != nil && err != context.Canceled {
				errCh <- fmt.Errorf("feed ingestion: %w", err)
			}
		}()
	}

	// API server
	httpServer := &http.Server{Addr: *addr, Handler: server.Routes()}
	go func() {
		logger.Printf("Starting API server on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()

	// Wait for cancellation or component failure
	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Printf("Component error: %v", err)
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP shutdown error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores wires the report store and metric history store.
// Selection order: memory, PostgreSQL when a DSN is set, filesystem otherwise.
// Metric history goes to ClickHouse when a DSN is set, in-memory otherwise.
func createStores(ctx context.Context, dataDir, postgresDSN, clickhouseDSN string, useMemory bool, logger *log.Logger) (storage.ReportStore, storage.MetricHistoryStore, func(), error) {
	cleanup := func() {}

	var (
		reportStore storage.ReportStore
		backend     string
	)
	switch {
	case useMemory:
		reportStore = memory.NewReportStore()
		backend = "memory"
		logger.Println("Using in-memory report storage")

	case postgresDSN != "":
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		reportStore = pgstore.NewReportStore(pool)
		backend = "postgres"
		cleanup = pool.Close
		logger.Println("Using PostgreSQL report storage")

	default:
		store, err := fsstore.NewReportStore(dataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open report directory: %w", err)
		}
		reportStore = store
		backend = "fs"
		logger.Printf("Using filesystem report storage in %s", dataDir)
	}
	reportStore = storage.NewInstrumentedReportStore(reportStore, backend)

	var historyStore storage.MetricHistoryStore
	if clickhouseDSN != "" && !useMemory {
		conn, err := chstore.NewConn(ctx, clickhouseDSN)
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			conn.Close()
			cleanup()
			return nil, nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
		}
		historyStore = chstore.NewMetricHistoryStore(conn)
		prevCleanup := cleanup
		cleanup = func() {
			conn.Close()
			prevCleanup()
		}
		logger.Println("Using ClickHouse metric history")
	} else {
		historyStore = memory.NewMetricHistoryStore()
	}

	return reportStore, historyStore, cleanup, nil
}

// runFeed consumes the scoring-agent WebSocket feed.
func runFeed(ctx context.Context, endpoint string, evaluator *evaluation.Evaluator) error {
	feedLogger := log.New(os.Stdout, "[feed] ", log.LstdFlags|log.Lshortfile)

	source, err := ingestion.NewWSBatchSource(ctx, endpoint, nil, feedLogger)
	if err != nil {
		return fmt.Errorf("connect to feed: %w", err)
	}
	defer source.Close()

	runner := ingestion.NewRunner(ingestion.RunnerOptions{
		Source:    source,
		Evaluator: evaluator,
		Logger:    feedLogger,
	})

	feedLogger.Printf("Consuming feed from %s", endpoint)
	return runner.Run(ctx)
}

// envOr returns the environment value or a default.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
