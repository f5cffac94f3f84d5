// Command analyzer runs the full Adult Income descriptive-analytics
// pipeline once: it loads the processed CSV, profiles it and writes the
// chart artifacts and tabular reports to the results directory.
package main

import (
	"context"
	"log/slog"
	"os"

	"incomecli/internal/config"
	"incomecli/internal/infrastructure"
	"incomecli/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	paths := cfg.ResolvePaths()
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureRunID(context.Background())
	logger = infrastructure.LoggerWithContext(ctx)

	runner := report.NewRunner(paths, logger)
	if err := runner.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Analysis run failed", "error", err)
		os.Exit(1)
	}
}
