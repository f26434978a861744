// Command cleanup removes generation error log rows older than the
// retention period. It is meant to be run by an external scheduler.
//
// Usage:
//
//	cleanup [-retention-days N] [-dry-run]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/flashgen-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashgen-backend/internal/adapter/postgres/errorlog"
	"github.com/heartmarshall/flashgen-backend/internal/app"
	"github.com/heartmarshall/flashgen-backend/internal/config"
)

func main() {
	retention := flag.Int("retention-days", 0, "override cleanup.retention_days")
	dryRun := flag.Bool("dry-run", false, "only count the rows that would be removed")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(*retention, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "cleanup: %v\n", err)
		os.Exit(1)
	}
}

func run(retentionOverride int, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if retentionOverride < 0 {
		return errors.New("-retention-days must be positive")
	}
	if retentionOverride > 0 {
		cfg.Cleanup.RetentionDays = retentionOverride
	}

	logger := app.NewLogger(cfg.Log).With("job", "cleanup")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Cleanup.Timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	repo := errorlog.New(pool)
	cutoff := time.Now().AddDate(0, 0, -cfg.Cleanup.RetentionDays)

	if dryRun {
		n, err := repo.CountOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		logger.Info("error log cleanup dry run", slog.Int64("would_delete", n), slog.Time("cutoff", cutoff))
		return nil
	}

	deleted, err := repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	logger.Info("error log cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
		slog.Int("retention_days", cfg.Cleanup.RetentionDays),
	)
	return nil
}
