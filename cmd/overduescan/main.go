// The overduescan binary runs the overdue borrowing scan on a recurring
// schedule: it loads the config, connects to Postgres, wires the Telegram
// sink and scans once immediately plus once per configured interval until
// the process is interrupted. Skipping a run is safe - the scan is
// idempotent and always recomputes from current storage state.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookhive/borrowing-engine-go/config"
	"github.com/bookhive/borrowing-engine-go/features/query/overdueborrowings"
	"github.com/bookhive/borrowing-engine-go/notify/telegramsink"
	"github.com/bookhive/borrowing-engine-go/observability"
	"github.com/bookhive/borrowing-engine-go/storage/postgresengine"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	flag.Parse()

	logger := observability.NewSlogLogger(slog.NewJSONHandler(os.Stderr, nil))

	if err := run(*configPath, logger); err != nil {
		logger.Error("overdue scanner terminated", "error", err.Error())
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolConfig, err := cfg.PGXPoolConfig()
	if err != nil {
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
	if err != nil {
		return err
	}

	sink, err := telegramsink.NewSink(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		return err
	}

	runner := overdueborrowings.NewRunner(
		overdueborrowings.NewQueryHandler(store),
		sink,
		overdueborrowings.WithLogger(logger),
	)

	logger.Info("overdue scanner started", "interval", cfg.ScanInterval().String())

	ticker := time.NewTicker(cfg.ScanInterval())
	defer ticker.Stop()

	for {
		if _, scanErr := runner.RunScan(ctx, time.Now()); scanErr != nil {
			logger.Error("overdue scan failed", "error", scanErr.Error())
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			logger.Info("overdue scanner stopped")
			return nil
		}
	}
}
