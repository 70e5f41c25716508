// Command server runs the gateway API: a task-queue and
// metadata-completion service over a postgres-backed token ledger.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gatewaylabs/gateway-api/internal/config"
	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	if err := runMigrations(db, log); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(cfg, db, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
