package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gatewaylabs/gateway-api/internal/config"
	"github.com/gatewaylabs/gateway-api/internal/events"
	"github.com/gatewaylabs/gateway-api/internal/platform/postgres"
	"github.com/gatewaylabs/gateway-api/internal/service"
	"github.com/gatewaylabs/gateway-api/internal/service/auth"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService     auth.JWTService
	secretVerifier auth.SecretVerifier

	mintService     service.MintService
	taskService     service.TaskService
	metadataService service.MetadataService
}

// newApplication wires stores, repositories, services and the audit
// emitter into a ready-to-serve application.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	tokenStore := postgres.NewPostgresTokenStore(db, logger)
	counterStore := postgres.NewPostgresCounterStore(db, logger)
	indexStore := postgres.NewPostgresIndexStore(db, logger)

	tokenRepo := service.NewTokenRepositoryAdapter(tokenStore, db)
	counterRepo := service.NewCounterRepositoryAdapter(counterStore)
	indexRepo := service.NewIndexRepositoryAdapter(indexStore)

	emitter := events.NewInMemoryEmitter(logger)
	emitter.RegisterHandler(events.NewLogHandler(logger))

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	mintService, err := service.NewMintService(tokenRepo, counterRepo, indexRepo, emitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create mint service: %w", err)
	}

	taskService, err := service.NewTaskService(tokenRepo, emitter, cfg.Auth.OperatorPrincipal, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	metadataService, err := service.NewMetadataService(
		tokenRepo, indexRepo, emitter, cfg.Auth.OperatorPrincipal, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata service: %w", err)
	}

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		jwtService:      jwtService,
		secretVerifier:  auth.NewBcryptVerifier(),
		mintService:     mintService,
		taskService:     taskService,
		metadataService: metadataService,
	}, nil
}
