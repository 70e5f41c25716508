package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/events"
	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

// MetadataService completes token metadata. Title and description are
// filled exactly once each; the first successful completion removes the
// token from the incomplete-projects index, and that transition is
// terminal.
type MetadataService interface {
	// UpdateMetadata fills whichever of title/description is still unset
	// and removes the token from the incomplete-projects index. Only the
	// operator principal may call it.
	UpdateMetadata(ctx context.Context, caller, tokenID, title, description string) error

	// IncompleteProjects returns the ids of tokens still missing
	// metadata, in mint order. A positive limit caps the snapshot.
	IncompleteProjects(ctx context.Context, limit int) ([]string, error)
}

// metadataServiceImpl implements the MetadataService interface
type metadataServiceImpl struct {
	tokenRepo TokenRepository
	indexRepo IndexRepository
	emitter   events.Emitter
	operator  string
	logger    *slog.Logger
}

// NewMetadataService creates a new MetadataService. The operator is the
// single principal authorized to complete metadata.
// It returns an error if any of the required dependencies are missing.
func NewMetadataService(
	tokenRepo TokenRepository,
	indexRepo IndexRepository,
	emitter events.Emitter,
	operator string,
	logger *slog.Logger,
) (MetadataService, error) {
	if tokenRepo == nil {
		return nil, domain.NewValidationError("tokenRepo", "cannot be nil", domain.ErrValidation)
	}
	if indexRepo == nil {
		return nil, domain.NewValidationError("indexRepo", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		return nil, domain.NewValidationError("emitter", "cannot be nil", domain.ErrValidation)
	}
	if operator == "" {
		return nil, domain.NewValidationError("operator", "cannot be empty", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &metadataServiceImpl{
		tokenRepo: tokenRepo,
		indexRepo: indexRepo,
		emitter:   emitter,
		operator:  operator,
		logger:    logger.With(slog.String("component", "metadata_service")),
	}, nil
}

// UpdateMetadata implements MetadataService.UpdateMetadata
func (s *metadataServiceImpl) UpdateMetadata(
	ctx context.Context,
	caller, tokenID, title, description string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if caller != s.operator {
		log.Warn("metadata update rejected for non-operator caller",
			slog.String("caller", caller),
			slog.String("token_id", tokenID))
		return domain.ErrUnauthorized
	}

	err := store.RunInTransaction(ctx, s.tokenRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txTokenRepo := s.tokenRepo.WithTx(tx)
		txIndexRepo := s.indexRepo.WithTx(tx)

		token, err := txTokenRepo.GetByID(ctx, tokenID)
		if err != nil {
			return err
		}

		if token.Extension == nil {
			return domain.ErrInvalidFields
		}

		if err := token.Extension.FillMetadata(title, description); err != nil {
			return err
		}

		// The removal is unconditional and idempotent: tokens minted
		// with complete metadata were never in the index.
		if err := txIndexRepo.Remove(ctx, tokenID); err != nil {
			return NewServiceError("update", "failed to update incomplete-projects index", err)
		}

		return txTokenRepo.Save(ctx, token)
	})
	if err != nil {
		log.Warn("metadata update failed",
			slog.String("error", err.Error()),
			slog.String("token_id", tokenID))
		return err
	}

	log.Info("metadata completed", slog.String("token_id", tokenID))

	s.emitAudit(ctx, events.ActionUpdate, map[string]string{
		"token_id": tokenID,
	})

	return nil
}

// IncompleteProjects implements MetadataService.IncompleteProjects
func (s *metadataServiceImpl) IncompleteProjects(ctx context.Context, limit int) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tokenIDs, err := s.indexRepo.Snapshot(ctx, limit)
	if err != nil {
		log.Error("failed to load incomplete-projects snapshot",
			slog.String("error", err.Error()))
		return nil, err
	}

	return tokenIDs, nil
}

// emitAudit publishes an audit event after a committed operation.
func (s *metadataServiceImpl) emitAudit(ctx context.Context, action string, attrs map[string]string) {
	if err := s.emitter.EmitEvent(ctx, events.NewAuditEvent(action, attrs)); err != nil {
		s.logger.Error("failed to emit audit event",
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}
