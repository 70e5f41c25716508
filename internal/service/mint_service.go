package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"

	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/events"
	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

// MintService coordinates token creation: it allocates the next
// sequential id from the ledger counter, inserts the token, and registers
// it in the incomplete-projects index when its metadata is not yet
// complete. Minting is open to any caller; there is no ownership check by
// design, unlike response and update.
type MintService interface {
	// MintToken creates a new token for the given owner and returns the
	// assigned token id.
	MintToken(
		ctx context.Context,
		minter string,
		owner string,
		tokenURI *string,
		extension *domain.Extension,
	) (string, error)
}

// mintServiceImpl implements the MintService interface
type mintServiceImpl struct {
	tokenRepo   TokenRepository
	counterRepo CounterRepository
	indexRepo   IndexRepository
	emitter     events.Emitter
	logger      *slog.Logger
}

// NewMintService creates a new MintService.
// It returns an error if any of the required dependencies are nil.
func NewMintService(
	tokenRepo TokenRepository,
	counterRepo CounterRepository,
	indexRepo IndexRepository,
	emitter events.Emitter,
	logger *slog.Logger,
) (MintService, error) {
	if tokenRepo == nil {
		return nil, domain.NewValidationError("tokenRepo", "cannot be nil", domain.ErrValidation)
	}
	if counterRepo == nil {
		return nil, domain.NewValidationError("counterRepo", "cannot be nil", domain.ErrValidation)
	}
	if indexRepo == nil {
		return nil, domain.NewValidationError("indexRepo", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		return nil, domain.NewValidationError("emitter", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &mintServiceImpl{
		tokenRepo:   tokenRepo,
		counterRepo: counterRepo,
		indexRepo:   indexRepo,
		emitter:     emitter,
		logger:      logger.With(slog.String("component", "mint_service")),
	}, nil
}

// MintToken implements MintService.MintToken
func (s *mintServiceImpl) MintToken(
	ctx context.Context,
	minter string,
	owner string,
	tokenURI *string,
	extension *domain.Extension,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	token, err := domain.NewToken(owner, tokenURI, extension)
	if err != nil {
		log.Warn("mint rejected by token validation",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return "", NewServiceError("mint", "invalid token data", err)
	}

	var tokenID string
	err = store.RunInTransaction(ctx, s.tokenRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txTokenRepo := s.tokenRepo.WithTx(tx)
		txCounterRepo := s.counterRepo.WithTx(tx)
		txIndexRepo := s.indexRepo.WithTx(tx)

		// The current count is the next id; the counter row stays locked
		// until commit so concurrent mints serialize.
		count, err := txCounterRepo.Current(ctx)
		if err != nil {
			return NewServiceError("mint", "failed to read token counter", err)
		}
		tokenID = strconv.FormatUint(count, 10)
		token.ID = tokenID

		if err := txTokenRepo.Create(ctx, token); err != nil {
			return err
		}

		// Incremented only after the insert succeeded.
		if err := txCounterRepo.Increment(ctx); err != nil {
			return NewServiceError("mint", "failed to increment token counter", err)
		}

		// Tokens minted without full metadata enter the index; removal
		// happens exactly once, at the first successful update.
		if extension == nil || !extension.Complete() {
			if err := txIndexRepo.Append(ctx, tokenID); err != nil {
				return NewServiceError("mint", "failed to register incomplete project", err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error("mint transaction failed",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return "", err
	}

	log.Info("token minted",
		slog.String("token_id", tokenID),
		slog.String("minter", minter),
		slog.String("owner", owner))

	s.emitAudit(ctx, events.ActionMint, map[string]string{
		"minter":   minter,
		"owner":    owner,
		"token_id": tokenID,
	})

	return tokenID, nil
}

// emitAudit publishes an audit event after a committed operation. Audit
// delivery failures are logged, not surfaced: the operation itself has
// already committed.
func (s *mintServiceImpl) emitAudit(ctx context.Context, action string, attrs map[string]string) {
	if err := s.emitter.EmitEvent(ctx, events.NewAuditEvent(action, attrs)); err != nil {
		s.logger.Error("failed to emit audit event",
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}
