package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

// PostgresTokenStore implements the store.TokenStore interface using a
// PostgreSQL database as the storage backend. The extension record is
// stored as JSONB co-located with the token row, so one round trip loads
// or saves a token together with its metadata and task list.
type PostgresTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
	// inTx marks a store bound to a transaction; reads then take a row
	// lock so concurrent read-modify-write operations serialize per token.
	inTx bool
}

// NewPostgresTokenStore creates a new PostgreSQL implementation of the
// TokenStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresTokenStore(db store.DBTX, logger *slog.Logger) *PostgresTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

// Ensure PostgresTokenStore implements store.TokenStore interface
var _ store.TokenStore = (*PostgresTokenStore)(nil)

// WithTx implements store.TokenStore.WithTx
func (s *PostgresTokenStore) WithTx(tx *sql.Tx) store.TokenStore {
	return &PostgresTokenStore{
		db:     tx,
		logger: s.logger,
		inTx:   true,
	}
}

// Create implements store.TokenStore.Create
// It inserts a new token row under its id.
// Returns store.ErrTokenExists if the id is already occupied.
func (s *PostgresTokenStore) Create(ctx context.Context, token *domain.Token) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := token.Validate(); err != nil {
		log.Warn("token validation failed during create",
			slog.String("error", err.Error()),
			slog.String("token_id", token.ID))
		return err
	}

	extensionJSON, err := marshalExtension(token.Extension)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tokens (token_id, owner, token_uri, extension, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		token.ID,
		token.Owner,
		token.TokenURI,
		extensionJSON,
		token.CreatedAt,
		token.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("token id collision during mint",
				slog.String("token_id", token.ID))
			return fmt.Errorf("%w: %v", store.ErrTokenExists, err)
		}

		log.Error("failed to create token",
			slog.String("error", err.Error()),
			slog.String("token_id", token.ID))
		return MapError(err)
	}

	log.Info("token created successfully",
		slog.String("token_id", token.ID),
		slog.String("owner", token.Owner))
	return nil
}

// GetByID implements store.TokenStore.GetByID
// It retrieves a token by its id with the extension record populated.
// Returns store.ErrTokenNotFound if the token does not exist. When the
// store is bound to a transaction the row is locked until commit.
func (s *PostgresTokenStore) GetByID(ctx context.Context, id string) (*domain.Token, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT token_id, owner, token_uri, extension, created_at, updated_at
		FROM tokens
		WHERE token_id = $1
	`
	if s.inTx {
		query += " FOR UPDATE"
	}

	var token domain.Token
	var extensionJSON []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&token.ID,
		&token.Owner,
		&token.TokenURI,
		&extensionJSON,
		&token.CreatedAt,
		&token.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			log.Debug("token not found", slog.String("token_id", id))
			return nil, store.ErrTokenNotFound
		}
		log.Error("failed to get token by id",
			slog.String("error", err.Error()),
			slog.String("token_id", id))
		return nil, MapError(err)
	}

	token.Extension, err = unmarshalExtension(extensionJSON)
	if err != nil {
		log.Error("failed to decode token extension",
			slog.String("error", err.Error()),
			slog.String("token_id", id))
		return nil, err
	}

	return &token, nil
}

// Save implements store.TokenStore.Save
// It writes back a token's current state including its extension record.
// Returns store.ErrTokenNotFound if the token does not exist.
func (s *PostgresTokenStore) Save(ctx context.Context, token *domain.Token) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	extensionJSON, err := marshalExtension(token.Extension)
	if err != nil {
		return err
	}

	query := `
		UPDATE tokens
		SET owner = $1, token_uri = $2, extension = $3, updated_at = $4
		WHERE token_id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		token.Owner,
		token.TokenURI,
		extensionJSON,
		time.Now().UTC(),
		token.ID,
	)

	if err != nil {
		log.Error("failed to save token",
			slog.String("error", err.Error()),
			slog.String("token_id", token.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "token"); err != nil {
		log.Debug("token not found for save", slog.String("token_id", token.ID))
		return store.ErrTokenNotFound
	}

	log.Debug("token saved successfully", slog.String("token_id", token.ID))
	return nil
}

// marshalExtension encodes an extension record for the JSONB column.
// A nil extension is stored as SQL NULL, matching a token minted without
// metadata.
func marshalExtension(extension *domain.Extension) ([]byte, error) {
	if extension == nil {
		return nil, nil
	}
	data, err := json.Marshal(extension)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extension: %w", err)
	}
	return data, nil
}

// unmarshalExtension decodes the JSONB extension column; NULL maps back
// to a nil extension.
func unmarshalExtension(data []byte) (*domain.Extension, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var extension domain.Extension
	if err := json.Unmarshal(data, &extension); err != nil {
		return nil, fmt.Errorf("failed to decode extension: %w", err)
	}
	return &extension, nil
}
