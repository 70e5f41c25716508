package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

// PostgresIndexStore implements the store.IndexStore interface. The
// incomplete-projects index is a single row holding an ordered JSONB
// array of token ids; it is mutated only by mint (append) and update
// (remove), never recomputed from token state.
type PostgresIndexStore struct {
	db     store.DBTX
	logger *slog.Logger
	inTx   bool
}

// NewPostgresIndexStore creates a new PostgreSQL implementation of the
// IndexStore interface. If logger is nil, a default logger will be used.
func NewPostgresIndexStore(db store.DBTX, logger *slog.Logger) *PostgresIndexStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresIndexStore{
		db:     db,
		logger: logger.With(slog.String("component", "index_store")),
	}
}

// Ensure PostgresIndexStore implements store.IndexStore interface
var _ store.IndexStore = (*PostgresIndexStore)(nil)

// WithTx implements store.IndexStore.WithTx
func (s *PostgresIndexStore) WithTx(tx *sql.Tx) store.IndexStore {
	return &PostgresIndexStore{
		db:     tx,
		logger: s.logger,
		inTx:   true,
	}
}

// Snapshot implements store.IndexStore.Snapshot
// It returns the full index in insertion order; a positive limit caps the
// result without changing its order.
func (s *PostgresIndexStore) Snapshot(ctx context.Context, limit int) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT token_ids FROM incomplete_projects WHERE id = 1`
	if s.inTx {
		query += " FOR UPDATE"
	}

	var tokenIDsJSON []byte
	if err := s.db.QueryRowContext(ctx, query).Scan(&tokenIDsJSON); err != nil {
		log.Error("failed to load incomplete-projects index",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	tokenIDs := []string{}
	if err := json.Unmarshal(tokenIDsJSON, &tokenIDs); err != nil {
		return nil, fmt.Errorf("failed to decode incomplete-projects index: %w", err)
	}

	if limit > 0 && len(tokenIDs) > limit {
		tokenIDs = tokenIDs[:limit]
	}

	return tokenIDs, nil
}

// Append implements store.IndexStore.Append
// It adds a token id to the end of the index.
func (s *PostgresIndexStore) Append(ctx context.Context, tokenID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE incomplete_projects
		SET token_ids = token_ids || to_jsonb($1::text)
		WHERE id = 1
	`
	result, err := s.db.ExecContext(ctx, query, tokenID)
	if err != nil {
		log.Error("failed to append to incomplete-projects index",
			slog.String("error", err.Error()),
			slog.String("token_id", tokenID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "incomplete_projects"); err != nil {
		return err
	}

	log.Debug("token appended to incomplete-projects index",
		slog.String("token_id", tokenID))
	return nil
}

// Remove implements store.IndexStore.Remove
// It filters a token id out of the index. Removing an id that is not
// present leaves the index unchanged.
func (s *PostgresIndexStore) Remove(ctx context.Context, tokenID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The jsonb "-" operator removes every array element equal to the
	// string while preserving the order of the remaining entries.
	query := `
		UPDATE incomplete_projects
		SET token_ids = token_ids - $1::text
		WHERE id = 1
	`
	result, err := s.db.ExecContext(ctx, query, tokenID)
	if err != nil {
		log.Error("failed to remove from incomplete-projects index",
			slog.String("error", err.Error()),
			slog.String("token_id", tokenID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "incomplete_projects"); err != nil {
		return err
	}

	log.Debug("token removed from incomplete-projects index",
		slog.String("token_id", tokenID))
	return nil
}
