package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

// PostgresCounterStore implements the store.CounterStore interface. The
// ledger's token counter is a single row whose count equals the number of
// tokens ever minted; the current count is the next token id.
type PostgresCounterStore struct {
	db     store.DBTX
	logger *slog.Logger
	inTx   bool
}

// NewPostgresCounterStore creates a new PostgreSQL implementation of the
// CounterStore interface. If logger is nil, a default logger will be used.
func NewPostgresCounterStore(db store.DBTX, logger *slog.Logger) *PostgresCounterStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCounterStore{
		db:     db,
		logger: logger.With(slog.String("component", "counter_store")),
	}
}

// Ensure PostgresCounterStore implements store.CounterStore interface
var _ store.CounterStore = (*PostgresCounterStore)(nil)

// WithTx implements store.CounterStore.WithTx
func (s *PostgresCounterStore) WithTx(tx *sql.Tx) store.CounterStore {
	return &PostgresCounterStore{
		db:     tx,
		logger: s.logger,
		inTx:   true,
	}
}

// Current implements store.CounterStore.Current
// When bound to a transaction the counter row is locked until commit, so
// two concurrent mints cannot allocate the same id.
func (s *PostgresCounterStore) Current(ctx context.Context) (uint64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT count FROM token_counter WHERE id = 1`
	if s.inTx {
		query += " FOR UPDATE"
	}

	var count uint64
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		log.Error("failed to load token counter",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	return count, nil
}

// Increment implements store.CounterStore.Increment
func (s *PostgresCounterStore) Increment(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE token_counter SET count = count + 1 WHERE id = 1`
	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		log.Error("failed to increment token counter",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return CheckRowsAffected(result, "token_counter")
}
