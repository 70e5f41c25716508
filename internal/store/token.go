package store

import (
	"context"
	"database/sql"

	"github.com/gatewaylabs/gateway-api/internal/domain"
)

// TokenStore defines the interface for token persistence. Each token row
// holds the ledger record and its extension in one place, so a single load
// and save covers both.
type TokenStore interface {
	// Create inserts a new token under its id.
	// Returns ErrTokenExists if the id is already occupied.
	// Returns validation errors if the token data is invalid.
	Create(ctx context.Context, token *domain.Token) error

	// GetByID retrieves a token by its id, with the extension record and
	// task list populated. Returns ErrTokenNotFound if it does not exist.
	//
	// Mutating operations must call this within a transaction created by
	// store.RunInTransaction so the read locks the row until commit.
	GetByID(ctx context.Context, id string) (*domain.Token, error)

	// Save writes back a token's current state, including its extension
	// and task list. Returns ErrTokenNotFound if the token does not exist.
	Save(ctx context.Context, token *domain.Token) error

	// WithTx returns a TokenStore bound to the given transaction, so
	// multiple operations can run atomically. The transaction is created
	// and managed by the caller, typically via store.RunInTransaction.
	WithTx(tx *sql.Tx) TokenStore
}

// CounterStore is the ledger's token counter: an atomically incrementing
// count used to mint new sequential ids. The current count is the next id.
type CounterStore interface {
	// Current returns the current token count.
	Current(ctx context.Context) (uint64, error)

	// Increment adds one to the token count. Called only after the token
	// insert for the minted id has succeeded.
	Increment(ctx context.Context) error

	// WithTx returns a CounterStore bound to the given transaction.
	WithTx(tx *sql.Tx) CounterStore
}
