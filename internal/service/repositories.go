package service

import (
	"context"
	"database/sql"

	"github.com/gatewaylabs/gateway-api/internal/domain"
)

// TokenRepository defines the token persistence interface for the service
// layer.
type TokenRepository interface {
	// Create inserts a new token under its id
	Create(ctx context.Context, token *domain.Token) error

	// GetByID retrieves a token by its id
	GetByID(ctx context.Context, id string) (*domain.Token, error)

	// Save writes back a token's current state
	Save(ctx context.Context, token *domain.Token) error

	// WithTx returns a new repository instance that uses the provided
	// transaction
	WithTx(tx *sql.Tx) TokenRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// CounterRepository defines the ledger counter interface for the service
// layer.
type CounterRepository interface {
	// Current returns the current token count
	Current(ctx context.Context) (uint64, error)

	// Increment adds one to the token count
	Increment(ctx context.Context) error

	// WithTx returns a new repository instance that uses the provided
	// transaction
	WithTx(tx *sql.Tx) CounterRepository
}

// IndexRepository defines the incomplete-projects index interface for the
// service layer.
type IndexRepository interface {
	// Snapshot returns the index in insertion order, capped at limit
	// when limit is positive
	Snapshot(ctx context.Context, limit int) ([]string, error)

	// Append adds a token id to the end of the index
	Append(ctx context.Context, tokenID string) error

	// Remove filters a token id out of the index
	Remove(ctx context.Context, tokenID string) error

	// WithTx returns a new repository instance that uses the provided
	// transaction
	WithTx(tx *sql.Tx) IndexRepository
}
