package service

import (
	"context"
	"database/sql"

	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

// NewTokenRepositoryAdapter creates a new adapter that allows a
// store.TokenStore to be used where a TokenRepository is expected.
func NewTokenRepositoryAdapter(tokenStore store.TokenStore, db *sql.DB) TokenRepository {
	return &tokenRepositoryAdapter{
		tokenStore: tokenStore,
		db:         db,
	}
}

// tokenRepositoryAdapter adapts a store.TokenStore to the TokenRepository
// interface
type tokenRepositoryAdapter struct {
	tokenStore store.TokenStore
	db         *sql.DB
}

// Create implements TokenRepository.Create
func (a *tokenRepositoryAdapter) Create(ctx context.Context, token *domain.Token) error {
	return a.tokenStore.Create(ctx, token)
}

// GetByID implements TokenRepository.GetByID
func (a *tokenRepositoryAdapter) GetByID(ctx context.Context, id string) (*domain.Token, error) {
	return a.tokenStore.GetByID(ctx, id)
}

// Save implements TokenRepository.Save
func (a *tokenRepositoryAdapter) Save(ctx context.Context, token *domain.Token) error {
	return a.tokenStore.Save(ctx, token)
}

// WithTx implements TokenRepository.WithTx
func (a *tokenRepositoryAdapter) WithTx(tx *sql.Tx) TokenRepository {
	return &tokenRepositoryAdapter{
		tokenStore: a.tokenStore.WithTx(tx),
		db:         a.db,
	}
}

// DB implements TokenRepository.DB
func (a *tokenRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewCounterRepositoryAdapter creates a new adapter that allows a
// store.CounterStore to be used where a CounterRepository is expected.
func NewCounterRepositoryAdapter(counterStore store.CounterStore) CounterRepository {
	return &counterRepositoryAdapter{counterStore: counterStore}
}

// counterRepositoryAdapter adapts a store.CounterStore to the
// CounterRepository interface
type counterRepositoryAdapter struct {
	counterStore store.CounterStore
}

// Current implements CounterRepository.Current
func (a *counterRepositoryAdapter) Current(ctx context.Context) (uint64, error) {
	return a.counterStore.Current(ctx)
}

// Increment implements CounterRepository.Increment
func (a *counterRepositoryAdapter) Increment(ctx context.Context) error {
	return a.counterStore.Increment(ctx)
}

// WithTx implements CounterRepository.WithTx
func (a *counterRepositoryAdapter) WithTx(tx *sql.Tx) CounterRepository {
	return &counterRepositoryAdapter{counterStore: a.counterStore.WithTx(tx)}
}

// NewIndexRepositoryAdapter creates a new adapter that allows a
// store.IndexStore to be used where an IndexRepository is expected.
func NewIndexRepositoryAdapter(indexStore store.IndexStore) IndexRepository {
	return &indexRepositoryAdapter{indexStore: indexStore}
}

// indexRepositoryAdapter adapts a store.IndexStore to the IndexRepository
// interface
type indexRepositoryAdapter struct {
	indexStore store.IndexStore
}

// Snapshot implements IndexRepository.Snapshot
func (a *indexRepositoryAdapter) Snapshot(ctx context.Context, limit int) ([]string, error) {
	return a.indexStore.Snapshot(ctx, limit)
}

// Append implements IndexRepository.Append
func (a *indexRepositoryAdapter) Append(ctx context.Context, tokenID string) error {
	return a.indexStore.Append(ctx, tokenID)
}

// Remove implements IndexRepository.Remove
func (a *indexRepositoryAdapter) Remove(ctx context.Context, tokenID string) error {
	return a.indexStore.Remove(ctx, tokenID)
}

// WithTx implements IndexRepository.WithTx
func (a *indexRepositoryAdapter) WithTx(tx *sql.Tx) IndexRepository {
	return &indexRepositoryAdapter{indexStore: a.indexStore.WithTx(tx)}
}
