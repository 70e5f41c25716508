package store

import (
	"context"
	"database/sql"
)

// IndexStore defines the interface for the incomplete-projects index: a
// single process-wide ordered list of token ids still missing metadata.
// The index is event-driven, mutated only at mint (append) and update
// (remove); it is never re-derived by scanning token state.
type IndexStore interface {
	// Snapshot returns the full index in insertion order. The result is
	// never nil. A limit of 0 means unbounded; a positive limit caps the
	// snapshot without changing its order.
	Snapshot(ctx context.Context, limit int) ([]string, error)

	// Append adds a token id to the end of the index. Ids are appended at
	// most once per token (at mint), so duplicates never occur.
	//
	// Must run within the same transaction as the mint that triggered it.
	Append(ctx context.Context, tokenID string) error

	// Remove filters a token id out of the index, preserving the order of
	// the remaining entries. Removing an absent id is an idempotent no-op.
	//
	// Must run within the same transaction as the update that triggered it.
	Remove(ctx context.Context, tokenID string) error

	// WithTx returns an IndexStore bound to the given transaction.
	WithTx(tx *sql.Tx) IndexStore
}
