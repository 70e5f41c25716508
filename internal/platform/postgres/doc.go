// Package postgres contains the PostgreSQL implementations of the store
// interfaces: the token table (extension and task list stored as JSONB
// alongside the ledger record), the singleton incomplete-projects index,
// and the ledger token counter.
package postgres
