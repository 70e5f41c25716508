// Package store defines the persistence interfaces for the gateway's two
// shared mutable records: the token table (one row per token, extension
// co-located) and the singleton incomplete-projects index. It also carries
// the ledger counter used to mint sequential token ids, the shared DBTX
// abstraction, and the transaction helper services use to make every
// operation atomic.
package store
