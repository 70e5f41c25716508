// Package domain defines the core business entities of the gateway:
// tokens, their extension metadata, and the per-token task list.
// It contains no persistence or transport concerns; stores and services
// depend on this package, never the other way around.
package domain
