// Package migrations embeds the goose SQL migrations so the server binary
// can apply them at startup without a migrations directory on disk.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
