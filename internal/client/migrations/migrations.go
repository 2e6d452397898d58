// Package migrations embeds the goose migrations of the client session
// database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
