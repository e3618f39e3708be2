// Package migrations embeds the SQL schema so the server binary can run
// its own migrations without files on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
