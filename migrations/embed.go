// Package migrations embeds the SQL schema applied at startup.
package migrations

import "embed"

// FS holds every NNN_name.up.sql / NNN_name.down.sql file.
//
//go:embed *.sql
var FS embed.FS
