// Package migrations embeds the cloud schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
