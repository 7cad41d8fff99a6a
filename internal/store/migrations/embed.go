// Package migrations holds the SQL schema migrations for the keybind index.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
