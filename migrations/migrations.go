// Package migrations embeds the Spanner DDL files applied by cmd/migrate and
// by the integration test harness.
package migrations

import "embed"

// FS holds every *.sql file of this directory.
//
//go:embed *.sql
var FS embed.FS
