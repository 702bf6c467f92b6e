// Package migrations holds the catalog schema
package migrations

import "embed"

// FS contains the catalog SQL migrations
//
//go:embed *.sql
var FS embed.FS
