// Package gamedata provides the embedded move catalog and battle roster.
package gamedata

import "embed"

// dataFS embeds moves.json and roster.json at build time.
//
//go:embed *.json
var dataFS embed.FS
