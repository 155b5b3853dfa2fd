//go:build tools
// +build tools

package tools

// Tracks the migration CLI in go.mod so `go run github.com/pressly/goose/v3/cmd/goose`
// uses the same version the server embeds.

import (
	_ "github.com/pressly/goose/v3/cmd/goose"
)
