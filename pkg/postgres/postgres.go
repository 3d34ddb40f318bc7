// Package postgres provides the PostgreSQL dialect renderer for aqt.
package postgres

import (
	"fmt"

	"github.com/aqt-dev/aqt"
)

// Config returns the PostgreSQL rendering configuration: double-quoted
// identifiers and positional $N placeholders as used by pgx.
func Config() aqt.Config {
	cfg := aqt.DefaultConfig()
	cfg.Placeholder = func(ordinal int) string {
		return fmt.Sprintf("$%d", ordinal)
	}
	return cfg
}

// New creates a new PostgreSQL renderer.
func New() *aqt.Renderer {
	return aqt.New(Config())
}
