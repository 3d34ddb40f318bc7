// Package mssql provides the SQL Server dialect renderer for aqt.
package mssql

import (
	"fmt"

	"github.com/aqt-dev/aqt"
)

// Config returns the SQL Server rendering configuration: bracket-quoted
// identifiers and @pN placeholders as used by go-mssqldb.
func Config() aqt.Config {
	cfg := aqt.DefaultConfig()
	cfg.QuoteOpen = "["
	cfg.QuoteClose = "]"
	cfg.Placeholder = func(ordinal int) string {
		return fmt.Sprintf("@p%d", ordinal)
	}
	return cfg
}

// New creates a new SQL Server renderer.
func New() *aqt.Renderer {
	return aqt.New(Config())
}
