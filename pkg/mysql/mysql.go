// Package mysql provides the MySQL dialect renderer for aqt.
package mysql

import "github.com/aqt-dev/aqt"

// Config returns the MySQL rendering configuration: backtick-quoted
// identifiers and ? placeholders.
func Config() aqt.Config {
	cfg := aqt.DefaultConfig()
	cfg.QuoteOpen = "`"
	cfg.QuoteClose = "`"
	return cfg
}

// New creates a new MySQL renderer.
func New() *aqt.Renderer {
	return aqt.New(Config())
}
