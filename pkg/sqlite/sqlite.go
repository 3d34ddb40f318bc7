// Package sqlite provides the SQLite dialect renderer for aqt.
package sqlite

import "github.com/aqt-dev/aqt"

// Config returns the SQLite rendering configuration. SQLite accepts the
// portable defaults: double-quoted identifiers and ? placeholders.
func Config() aqt.Config {
	return aqt.DefaultConfig()
}

// New creates a new SQLite renderer.
func New() *aqt.Renderer {
	return aqt.New(Config())
}
