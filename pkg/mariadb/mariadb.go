// Package mariadb provides the MariaDB dialect renderer for aqt.
//
// MariaDB shares MySQL's quoting and placeholder conventions; the package
// exists so callers can name the dialect they target.
package mariadb

import "github.com/aqt-dev/aqt"

// Config returns the MariaDB rendering configuration.
func Config() aqt.Config {
	cfg := aqt.DefaultConfig()
	cfg.QuoteOpen = "`"
	cfg.QuoteClose = "`"
	return cfg
}

// New creates a new MariaDB renderer.
func New() *aqt.Renderer {
	return aqt.New(Config())
}
