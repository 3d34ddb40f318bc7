// Package aqt renders abstract query trees to SQL text with positional
// bind values.
//
// The package walks a generic, dialect-agnostic tree describing a SQL
// statement and produces the literal SQL plus an ordered list of bind
// values. It never parses SQL, never plans queries, and never talks to a
// database; it only goes tree -> text.
//
// # Input grammar
//
// A node is either array-form — a []any whose first element is the
// operation tag — or hash-form, a map[string]any keyed by clause name:
//
//	[]any{"name", []string{"users", "email"}}
//	[]any{"value", 42}
//	map[string]any{
//		"columns": []any{"list", []any{"name", []string{"id"}}},
//		"from":    []any{"name", []string{"users"}},
//	}
//
// Both shapes normalize to one canonical tagged node before dispatch. A
// bare mapping acquires its tag from its keys: "columns"+"from" makes a
// select, "tablespec" makes a join.
//
// # Rendering
//
//	r := aqt.New(aqt.DefaultConfig())
//	res, err := r.Render(tree)
//	// res.SQL:   SELECT "id" FROM "users"
//	// res.Binds: ordered values for the emitted placeholders
//
// Value literals never appear in the SQL text; each one is replaced by a
// placeholder and appended to Result.Binds in placeholder order.
//
// # Dialects
//
// The pkg/postgres, pkg/mysql, pkg/mariadb, pkg/sqlite and pkg/mssql
// packages export New() preconfigured for the dialect's quoting and
// placeholder style.
//
// # Extension
//
// Dispatch runs through an immutable tag -> handler table. NewTable layers
// entries over a base table without mutating it, and the WithHandlers /
// WithWhereHandlers options install such layers on a renderer, so
// specialized statement kinds can extend or replace behavior without
// touching the core.
package aqt

import "github.com/aqt-dev/aqt/internal/types"

// Node is the canonical tagged node every input shape normalizes to.
type Node = types.Node

// Tag identifies the operation a node represents.
type Tag = types.Tag

// Result contains the rendered SQL and its bind values in placeholder order.
type Result = types.Result

// OrderItem is one ORDER BY entry.
type OrderItem = types.OrderItem

// SetItem is one UPDATE column assignment.
type SetItem = types.SetItem

// Re-export tag constants for public API.
const (
	TagSelect = types.TagSelect
	TagInsert = types.TagInsert
	TagUpdate = types.TagUpdate
	TagDelete = types.TagDelete
	TagWhere  = types.TagWhere
	TagJoin   = types.TagJoin
	TagName   = types.TagName
	TagValue  = types.TagValue
	TagList   = types.TagList
	TagAlias  = types.TagAlias
	TagIn     = types.TagIn
	TagNotIn  = types.TagNotIn
	TagTrue   = types.TagTrue
	TagFalse  = types.TagFalse
	TagBinop  = types.TagBinop
	TagAnd    = types.TagAnd
	TagOr     = types.TagOr
	TagAsc    = types.TagAsc
	TagDesc   = types.TagDesc
)

// Error taxonomy, re-exported so callers can match with errors.As.
type (
	// StructuralError indicates a required clause is missing or malformed.
	StructuralError = types.StructuralError
	// UnknownTagError indicates a dispatch miss on an operation-style tag.
	UnknownTagError = types.UnknownTagError
	// UnknownOperatorError indicates a bare-word clause tag that names no
	// known binary operator.
	UnknownOperatorError = types.UnknownOperatorError
	// ConfigurationError indicates an invalid clause combination.
	ConfigurationError = types.ConfigurationError
	// UnmappedOperatorError indicates a binop operator word absent from the
	// operator map.
	UnmappedOperatorError = types.UnmappedOperatorError
)

// Normalize resolves an array-form or hash-form value into the canonical
// node form without rendering it.
func Normalize(v any) (*Node, error) {
	return types.Normalize(v)
}
