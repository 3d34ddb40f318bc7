package aqt

import "github.com/aqt-dev/aqt/internal/types"

// Handler renders one node kind. Handlers receive the per-render State for
// bind accumulation and recursion and must not retain it.
type Handler func(s *State, n *Node) (string, error)

// Table maps operation tags to handlers. A Table is immutable after
// construction and safe for concurrent reads across renders.
type Table struct {
	handlers map[Tag]Handler
}

// NewTable builds a table from a base plus a set of additions/overrides.
// The base is copied, never mutated; pass nil to start from scratch.
func NewTable(base *Table, entries map[Tag]Handler) *Table {
	size := len(entries)
	if base != nil {
		size += len(base.handlers)
	}
	handlers := make(map[Tag]Handler, size)
	if base != nil {
		for tag, h := range base.handlers {
			handlers[tag] = h
		}
	}
	for tag, h := range entries {
		handlers[tag] = h
	}
	return &Table{handlers: handlers}
}

// Lookup returns the handler for tag. A miss is not an error here; the
// dispatch site decides how to classify it.
func (t *Table) Lookup(tag Tag) (Handler, bool) {
	h, ok := t.handlers[tag]
	return h, ok
}

// dispatch resolves a node through a table. The table becomes the active
// one for the handler's sub-renders, so a layer's overrides apply to the
// whole subtree it covers. On a miss, an operation-style tag is a malformed
// clause, while a bare word falls through to the binary-operator path so
// custom operator maps keep working.
func dispatch(s *State, t *Table, n *Node) (string, error) {
	prev := s.table
	s.table = t
	defer func() { s.table = prev }()

	if h, ok := t.Lookup(n.Tag); ok {
		return h(s, n)
	}
	if types.IsReserved(n.Tag) {
		return "", types.UnknownTagError{Tag: n.Tag}
	}
	if _, ok := s.r.cfg.Operators[n.Op]; !ok {
		return "", types.UnknownOperatorError{Op: string(n.Tag)}
	}
	return renderBinop(s, n)
}
