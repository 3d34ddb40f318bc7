package aqt

import (
	"fmt"
	"strings"

	"github.com/aqt-dev/aqt/internal/types"
)

// Config is the caller-supplied rendering configuration. Nothing in it is
// hardcoded into the renderers: quoting, separators, placeholder style,
// boolean-group priorities and the operator map all come from here.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type Config struct {
	// Identifier quoting. With Quote off, segments are joined by NameSep
	// unquoted.
	Quote      bool
	QuoteOpen  string
	QuoteClose string

	// NameSep joins identifier segments (default ".").
	NameSep string

	// ListSep joins list children (default ", ").
	ListSep string

	// Placeholder emits the token standing in for the bind value with the
	// given 1-based ordinal ("?", "$3", "@p3").
	Placeholder func(ordinal int) string

	// Priorities ranks boolean-group tags. A nested group is parenthesized
	// iff its priority is strictly greater than its parent's.
	Priorities map[Tag]int

	// Operators maps logical operator names to SQL tokens.
	Operators map[string]string
}

// DefaultConfig returns portable defaults: double-quoted identifiers,
// "?" placeholders, AND binding looser than OR.
func DefaultConfig() Config {
	return Config{
		Quote:       true,
		QuoteOpen:   `"`,
		QuoteClose:  `"`,
		NameSep:     ".",
		ListSep:     ", ",
		Placeholder: func(int) string { return "?" },
		Priorities:  map[Tag]int{TagAnd: 1, TagOr: 2},
		Operators:   DefaultOperators(),
	}
}

// DefaultOperators returns the default logical-operator-name -> SQL token
// map. Symbolic names map to themselves; word forms cover the operators
// whose SQL spelling contains spaces.
func DefaultOperators() map[string]string {
	return map[string]string{
		"=":        "=",
		"!=":       "!=",
		"<>":       "<>",
		"<":        "<",
		">":        ">",
		"<=":       "<=",
		">=":       ">=",
		"like":     "LIKE",
		"not_like": "NOT LIKE",
		"is":       "IS",
		"is_not":   "IS NOT",
	}
}

// Renderer converts query trees to SQL. It is immutable after New and safe
// to share across concurrent renders; per-render state lives in State.
type Renderer struct {
	cfg   Config
	base  *Table
	where *Table
}

// Option customizes a Renderer's dispatch tables.
type Option func(*tableOverrides)

type tableOverrides struct {
	base  map[Tag]Handler
	where map[Tag]Handler
}

// WithHandlers layers entries over the generic dispatch table.
func WithHandlers(entries map[Tag]Handler) Option {
	return func(o *tableOverrides) {
		if o.base == nil {
			o.base = map[Tag]Handler{}
		}
		for tag, h := range entries {
			o.base[tag] = h
		}
	}
}

// WithWhereHandlers layers entries over the WHERE dispatch table only.
func WithWhereHandlers(entries map[Tag]Handler) Option {
	return func(o *tableOverrides) {
		if o.where == nil {
			o.where = map[Tag]Handler{}
		}
		for tag, h := range entries {
			o.where[tag] = h
		}
	}
}

// New builds a Renderer from a config. The config's maps are copied so a
// built renderer cannot be changed from outside.
func New(cfg Config, opts ...Option) *Renderer {
	cfg.Priorities = copyMap(cfg.Priorities)
	cfg.Operators = copyMap(cfg.Operators)
	if cfg.Placeholder == nil {
		cfg.Placeholder = func(int) string { return "?" }
	}

	var ov tableOverrides
	for _, opt := range opts {
		opt(&ov)
	}

	base := NewTable(genericTable(), ov.base)
	where := NewTable(NewTable(base, whereEntries()), ov.where)

	return &Renderer{cfg: cfg, base: base, where: where}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// genericTable holds the statement and expression handlers.
func genericTable() *Table {
	return NewTable(nil, map[Tag]Handler{
		TagSelect: renderSelect,
		TagInsert: renderInsert,
		TagUpdate: renderUpdate,
		TagDelete: renderDelete,
		TagWhere:  renderWhereClause,
		TagJoin:   renderJoin,
		TagName:   renderName,
		TagValue:  renderValue,
		TagList:   renderList,
		TagAlias:  renderAlias,
		TagBinop:  renderBinop,
	})
}

// whereEntries is the WHERE-specific layer: predicates that only make sense
// inside a boolean group, plus explicit name/value entries so where-scoped
// overrides have a seam to hook into.
func whereEntries() map[Tag]Handler {
	return map[Tag]Handler{
		TagIn:    renderIn,
		TagNotIn: renderIn,
		TagTrue:  renderTrue,
		TagFalse: renderFalse,
		TagName:  renderName,
		TagValue: renderValue,
	}
}

// Render normalizes v and renders it to SQL plus ordered bind values. The
// input is never mutated; all per-call state lives in the returned values.
func (r *Renderer) Render(v any) (*Result, error) {
	n, err := types.Normalize(v)
	if err != nil {
		return nil, err
	}
	s := &State{r: r}
	sql, err := s.Render(n)
	if err != nil {
		return nil, err
	}
	return &Result{SQL: sql, Binds: s.binds}, nil
}

// State is the per-render mutable state: the bind accumulator, the active
// dispatch table, and access to the renderer's config. Each Render call
// owns exactly one State; it must not be shared across concurrent renders.
type State struct {
	r     *Renderer
	table *Table
	binds []any
}

// Config returns the renderer's configuration.
func (s *State) Config() *Config {
	return &s.r.cfg
}

// Bind appends a literal to the bind accumulator and returns the
// placeholder token standing in for it.
func (s *State) Bind(v any) string {
	s.binds = append(s.binds, v)
	return s.r.cfg.Placeholder(len(s.binds))
}

// Render dispatches a node through the active table. Outside any clause
// that is the generic table; within a WHERE subtree it is the WHERE layer,
// so where-scoped overrides apply to nested expressions too.
func (s *State) Render(n *Node) (string, error) {
	t := s.table
	if t == nil {
		t = s.r.base
	}
	return dispatch(s, t, n)
}

// renderSelect assembles a SELECT statement in fixed clause order. The
// required clauses are re-checked here so hand-built nodes fail the same
// way normalized input does.
func renderSelect(s *State, n *Node) (string, error) {
	if n.Columns == nil {
		return "", types.NewStructuralError("select requires a columns clause")
	}
	if n.Columns.Tag != TagList {
		return "", types.NewStructuralError("select columns must be tagged list, got %q", string(n.Columns.Tag))
	}
	if n.From == nil {
		return "", types.NewStructuralError("select requires a from clause")
	}

	var sql strings.Builder
	sql.WriteString("SELECT ")

	columns, err := s.Render(n.Columns)
	if err != nil {
		return "", err
	}
	sql.WriteString(columns)

	from, err := s.Render(n.From)
	if err != nil {
		return "", err
	}
	sql.WriteString(" FROM ")
	sql.WriteString(from)

	if n.Join != nil {
		join, err := s.Render(n.Join)
		if err != nil {
			return "", err
		}
		sql.WriteString(" ")
		sql.WriteString(join)
	}

	if err := appendWhere(s, &sql, n.Where); err != nil {
		return "", err
	}

	if n.GroupBy != nil {
		group, err := s.Render(n.GroupBy)
		if err != nil {
			return "", err
		}
		sql.WriteString(" GROUP BY ")
		sql.WriteString(group)
	}

	if len(n.OrderBy) > 0 {
		parts := make([]string, 0, len(n.OrderBy))
		for _, item := range n.OrderBy {
			expr, err := s.Render(item.Expr)
			if err != nil {
				return "", err
			}
			switch item.Dir {
			case TagAsc:
				expr += " ASC"
			case TagDesc:
				expr += " DESC"
			}
			parts = append(parts, expr)
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(parts, ", "))
	}

	if n.Limit != nil {
		fmt.Fprintf(&sql, " LIMIT %d", *n.Limit)
	}
	if n.Offset != nil {
		fmt.Fprintf(&sql, " OFFSET %d", *n.Offset)
	}

	return sql.String(), nil
}

func renderInsert(s *State, n *Node) (string, error) {
	if n.From == nil {
		return "", types.NewStructuralError("insert requires an into clause")
	}
	if n.Columns == nil || n.Columns.Tag != TagList {
		return "", types.NewStructuralError("insert requires a columns list")
	}
	if len(n.Rows) == 0 {
		return "", types.NewStructuralError("insert requires at least one row of values")
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO ")

	into, err := s.Render(n.From)
	if err != nil {
		return "", err
	}
	sql.WriteString(into)

	columns, err := s.Render(n.Columns)
	if err != nil {
		return "", err
	}
	sql.WriteString(" (")
	sql.WriteString(columns)
	sql.WriteString(") VALUES ")

	rows := make([]string, 0, len(n.Rows))
	for _, row := range n.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			rendered, err := s.Render(cell)
			if err != nil {
				return "", err
			}
			cells = append(cells, rendered)
		}
		rows = append(rows, "("+strings.Join(cells, ", ")+")")
	}
	sql.WriteString(strings.Join(rows, ", "))

	return sql.String(), nil
}

func renderUpdate(s *State, n *Node) (string, error) {
	if n.From == nil {
		return "", types.NewStructuralError("update requires a table clause")
	}
	if len(n.Set) == 0 {
		return "", types.NewStructuralError("update requires at least one assignment")
	}

	var sql strings.Builder
	sql.WriteString("UPDATE ")

	table, err := s.Render(n.From)
	if err != nil {
		return "", err
	}
	sql.WriteString(table)
	sql.WriteString(" SET ")

	// Assignments arrive sorted by column from normalization, which keeps
	// the output deterministic for map-shaped input.
	assignments := make([]string, 0, len(n.Set))
	for _, item := range n.Set {
		expr, err := s.Render(item.Expr)
		if err != nil {
			return "", err
		}
		assignments = append(assignments, s.Quote([]string{item.Column})+" = "+expr)
	}
	sql.WriteString(strings.Join(assignments, ", "))

	if err := appendWhere(s, &sql, n.Where); err != nil {
		return "", err
	}

	return sql.String(), nil
}

func renderDelete(s *State, n *Node) (string, error) {
	if n.From == nil {
		return "", types.NewStructuralError("delete requires a from clause")
	}

	var sql strings.Builder
	sql.WriteString("DELETE FROM ")

	from, err := s.Render(n.From)
	if err != nil {
		return "", err
	}
	sql.WriteString(from)

	if err := appendWhere(s, &sql, n.Where); err != nil {
		return "", err
	}

	return sql.String(), nil
}

func appendWhere(s *State, sql *strings.Builder, where *Node) error {
	if where == nil {
		return nil
	}
	rendered, err := s.RenderWhere(where)
	if err != nil {
		return err
	}
	sql.WriteString(" WHERE ")
	sql.WriteString(rendered)
	return nil
}

// renderWhereClause handles an explicit ("where", ...) node.
func renderWhereClause(s *State, n *Node) (string, error) {
	if n.Where == nil {
		return "", types.NewStructuralError("where node has no clauses")
	}
	rendered, err := s.RenderWhere(n.Where)
	if err != nil {
		return "", err
	}
	return "WHERE " + rendered, nil
}

func renderJoin(s *State, n *Node) (string, error) {
	if n.From == nil {
		return "", types.NewStructuralError("join requires a tablespec clause")
	}
	if n.On != nil && n.Using != nil {
		return "", types.NewConfigurationError("join with both on and using is ambiguous")
	}

	table, err := s.Render(n.From)
	if err != nil {
		return "", err
	}

	switch {
	case n.On != nil:
		on, err := s.RenderWhere(n.On)
		if err != nil {
			return "", err
		}
		return "JOIN " + table + " ON (" + on + ")", nil
	case n.Using != nil:
		using, err := s.Render(n.Using)
		if err != nil {
			return "", err
		}
		return "JOIN " + table + " USING (" + using + ")", nil
	default:
		return "", types.NewConfigurationError("join requires one of on or using")
	}
}
