package aqt

import (
	"strings"

	"github.com/aqt-dev/aqt/internal/types"
)

func renderName(s *State, n *Node) (string, error) {
	if len(n.Segments) == 0 {
		return "", types.NewStructuralError("name node has no segments")
	}
	return s.Quote(n.Segments), nil
}

// renderValue binds the literal and emits its placeholder. Literals never
// appear inline in the SQL text.
func renderValue(s *State, n *Node) (string, error) {
	return s.Bind(n.Literal), nil
}

func renderList(s *State, n *Node) (string, error) {
	parts := make([]string, 0, len(n.Kids))
	for _, kid := range n.Kids {
		rendered, err := s.Render(kid)
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}
	return strings.Join(parts, s.r.cfg.ListSep), nil
}

// renderAlias emits the alias text verbatim, unquoted.
func renderAlias(s *State, n *Node) (string, error) {
	if len(n.Kids) != 1 {
		return "", types.NewStructuralError("alias node requires an expression")
	}
	expr, err := s.Render(n.Kids[0])
	if err != nil {
		return "", err
	}
	return expr + " AS " + n.Alias, nil
}

func renderBinop(s *State, n *Node) (string, error) {
	if len(n.Kids) != 2 {
		return "", types.NewStructuralError("binary operator %q requires two operands", n.Op)
	}
	token, ok := s.r.cfg.Operators[n.Op]
	if !ok {
		return "", types.UnmappedOperatorError{Op: n.Op}
	}
	lhs, err := s.Render(n.Kids[0])
	if err != nil {
		return "", err
	}
	rhs, err := s.Render(n.Kids[1])
	if err != nil {
		return "", err
	}
	return lhs + " " + token + " " + rhs, nil
}

// renderIn handles both in and not_in. An empty value list short-circuits
// to the portable false predicate: `IN ()` is illegal in most dialects and
// an empty membership test is false anyway.
func renderIn(s *State, n *Node) (string, error) {
	if len(n.Kids) == 0 {
		return "", types.NewStructuralError("%s node requires a field expression", string(n.Tag))
	}
	if len(n.Kids) == 1 {
		return renderFalse(s, n)
	}

	field, err := s.Render(n.Kids[0])
	if err != nil {
		return "", err
	}
	values := make([]string, 0, len(n.Kids)-1)
	for _, kid := range n.Kids[1:] {
		rendered, err := s.Render(kid)
		if err != nil {
			return "", err
		}
		values = append(values, rendered)
	}

	var sql strings.Builder
	sql.WriteString(field)
	if n.Tag == TagNotIn {
		sql.WriteString(" NOT")
	}
	sql.WriteString(" IN (")
	sql.WriteString(strings.Join(values, ", "))
	sql.WriteString(")")
	return sql.String(), nil
}

// renderTrue and renderFalse emit portable neutral predicates usable where
// a dialect-independent tautology or contradiction is needed.
func renderTrue(_ *State, _ *Node) (string, error) {
	return "1 = 1", nil
}

func renderFalse(_ *State, _ *Node) (string, error) {
	return "0 = 1", nil
}
