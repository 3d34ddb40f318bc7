package aqt

import (
	"strings"

	"github.com/aqt-dev/aqt/internal/types"
)

// RenderWhere flattens a boolean-expression tree into infix text with
// minimal parentheses. Grouping decides textual parentheses only — AND and
// OR stay associative — but a wrong decision silently changes the query's
// meaning, so the rule is applied in exactly one direction: a nested group
// is wrapped iff its priority is strictly greater than its parent's.
func (s *State) RenderWhere(n *Node) (string, error) {
	group, err := types.NormalizeWhere(n)
	if err != nil {
		return "", err
	}
	return s.renderGroup(group)
}

func (s *State) renderGroup(group *Node) (string, error) {
	if len(group.Kids) == 0 {
		return "", types.NewStructuralError("empty boolean group")
	}

	parent := s.r.cfg.Priorities[group.Tag]
	frags := make([]string, 0, len(group.Kids))
	for _, kid := range group.Kids {
		if types.IsBoolGroup(kid.Tag) {
			inner, err := s.renderGroup(kid)
			if err != nil {
				return "", err
			}
			if s.r.cfg.Priorities[kid.Tag] > parent {
				inner = "(" + inner + ")"
			}
			frags = append(frags, inner)
			continue
		}
		frag, err := dispatch(s, s.r.where, kid)
		if err != nil {
			return "", err
		}
		frags = append(frags, frag)
	}

	sep := " AND "
	if group.Tag == TagOr {
		sep = " OR "
	}
	return strings.Join(frags, sep), nil
}
