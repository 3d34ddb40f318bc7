package types

import "sort"

// Normalize resolves the dual-shape input grammar into the canonical Node
// form. Array-form input is a []any whose first element is the operation
// tag; hash-form input is a map[string]any whose keys identify the clause.
// A hash without an explicit discriminant acquires one from its keys: a
// mapping with "columns" and "from" is a select, a mapping with "tablespec"
// is a join, and so on.
//
// Normalize never mutates its input and performs no rendering; it only
// checks shape. Tag-level validity is left to the dispatch table so that
// layered tables can extend the grammar.
func Normalize(v any) (*Node, error) {
	switch val := v.(type) {
	case *Node:
		if val == nil {
			return nil, NewStructuralError("nil node")
		}
		return val, nil
	case []any:
		return normalizeArray(val)
	case map[string]any:
		return normalizeHash(val)
	case nil:
		return nil, NewStructuralError("nil node")
	default:
		return nil, NewStructuralError("expected array-form or hash-form node, got %T", v)
	}
}

// tagOf extracts a tag from an array-form head element.
func tagOf(v any) (Tag, bool) {
	switch t := v.(type) {
	case string:
		return Tag(t), true
	case Tag:
		return t, true
	default:
		return "", false
	}
}

func normalizeArray(seq []any) (*Node, error) {
	if len(seq) == 0 {
		return nil, NewStructuralError("empty array-form node")
	}
	tag, ok := tagOf(seq[0])
	if !ok {
		return nil, NewStructuralError("array-form node must start with a tag, got %T", seq[0])
	}
	rest := seq[1:]

	switch tag {
	case TagName:
		return normalizeName(rest)
	case TagValue:
		if len(rest) != 1 {
			return nil, NewStructuralError("value node takes exactly one literal, got %d operands", len(rest))
		}
		return &Node{Tag: TagValue, Literal: rest[0]}, nil
	case TagList:
		kids, err := normalizeAll(rest)
		if err != nil {
			return nil, err
		}
		return &Node{Tag: TagList, Kids: kids}, nil
	case TagAlias:
		if len(rest) != 2 {
			return nil, NewStructuralError("alias node takes an expression and an alias string, got %d operands", len(rest))
		}
		expr, err := Normalize(rest[0])
		if err != nil {
			return nil, err
		}
		as, ok := rest[1].(string)
		if !ok {
			return nil, NewStructuralError("alias must be a string, got %T", rest[1])
		}
		return &Node{Tag: TagAlias, Kids: []*Node{expr}, Alias: as}, nil
	case TagIn, TagNotIn:
		if len(rest) < 1 {
			return nil, NewStructuralError("%s node requires a field expression", string(tag))
		}
		kids, err := normalizeAll(rest)
		if err != nil {
			return nil, err
		}
		return &Node{Tag: tag, Kids: kids}, nil
	case TagTrue, TagFalse:
		if len(rest) != 0 {
			return nil, NewStructuralError("%s node takes no operands", string(tag))
		}
		return &Node{Tag: tag}, nil
	case TagBinop:
		if len(rest) != 3 {
			return nil, NewStructuralError("binop node takes an operator and two operands, got %d operands", len(rest))
		}
		op, ok := rest[0].(string)
		if !ok {
			return nil, NewStructuralError("binop operator must be a string, got %T", rest[0])
		}
		lhs, err := Normalize(rest[1])
		if err != nil {
			return nil, err
		}
		rhs, err := Normalize(rest[2])
		if err != nil {
			return nil, err
		}
		return &Node{Tag: TagBinop, Op: op, Kids: []*Node{lhs, rhs}}, nil
	case TagAnd, TagOr:
		return NormalizeGroup(seq)
	case TagWhere:
		group, err := NormalizeGroup(rest)
		if err != nil {
			return nil, err
		}
		return &Node{Tag: TagWhere, Where: group}, nil
	case TagJoin:
		return normalizeTaggedHash(tag, rest, normalizeJoin)
	case TagSelect:
		return normalizeTaggedHash(tag, rest, normalizeSelect)
	case TagInsert:
		return normalizeTaggedHash(tag, rest, normalizeInsert)
	case TagUpdate:
		return normalizeTaggedHash(tag, rest, normalizeUpdate)
	case TagDelete:
		return normalizeTaggedHash(tag, rest, normalizeDelete)
	default:
		// Reserved tags without their own normalization (and any tag a
		// layered table might register) keep their operands as-is; the
		// dispatch site classifies a miss.
		if IsReserved(tag) {
			kids, err := normalizeAll(rest)
			if err != nil {
				return nil, err
			}
			return &Node{Tag: tag, Kids: kids}, nil
		}
		// A bare word is kept verbatim and presumed to name a binary
		// operator.
		if len(rest) != 2 {
			return nil, NewStructuralError("operator %q takes two operands, got %d", string(tag), len(rest))
		}
		kids, err := normalizeAll(rest)
		if err != nil {
			return nil, err
		}
		return &Node{Tag: tag, Op: string(tag), Kids: kids}, nil
	}
}

func normalizeTaggedHash(tag Tag, rest []any, fn func(map[string]any) (*Node, error)) (*Node, error) {
	if len(rest) != 1 {
		return nil, NewStructuralError("%s node takes a single clause mapping, got %d operands", string(tag), len(rest))
	}
	hash, ok := rest[0].(map[string]any)
	if !ok {
		return nil, NewStructuralError("%s node requires a clause mapping, got %T", string(tag), rest[0])
	}
	return fn(hash)
}

func normalizeAll(items []any) ([]*Node, error) {
	kids := make([]*Node, 0, len(items))
	for _, item := range items {
		n, err := Normalize(item)
		if err != nil {
			return nil, err
		}
		kids = append(kids, n)
	}
	return kids, nil
}

func normalizeName(rest []any) (*Node, error) {
	if len(rest) != 1 {
		return nil, NewStructuralError("name node takes a single segment sequence, got %d operands", len(rest))
	}
	var segs []string
	switch s := rest[0].(type) {
	case []string:
		segs = s
	case []any:
		segs = make([]string, 0, len(s))
		for _, seg := range s {
			str, ok := seg.(string)
			if !ok {
				return nil, NewStructuralError("name segment must be a string, got %T", seg)
			}
			segs = append(segs, str)
		}
	case string:
		segs = []string{s}
	default:
		return nil, NewStructuralError("name segments must be a string sequence, got %T", rest[0])
	}
	if len(segs) == 0 {
		return nil, NewStructuralError("name node requires at least one segment")
	}
	// `*` is only meaningful in the final position; anywhere else it can
	// never quote into a valid identifier.
	for i, seg := range segs[:len(segs)-1] {
		if seg == "*" {
			return nil, NewStructuralError("name segment %d is a non-trailing *", i)
		}
	}
	return &Node{Tag: TagName, Segments: segs}, nil
}

// NormalizeGroup resolves a WHERE-shaped sequence into a boolean-group
// node. The sequence may open with a group tag ("and"/"or") that sets the
// group operator; without one the group defaults to "and". If, after the
// optional tag, the sequence does not hold nested sub-clauses but is itself
// one flat clause, the remainder is wrapped as that group's single clause.
func NormalizeGroup(seq []any) (*Node, error) {
	op := TagAnd
	rest := seq
	if len(rest) > 0 {
		if t, ok := tagOf(rest[0]); ok && IsBoolGroup(t) {
			op = t
			rest = rest[1:]
		}
	}
	if len(rest) == 0 {
		return nil, NewStructuralError("empty boolean group")
	}

	// Degenerate case: a flat clause such as ("=", lhs, rhs) rather than a
	// sequence of clauses.
	switch rest[0].(type) {
	case []any, map[string]any, *Node:
		// A genuine clause list.
	default:
		clause, err := Normalize(append([]any(nil), rest...))
		if err != nil {
			return nil, err
		}
		return &Node{Tag: op, Kids: []*Node{clause}}, nil
	}

	kids := make([]*Node, 0, len(rest))
	for _, item := range rest {
		if sub, ok := item.([]any); ok && len(sub) > 0 {
			if t, ok := tagOf(sub[0]); ok && IsBoolGroup(t) {
				group, err := NormalizeGroup(sub)
				if err != nil {
					return nil, err
				}
				kids = append(kids, group)
				continue
			}
		}
		n, err := Normalize(item)
		if err != nil {
			return nil, err
		}
		kids = append(kids, n)
	}
	return &Node{Tag: op, Kids: kids}, nil
}

// NormalizeWhere accepts anything a where clause may be given as: a raw
// sequence, an already-grouped node, or a single clause.
func NormalizeWhere(v any) (*Node, error) {
	switch val := v.(type) {
	case []any:
		return NormalizeGroup(val)
	case *Node:
		if val != nil && IsBoolGroup(val.Tag) {
			return val, nil
		}
	}
	n, err := Normalize(v)
	if err != nil {
		return nil, err
	}
	if IsBoolGroup(n.Tag) {
		return n, nil
	}
	return &Node{Tag: TagAnd, Kids: []*Node{n}}, nil
}

func normalizeHash(hash map[string]any) (*Node, error) {
	switch {
	case hasKey(hash, "columns") && hasKey(hash, "from"):
		return normalizeSelect(hash)
	case hasKey(hash, "tablespec"):
		return normalizeJoin(hash)
	case hasKey(hash, "into"):
		return normalizeInsert(hash)
	case hasKey(hash, "set"):
		return normalizeUpdate(hash)
	case hasKey(hash, "from"):
		return normalizeDelete(hash)
	default:
		return nil, NewStructuralError("hash-form node has no recognizable discriminant key")
	}
}

func hasKey(hash map[string]any, key string) bool {
	_, ok := hash[key]
	return ok
}

func normalizeSelect(hash map[string]any) (*Node, error) {
	n := &Node{Tag: TagSelect}

	columns, ok := hash["columns"]
	if !ok {
		return nil, NewStructuralError("select requires a columns clause")
	}
	cols, err := requireArrayForm("columns", columns)
	if err != nil {
		return nil, err
	}
	if cols.Tag != TagList {
		return nil, NewStructuralError("select columns must be tagged list, got %q", string(cols.Tag))
	}
	n.Columns = cols

	from, ok := hash["from"]
	if !ok {
		return nil, NewStructuralError("select requires a from clause")
	}
	n.From, err = requireArrayForm("from", from)
	if err != nil {
		return nil, err
	}

	if join, ok := hash["join"]; ok {
		n.Join, err = normalizeJoinValue(join)
		if err != nil {
			return nil, err
		}
	}

	if where, ok := hash["where"]; ok {
		n.Where, err = NormalizeWhere(where)
		if err != nil {
			return nil, err
		}
	}

	if groupBy, ok := hash["group_by"]; ok {
		g, err := Normalize(groupBy)
		if err != nil {
			return nil, err
		}
		if g.Tag != TagList {
			g = &Node{Tag: TagList, Kids: []*Node{g}}
		}
		n.GroupBy = g
	}

	if orderBy, ok := hash["order_by"]; ok {
		n.OrderBy, err = normalizeOrderBy(orderBy)
		if err != nil {
			return nil, err
		}
	}

	if limit, ok := hash["limit"]; ok {
		n.Limit, err = requireInt("limit", limit)
		if err != nil {
			return nil, err
		}
	}
	if offset, ok := hash["offset"]; ok {
		n.Offset, err = requireInt("offset", offset)
		if err != nil {
			return nil, err
		}
	}

	return n, nil
}

// requireArrayForm enforces the array-form requirement on select's columns
// and from clauses. An already-normalized node passes: it can only have come
// from a well-formed shape.
func requireArrayForm(key string, v any) (*Node, error) {
	switch v.(type) {
	case []any, *Node:
		return Normalize(v)
	default:
		return nil, NewStructuralError("select %s must be array-form, got %T", key, v)
	}
}

func requireInt(key string, v any) (*int, error) {
	switch i := v.(type) {
	case int:
		return &i, nil
	case int64:
		n := int(i)
		return &n, nil
	case float64:
		n := int(i)
		return &n, nil
	default:
		return nil, NewStructuralError("%s must be an integer, got %T", key, v)
	}
}

// normalizeJoinValue coerces a select's join clause: a bare mapping becomes
// a join node; array-form join nodes pass through Normalize.
func normalizeJoinValue(v any) (*Node, error) {
	switch val := v.(type) {
	case map[string]any:
		return normalizeJoin(val)
	default:
		n, err := Normalize(v)
		if err != nil {
			return nil, err
		}
		if n.Tag != TagJoin {
			return nil, NewStructuralError("join clause must be a join node, got %q", string(n.Tag))
		}
		return n, nil
	}
}

func normalizeJoin(hash map[string]any) (*Node, error) {
	n := &Node{Tag: TagJoin}

	tablespec, ok := hash["tablespec"]
	if !ok {
		return nil, NewStructuralError("join requires a tablespec clause")
	}
	var err error
	n.From, err = Normalize(tablespec)
	if err != nil {
		return nil, err
	}

	on, hasOn := hash["on"]
	using, hasUsing := hash["using"]
	switch {
	case hasOn && hasUsing:
		return nil, NewConfigurationError("join with both on and using is ambiguous")
	case hasOn:
		n.On, err = NormalizeWhere(on)
		if err != nil {
			return nil, err
		}
	case hasUsing:
		n.Using, err = Normalize(using)
		if err != nil {
			return nil, err
		}
	default:
		return nil, NewConfigurationError("join requires one of on or using")
	}

	return n, nil
}

func normalizeOrderBy(v any) ([]OrderItem, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, NewStructuralError("order_by must be a sequence, got %T", v)
	}
	items := make([]OrderItem, 0, len(seq))
	for _, item := range seq {
		if pair, ok := item.([]any); ok && len(pair) == 2 {
			if t, ok := tagOf(pair[0]); ok && (t == TagAsc || t == TagDesc) {
				expr, err := Normalize(pair[1])
				if err != nil {
					return nil, err
				}
				items = append(items, OrderItem{Expr: expr, Dir: t})
				continue
			}
		}
		expr, err := Normalize(item)
		if err != nil {
			return nil, err
		}
		items = append(items, OrderItem{Expr: expr})
	}
	return items, nil
}

func normalizeInsert(hash map[string]any) (*Node, error) {
	n := &Node{Tag: TagInsert}

	into, ok := hash["into"]
	if !ok {
		return nil, NewStructuralError("insert requires an into clause")
	}
	var err error
	n.From, err = Normalize(into)
	if err != nil {
		return nil, err
	}

	columns, ok := hash["columns"]
	if !ok {
		return nil, NewStructuralError("insert requires a columns clause")
	}
	cols, err := Normalize(columns)
	if err != nil {
		return nil, err
	}
	if cols.Tag != TagList {
		return nil, NewStructuralError("insert columns must be tagged list, got %q", string(cols.Tag))
	}
	n.Columns = cols

	values, ok := hash["values"]
	if !ok {
		return nil, NewStructuralError("insert requires a values clause")
	}
	rows, ok := values.([]any)
	if !ok || len(rows) == 0 {
		return nil, NewStructuralError("insert values must be a non-empty sequence of rows")
	}
	n.Rows = make([][]*Node, 0, len(rows))
	for i, row := range rows {
		cells, ok := row.([]any)
		if !ok {
			return nil, NewStructuralError("insert row %d must be a sequence, got %T", i, row)
		}
		if len(cells) != len(cols.Kids) {
			return nil, NewStructuralError("insert row %d has %d values for %d columns", i, len(cells), len(cols.Kids))
		}
		exprs, err := normalizeAll(cells)
		if err != nil {
			return nil, err
		}
		n.Rows = append(n.Rows, exprs)
	}

	return n, nil
}

func normalizeUpdate(hash map[string]any) (*Node, error) {
	n := &Node{Tag: TagUpdate}

	table, ok := hash["table"]
	if !ok {
		return nil, NewStructuralError("update requires a table clause")
	}
	var err error
	n.From, err = Normalize(table)
	if err != nil {
		return nil, err
	}

	set, ok := hash["set"]
	if !ok {
		return nil, NewStructuralError("update requires a set clause")
	}
	assignments, ok := set.(map[string]any)
	if !ok || len(assignments) == 0 {
		return nil, NewStructuralError("update set must be a non-empty column mapping")
	}
	n.Set = make([]SetItem, 0, len(assignments))
	for column, expr := range assignments {
		e, err := Normalize(expr)
		if err != nil {
			return nil, err
		}
		n.Set = append(n.Set, SetItem{Column: column, Expr: e})
	}
	sortSetItems(n.Set)

	if where, ok := hash["where"]; ok {
		n.Where, err = NormalizeWhere(where)
		if err != nil {
			return nil, err
		}
	}

	return n, nil
}

func normalizeDelete(hash map[string]any) (*Node, error) {
	n := &Node{Tag: TagDelete}

	from, ok := hash["from"]
	if !ok {
		return nil, NewStructuralError("delete requires a from clause")
	}
	var err error
	n.From, err = Normalize(from)
	if err != nil {
		return nil, err
	}

	if where, ok := hash["where"]; ok {
		n.Where, err = NormalizeWhere(where)
		if err != nil {
			return nil, err
		}
	}

	return n, nil
}

// sortSetItems orders assignments by column name for deterministic output.
func sortSetItems(items []SetItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Column < items[j].Column
	})
}
