package types

// Tag identifies the operation a node represents. Array-form input carries
// the tag as its first element; hash-form input acquires one during
// normalization.
type Tag string

const (
	TagSelect Tag = "select"
	TagInsert Tag = "insert"
	TagUpdate Tag = "update"
	TagDelete Tag = "delete"
	TagWhere  Tag = "where"
	TagJoin   Tag = "join"
	TagName   Tag = "name"
	TagValue  Tag = "value"
	TagList   Tag = "list"
	TagAlias  Tag = "alias"
	TagIn     Tag = "in"
	TagNotIn  Tag = "not_in"
	TagTrue   Tag = "true"
	TagFalse  Tag = "false"
	TagBinop  Tag = "binop"
	TagAnd    Tag = "and"
	TagOr     Tag = "or"
	TagAsc    Tag = "asc"
	TagDesc   Tag = "desc"
)

// reserved is the set of operation-style tags the grammar defines. A tag in
// this set that misses the dispatch table is a malformed-structure problem;
// any other bare word is presumed to be a binary operator name.
var reserved = map[Tag]bool{
	TagSelect: true,
	TagInsert: true,
	TagUpdate: true,
	TagDelete: true,
	TagWhere:  true,
	TagJoin:   true,
	TagName:   true,
	TagValue:  true,
	TagList:   true,
	TagAlias:  true,
	TagIn:     true,
	TagNotIn:  true,
	TagTrue:   true,
	TagFalse:  true,
	TagBinop:  true,
	TagAnd:    true,
	TagOr:     true,
	TagAsc:    true,
	TagDesc:   true,
}

// IsReserved reports whether tag is one of the grammar's operation tags.
func IsReserved(tag Tag) bool {
	return reserved[tag]
}

// IsBoolGroup reports whether tag opens a boolean group in a WHERE sequence.
func IsBoolGroup(tag Tag) bool {
	return tag == TagAnd || tag == TagOr
}

// OrderItem is one ORDER BY entry: an expression with an optional explicit
// direction (TagAsc or TagDesc; empty means none was given).
type OrderItem struct {
	Expr *Node
	Dir  Tag
}

// SetItem is one column assignment in an UPDATE statement.
type SetItem struct {
	Column string
	Expr   *Node
}

// Node is the canonical tagged variant every input shape normalizes to.
// Only the fields relevant to a node's Tag are populated; the rest stay
// zero. Nodes are immutable after normalization and the renderer never
// writes to them.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type Node struct {
	Tag Tag

	// Positional operands: list children, binop lhs/rhs, in field+values,
	// where sub-clauses.
	Kids []*Node

	// Identifier path (TagName).
	Segments []string

	// Literal payload (TagValue). May be nil: a normalized value node is
	// identified by its tag, not its payload.
	Literal any

	// Operator word (TagBinop, or a bare-word clause tag kept verbatim).
	Op string

	// Alias text, emitted verbatim (TagAlias).
	Alias string

	// Statement clauses (TagSelect, TagInsert, TagUpdate, TagDelete).
	Columns *Node
	From    *Node
	Join    *Node
	Where   *Node
	GroupBy *Node
	OrderBy []OrderItem
	Limit   *int
	Offset  *int
	Rows    [][]*Node
	Set     []SetItem

	// Join clauses (TagJoin): From holds the tablespec, plus exactly one
	// of On / Using.
	On    *Node
	Using *Node
}
