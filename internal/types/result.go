package types

// Result contains the rendered SQL text and the bind values it references,
// in placeholder order.
type Result struct {
	SQL   string
	Binds []any
}
