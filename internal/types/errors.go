package types

import "fmt"

// StructuralError indicates a required clause is missing or has the wrong
// shape, such as a select without columns or a columns node not tagged list.
type StructuralError struct {
	Detail string
}

func (e StructuralError) Error() string {
	return "malformed query tree: " + e.Detail
}

// NewStructuralError creates a new structural error.
func NewStructuralError(format string, args ...any) error {
	return StructuralError{Detail: fmt.Sprintf(format, args...)}
}

// UnknownTagError indicates a dispatch miss on an operation-style tag.
type UnknownTagError struct {
	Tag Tag
}

func (e UnknownTagError) Error() string {
	return fmt.Sprintf("unrecognized clause %q", string(e.Tag))
}

// UnknownOperatorError indicates a dispatch miss on a bare-word tag that is
// not a known binary operator either.
type UnknownOperatorError struct {
	Op string
}

func (e UnknownOperatorError) Error() string {
	return fmt.Sprintf("unrecognized binary operator %q", e.Op)
}

// ConfigurationError indicates an invalid clause combination, such as a join
// carrying neither (or both) of ON and USING.
type ConfigurationError struct {
	Detail string
}

func (e ConfigurationError) Error() string {
	return "invalid configuration: " + e.Detail
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(format string, args ...any) error {
	return ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}

// UnmappedOperatorError indicates a binop operator word absent from the
// configured operator map.
type UnmappedOperatorError struct {
	Op string
}

func (e UnmappedOperatorError) Error() string {
	return fmt.Sprintf("unknown binary operator %q", e.Op)
}
