package aqt

import (
	"fmt"

	"github.com/zoobzio/dbml"
)

// Schema validates identifiers against a DBML project before they enter a
// query tree. It is an optional front door: the renderer itself accepts any
// tree, but names built through a Schema are guaranteed to exist in the
// database they describe.
type Schema struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables  map[string]*dbml.Table
	columns map[string]map[string]*dbml.Column // table -> column
}

// NewSchema builds a Schema from a DBML project.
func NewSchema(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string]*dbml.Table),
		columns: make(map[string]map[string]*dbml.Column),
	}
	for _, table := range project.Tables {
		s.tables[table.Name] = table
		s.columns[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			s.columns[table.Name][col.Name] = col
		}
	}
	return s, nil
}

// TryName validates segments against the schema and returns the array-form
// name node for them. Accepted shapes: (table), (column), (table, column),
// and either form with a trailing "*".
func (s *Schema) TryName(segments ...string) ([]any, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("name requires at least one segment")
	}

	check := segments
	if check[len(check)-1] == "*" {
		check = check[:len(check)-1]
	}

	switch len(check) {
	case 0:
		// Bare * selects everything; nothing to validate.
	case 1:
		if _, ok := s.tables[check[0]]; !ok && !s.columnExists(check[0]) {
			return nil, fmt.Errorf("%q is neither a table nor a column in schema %q", check[0], s.project.Name)
		}
	case 2:
		cols, ok := s.columns[check[0]]
		if !ok {
			return nil, fmt.Errorf("table %q not found in schema %q", check[0], s.project.Name)
		}
		if _, ok := cols[check[1]]; !ok {
			return nil, fmt.Errorf("column %q not found in table %q", check[1], check[0])
		}
	default:
		return nil, fmt.Errorf("name has %d segments; at most table.column is addressable", len(check))
	}

	return []any{"name", append([]string(nil), segments...)}, nil
}

// Name is TryName that panics on invalid segments, for statically known
// identifiers.
func (s *Schema) Name(segments ...string) []any {
	n, err := s.TryName(segments...)
	if err != nil {
		panic(err)
	}
	return n
}

// TryTable validates a table name and returns its name node.
func (s *Schema) TryTable(name string) ([]any, error) {
	if _, ok := s.tables[name]; !ok {
		return nil, fmt.Errorf("table %q not found in schema %q", name, s.project.Name)
	}
	return []any{"name", []string{name}}, nil
}

// Table is TryTable that panics on an unknown table.
func (s *Schema) Table(name string) []any {
	n, err := s.TryTable(name)
	if err != nil {
		panic(err)
	}
	return n
}

func (s *Schema) columnExists(name string) bool {
	for _, cols := range s.columns {
		if _, ok := cols[name]; ok {
			return true
		}
	}
	return false
}
