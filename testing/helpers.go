// Package testing provides test utilities for aqt.
package testing

import (
	"testing"

	"github.com/aqt-dev/aqt"
	"github.com/zoobzio/dbml"
)

// TestProject returns a DBML project with users, posts and orders tables,
// enough surface for schema-validated query tests.
func TestProject() *dbml.Project {
	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("views", "int"))
	project.AddTable(posts)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	return project
}

// TestSchema creates a Schema over TestProject.
func TestSchema(t *testing.T) *aqt.Schema {
	t.Helper()

	schema, err := aqt.NewSchema(TestProject())
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return schema
}
