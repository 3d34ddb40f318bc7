package integration

import (
	"database/sql"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mariadb"

	mariarenderer "github.com/aqt-dev/aqt/pkg/mariadb"
)

// MariaDBContainer wraps a testcontainers MariaDB instance. The go-sql-driver
// mysql driver serves both the MySQL and MariaDB dialects.
type MariaDBContainer struct {
	container *mariadb.MariaDBContainer
	db        *sql.DB
	connStr   string
}

// Exec executes a SQL statement.
func (mc *MariaDBContainer) Exec(t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := mc.db.Exec(sql, args...)
	if err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
	}
}

// QueryRow executes a query and returns a single row.
func (mc *MariaDBContainer) QueryRow(t *testing.T, query string, args ...any) *sql.Row {
	t.Helper()
	return mc.db.QueryRow(query, args...)
}

// Query executes a query and returns rows.
func (mc *MariaDBContainer) Query(t *testing.T, query string, args ...any) *sql.Rows {
	t.Helper()
	rows, err := mc.db.Query(query, args...)
	if err != nil {
		t.Fatalf("Failed to execute query: %v\nSQL: %s", err, query)
	}
	return rows
}

func setupMariaDBSchema(t *testing.T, mc *MariaDBContainer) {
	t.Helper()

	mc.Exec(t, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			age INT,
			active BOOLEAN DEFAULT true
		)
	`)
}

func cleanupMariaDBData(t *testing.T, mc *MariaDBContainer) {
	t.Helper()
	mc.Exec(t, `TRUNCATE TABLE users`)
}

func TestIntegration_MariaDB_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	mc := getMariaDBContainer(t)
	setupMariaDBSchema(t, mc)
	t.Cleanup(func() { cleanupMariaDBData(t, mc) })

	r := mariarenderer.New()

	insert, err := r.Render(map[string]any{
		"into":    []any{"name", "users"},
		"columns": []any{"list", []any{"name", "username"}, []any{"name", "email"}, []any{"name", "age"}},
		"values": []any{
			[]any{[]any{"value", "alice"}, []any{"value", "alice@example.com"}, []any{"value", 30}},
			[]any{[]any{"value", "bob"}, []any{"value", "bob@example.com"}, []any{"value", 25}},
		},
	})
	if err != nil {
		t.Fatalf("Render insert failed: %v", err)
	}
	mc.Exec(t, insert.SQL, insert.Binds...)

	query, err := r.Render(map[string]any{
		"columns": []any{"list", []any{"name", "username"}},
		"from":    []any{"name", "users"},
		"where": []any{
			[]any{"binop", ">", []any{"name", "age"}, []any{"value", 27}},
		},
	})
	if err != nil {
		t.Fatalf("Render select failed: %v", err)
	}

	var username string
	if err := mc.QueryRow(t, query.SQL, query.Binds...).Scan(&username); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if username != "alice" {
		t.Errorf("username = %q, want %q", username, "alice")
	}
}

func TestIntegration_MariaDB_InPredicate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	mc := getMariaDBContainer(t)
	setupMariaDBSchema(t, mc)
	t.Cleanup(func() { cleanupMariaDBData(t, mc) })

	mc.Exec(t, `
		INSERT INTO users (username, email, age) VALUES
		('alice', 'alice@example.com', 30),
		('bob', 'bob@example.com', 25),
		('charlie', 'charlie@example.com', 35)
	`)

	r := mariarenderer.New()
	query, err := r.Render(map[string]any{
		"columns": []any{"list", []any{"name", "username"}},
		"from":    []any{"name", "users"},
		"where": []any{
			[]any{"in", []any{"name", "username"}, []any{"value", "alice"}, []any{"value", "charlie"}},
		},
		"order_by": []any{[]any{"asc", []any{"name", "username"}}},
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	rows := mc.Query(t, query.SQL, query.Binds...)
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		usernames = append(usernames, u)
	}
	if len(usernames) != 2 || usernames[0] != "alice" || usernames[1] != "charlie" {
		t.Errorf("usernames = %v, want [alice charlie]", usernames)
	}
}
