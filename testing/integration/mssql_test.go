package integration

import (
	"database/sql"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mssql"

	mssqlrenderer "github.com/aqt-dev/aqt/pkg/mssql"
)

// MSSQLContainer wraps a testcontainers SQL Server instance. The go-mssqldb
// driver matches positional args to the @pN placeholders the dialect emits.
type MSSQLContainer struct {
	container *mssql.MSSQLServerContainer
	db        *sql.DB
	connStr   string
}

// Exec executes a SQL statement.
func (sc *MSSQLContainer) Exec(t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := sc.db.Exec(sql, args...)
	if err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
	}
}

// QueryRow executes a query and returns a single row.
func (sc *MSSQLContainer) QueryRow(t *testing.T, query string, args ...any) *sql.Row {
	t.Helper()
	return sc.db.QueryRow(query, args...)
}

func setupMSSQLSchema(t *testing.T, sc *MSSQLContainer) {
	t.Helper()

	sc.Exec(t, `
		IF OBJECT_ID('users', 'U') IS NULL
		CREATE TABLE users (
			id BIGINT IDENTITY(1,1) PRIMARY KEY,
			username NVARCHAR(255) NOT NULL,
			email NVARCHAR(255) NOT NULL,
			age INT,
			active BIT DEFAULT 1
		)
	`)
}

func cleanupMSSQLData(t *testing.T, sc *MSSQLContainer) {
	t.Helper()
	sc.Exec(t, `TRUNCATE TABLE users`)
}

func TestIntegration_MSSQL_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	sc := getMSSQLContainer(t)
	setupMSSQLSchema(t, sc)
	t.Cleanup(func() { cleanupMSSQLData(t, sc) })

	r := mssqlrenderer.New()

	insert, err := r.Render(map[string]any{
		"into":    []any{"name", "users"},
		"columns": []any{"list", []any{"name", "username"}, []any{"name", "email"}, []any{"name", "age"}},
		"values": []any{
			[]any{[]any{"value", "alice"}, []any{"value", "alice@example.com"}, []any{"value", 30}},
		},
	})
	if err != nil {
		t.Fatalf("Render insert failed: %v", err)
	}
	sc.Exec(t, insert.SQL, insert.Binds...)

	query, err := r.Render(map[string]any{
		"columns": []any{"list", []any{"name", "email"}},
		"from":    []any{"name", "users"},
		"where": []any{
			[]any{"binop", "=", []any{"name", "username"}, []any{"value", "alice"}},
		},
	})
	if err != nil {
		t.Fatalf("Render select failed: %v", err)
	}

	var email string
	if err := sc.QueryRow(t, query.SQL, query.Binds...).Scan(&email); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("email = %q, want %q", email, "alice@example.com")
	}
}

func TestIntegration_MSSQL_UpdateWithWhere(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	sc := getMSSQLContainer(t)
	setupMSSQLSchema(t, sc)
	t.Cleanup(func() { cleanupMSSQLData(t, sc) })

	sc.Exec(t, `
		INSERT INTO users (username, email, age) VALUES
		('alice', 'alice@example.com', 30),
		('bob', 'bob@example.com', 25)
	`)

	r := mssqlrenderer.New()
	update, err := r.Render(map[string]any{
		"table": []any{"name", "users"},
		"set":   map[string]any{"age": []any{"value", 26}},
		"where": []any{
			[]any{"binop", "=", []any{"name", "username"}, []any{"value", "bob"}},
		},
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	sc.Exec(t, update.SQL, update.Binds...)

	var age int
	row := sc.QueryRow(t, `SELECT age FROM users WHERE username = 'bob'`)
	if err := row.Scan(&age); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if age != 26 {
		t.Errorf("age = %d, want 26", age)
	}
}
