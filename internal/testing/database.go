// Package testing holds shared test helpers.
package testing

import (
	"database/sql"
	"testing"

	"github.com/teranos/qntx-braket/db"
)

// CreateTestDB returns an in-memory SQLite database with the catalog schema
// applied. It is closed via t.Cleanup.
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// Each pooled connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn, nil); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}
