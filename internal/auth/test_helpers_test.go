package auth

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates an in-memory SQLite database with the auth schema applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE accounts (
			username      TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'Operator',
			enabled       INTEGER NOT NULL DEFAULT 1,
			builtin       INTEGER NOT NULL DEFAULT 0,
			created_at    TEXT NOT NULL
		) STRICT;

		CREATE TABLE sessions (
			id         TEXT PRIMARY KEY,
			username   TEXT NOT NULL REFERENCES accounts(username) ON DELETE CASCADE,
			token_hash TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		) STRICT;

		CREATE INDEX idx_sessions_username ON sessions(username);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("applying auth schema: %v", err)
	}

	return db
}

// testSecret is a signing secret for session token tests.
var testSecret = []byte("test-secret-key-at-least-32-chars!!!")

// seedTestAccount inserts an enabled account and returns it.
func seedTestAccount(t *testing.T, db *sql.DB, username, password string, role Role) *Account {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	repo := NewAccountRepository(db)
	account := &Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
	}
	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("creating test account %s: %v", username, err)
	}
	return account
}

// newTestService builds a Service over a fresh test database.
func newTestService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()

	db := testDB(t)
	svc := NewService(NewAccountRepository(db), NewSessionRepository(db), testSecret, nil)
	return svc, db
}
