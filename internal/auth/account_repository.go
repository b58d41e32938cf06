package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	Get(ctx context.Context, username string) (*Account, error)
	List(ctx context.Context) ([]Account, error)
	Delete(ctx context.Context, username string) error
	Count(ctx context.Context) (int, error)
}

// SQLiteAccountRepository implements AccountRepository using SQLite.
type SQLiteAccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new SQLite-backed account repository.
func NewAccountRepository(db *sql.DB) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{db: db}
}

// Create inserts a new account. The username is the primary key;
// inserting a duplicate returns ErrAccountExists.
func (r *SQLiteAccountRepository) Create(ctx context.Context, account *Account) error {
	now := time.Now().UTC().Format(time.RFC3339)
	account.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (username, password_hash, role, enabled, builtin, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		account.Username, account.PasswordHash, string(account.Role),
		boolToInt(account.Enabled), boolToInt(account.Builtin), now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAccountExists
		}
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

// Get retrieves an account by username.
func (r *SQLiteAccountRepository) Get(ctx context.Context, username string) (*Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT username, password_hash, role, enabled, builtin, created_at
		 FROM accounts WHERE username = ?`, username)
	return scanAccount(row)
}

// List returns all accounts in username order, so collection members
// have a stable ordering.
func (r *SQLiteAccountRepository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT username, password_hash, role, enabled, builtin, created_at
		 FROM accounts ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	if accounts == nil {
		accounts = []Account{}
	}
	return accounts, nil
}

// Delete removes an account. Sessions belonging to the account go with
// it through the foreign key cascade.
func (r *SQLiteAccountRepository) Delete(ctx context.Context, username string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM accounts WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Count returns the total number of accounts.
func (r *SQLiteAccountRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting accounts: %w", err)
	}
	return count, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanAccount scans an account from any scanner (Row or Rows).
func scanAccount(s scanner) (*Account, error) {
	var a Account
	var role string
	var enabled, builtin int
	var createdAt string

	err := s.Scan(&a.Username, &a.PasswordHash, &role, &enabled, &builtin, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("scanning account: %w", err)
	}

	a.Role = Role(role)
	a.Enabled = enabled != 0
	a.Builtin = builtin != 0
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled

	return &a, nil
}

// Helper functions.

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "unique constraint"))
}
