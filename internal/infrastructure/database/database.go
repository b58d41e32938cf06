package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	dirPermissions  = 0750
	filePermissions = 0600

	// msPerSecond converts the config's busy timeout to the driver's unit.
	msPerSecond = 1000

	// pingTimeout bounds the connectivity check inside Open.
	pingTimeout = 5 * time.Second

	connMaxIdleTime = 30 * time.Minute
)

// DB wraps sql.DB with migrations, a health check and lifecycle
// management for the simulator's management store.
type DB struct {
	*sql.DB
	path string
}

// Config mirrors the database section of config.yaml.
type Config struct {
	// Path is the SQLite file path, or ":memory:" for a store that
	// lives only as long as the process. A parent directory is created
	// when missing.
	Path string

	// WALMode enables write-ahead logging on file-backed databases.
	// It has no effect in-memory.
	WALMode bool

	// BusyTimeout is the lock wait in seconds before the driver gives
	// up with "database is locked".
	BusyTimeout int
}

// Open connects to the management store and verifies it responds.
//
// In-memory databases use a shared cache so the schema stays visible
// if the pool ever opens a second connection, though the pool is
// capped at one connection either way (SQLite allows one writer).
// File-backed databases get their directory created and the file
// chmodded to owner-only.
//
// Parameters:
//   - ctx: Bounds the verification ping together with pingTimeout
//   - cfg: Database configuration
//
// Returns:
//   - *DB: Connected store
//   - error: If the open, pragma setup or ping fails
func Open(ctx context.Context, cfg Config) (*DB, error) {
	inMemory := cfg.Path == ":memory:"

	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), dirPermissions); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	// Pragmas ride on the DSN, see github.com/mattn/go-sqlite3#connection-string.
	path := cfg.Path
	if inMemory {
		path = ":memory:?cache=shared&"
	} else {
		path += "?"
	}
	dsn := fmt.Sprintf("file:%s_busy_timeout=%d&_foreign_keys=on",
		path, cfg.BusyTimeout*msPerSecond)
	if cfg.WALMode && !inMemory {
		dsn += "&_journal_mode=WAL&_synchronous=NORMAL"
	}

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	db := &DB{DB: sqlDB, path: cfg.Path}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		sqlDB.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	if !inMemory {
		_ = os.Chmod(cfg.Path, filePermissions) //nolint:errcheck // File may not exist until first write
	}

	return db, nil
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	if db.DB == nil {
		return nil
	}
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Path returns the configured database path.
func (db *DB) Path() string {
	return db.path
}

// HealthCheck runs a trivial query to confirm the store is reachable.
func (db *DB) HealthCheck(ctx context.Context) error {
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Stats exposes connection pool statistics for debugging.
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}

// ExecContext wraps sql.DB.ExecContext with consistent error wrapping.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return result, nil
}

// QueryRowContext wraps sql.DB.QueryRowContext. Scan on the returned
// row surfaces any error.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, query, args...)
}

// BeginTx starts a transaction. Use one whenever a change spans more
// than a single statement.
//
//	tx, err := db.BeginTx(ctx, nil)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback() // No-op if committed
//	...
//	return tx.Commit()
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	return tx, nil
}
