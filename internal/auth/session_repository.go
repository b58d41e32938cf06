package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// sessionIDLength is the length of generated session ids.
const sessionIDLength = 16

// SessionRepository defines the interface for session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]Session, error)
	Delete(ctx context.Context, id string) error
}

// SQLiteSessionRepository implements SessionRepository using SQLite.
type SQLiteSessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite-backed session repository.
func NewSessionRepository(db *sql.DB) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{db: db}
}

// Create inserts a new session. The ID is generated if empty.
func (r *SQLiteSessionRepository) Create(ctx context.Context, session *Session) error {
	if session.ID == "" {
		session.ID = newSessionID()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	session.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, username, token_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		session.ID, session.Username, session.TokenHash, now,
	)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	return nil
}

// Get retrieves a session by its ID.
func (r *SQLiteSessionRepository) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	var createdAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, token_hash, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.Username, &s.TokenHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	return &s, nil
}

// List returns all sessions in id order, so collection members have a
// stable ordering.
func (r *SQLiteSessionRepository) List(ctx context.Context) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, token_hash, created_at FROM sessions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var createdAt string
		if err := rows.Scan(&s.ID, &s.Username, &s.TokenHash, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	if sessions == nil {
		sessions = []Session{}
	}
	return sessions, nil
}

// Delete removes a session by ID, invalidating its token.
func (r *SQLiteSessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// newSessionID generates a compact 16-character session id.
func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:sessionIDLength]
}
