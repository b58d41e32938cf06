package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Repository defines subscription persistence operations.
type Repository interface {
	// Create stores a new subscription, assigning a monotonic id.
	// Empty optional fields receive defaults before insert.
	Create(ctx context.Context, sub *Subscription) error

	// Get retrieves a subscription by id.
	Get(ctx context.Context, id int64) (*Subscription, error)

	// List returns all subscriptions ordered by id.
	List(ctx context.Context) ([]*Subscription, error)

	// Delete removes a subscription by id.
	Delete(ctx context.Context, id int64) error
}

// SQLiteRepository implements Repository backed by SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a subscription repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts the subscription and populates sub.ID with the
// autoincrement id. Ids are never reused, even after deletion.
func (r *SQLiteRepository) Create(ctx context.Context, sub *Subscription) error {
	if sub.Destination == "" {
		return ErrMissingDestination
	}
	if sub.EventType == "" {
		sub.EventType = DefaultEventType
	}
	if sub.Protocol == "" {
		sub.Protocol = DefaultProtocol
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (destination, event_type, context, protocol, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		sub.Destination, sub.EventType, sub.Context, sub.Protocol,
		sub.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating subscription: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading subscription id: %w", err)
	}
	sub.ID = id
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, destination, event_type, context, protocol, created_at
		FROM subscriptions WHERE id = ?`, id)

	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting subscription %d: %w", id, err)
	}
	return sub, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, destination, event_type, context, protocol, created_at
		FROM subscriptions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []*Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subscription %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting subscription %d: %w", id, err)
	}
	if affected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(s scanner) (*Subscription, error) {
	var sub Subscription
	var createdAt string
	if err := s.Scan(&sub.ID, &sub.Destination, &sub.EventType, &sub.Context,
		&sub.Protocol, &createdAt); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sub.CreatedAt = t
	}
	return &sub, nil
}
