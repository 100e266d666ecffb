// internal/newsletter/store.go
//
// Subscriber persistence.
//
// Context
//   Uniqueness by email is enforced by the uq_newsletter_subscriber_email
//   index.  GetOrCreate issues INSERT IGNORE and then reads the row back,
//   so concurrent first subscribes for one address collapse to a single
//   row and neither caller sees an error.  Activate is conditional on the
//   token still being stored, which makes a second redemption of the same
//   link lose cleanly.
//
//------------------------------------------------------------------------------

package newsletter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned by ByToken when no row carries the token.
var ErrNotFound = errors.New("subscriber not found")

// Store is the persistence contract used by Service.
type Store interface {
	// GetOrCreate returns the row for email, inserting defaults when absent.
	GetOrCreate(ctx context.Context, defaults Subscriber) (sub *Subscriber, created bool, err error)
	// Reissue stores a fresh token and the caller metadata.
	Reissue(ctx context.Context, sub *Subscriber) error
	// ByToken finds the subscriber holding token.
	ByToken(ctx context.Context, token string) (*Subscriber, error)
	// Activate confirms id if it still holds token.  It reports false when
	// the token was consumed concurrently.
	Activate(ctx context.Context, id uint64, token string, at time.Time) (bool, error)
}

// SQLStore is the MySQL Store.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps db.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

const selectColumns = `
    SELECT id, email, created_at, ip_address, user_agent, source,
           is_active, confirmed_at, confirm_token, confirm_sent_at
    FROM   newsletter_subscriber`

func (s *SQLStore) GetOrCreate(ctx context.Context, d Subscriber) (*Subscriber, bool, error) {
	const ins = `
        INSERT IGNORE INTO newsletter_subscriber
               (email, created_at, ip_address, user_agent, source, is_active)
        VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, ins, d.Email, d.CreatedAt, d.IP, d.UserAgent, d.Source, d.IsActive)
	if err != nil {
		return nil, false, fmt.Errorf("insert subscriber: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("insert subscriber: %w", err)
	}

	var sub Subscriber
	if err := s.db.GetContext(ctx, &sub, selectColumns+` WHERE email = ?`, d.Email); err != nil {
		return nil, false, fmt.Errorf("load subscriber: %w", err)
	}
	return &sub, n == 1, nil
}

func (s *SQLStore) Reissue(ctx context.Context, sub *Subscriber) error {
	const q = `
        UPDATE newsletter_subscriber
        SET    confirm_token = ?, confirm_sent_at = ?, ip_address = ?, user_agent = ?
        WHERE  id = ?`
	if _, err := s.db.ExecContext(ctx, q, sub.ConfirmToken, sub.ConfirmSentAt, sub.IP, sub.UserAgent, sub.ID); err != nil {
		return fmt.Errorf("reissue token for %d: %w", sub.ID, err)
	}
	return nil
}

func (s *SQLStore) ByToken(ctx context.Context, token string) (*Subscriber, error) {
	var sub Subscriber
	err := s.db.GetContext(ctx, &sub, selectColumns+` WHERE confirm_token = ? LIMIT 1`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("subscriber by token: %w", err)
	}
	return &sub, nil
}

func (s *SQLStore) Activate(ctx context.Context, id uint64, token string, at time.Time) (bool, error) {
	const q = `
        UPDATE newsletter_subscriber
        SET    is_active = TRUE, confirmed_at = ?, confirm_token = NULL
        WHERE  id = ? AND confirm_token = ?`
	res, err := s.db.ExecContext(ctx, q, at, id, token)
	if err != nil {
		return false, fmt.Errorf("activate subscriber %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("activate subscriber %d: %w", id, err)
	}
	return n == 1, nil
}
