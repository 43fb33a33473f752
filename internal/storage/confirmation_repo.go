package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ConfirmationRepo records the days on which the all-complete confirmation
// was issued, per user.
type ConfirmationRepo struct {
	db *sql.DB
}

func NewConfirmationRepo(db *sql.DB) *ConfirmationRepo {
	return &ConfirmationRepo{db: db}
}

// Claim records an attempt for (userID, day). It returns false when an
// attempt for that day already exists.
func (r *ConfirmationRepo) Claim(ctx context.Context, userID, day string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO confirmations (user_id, day, attempted_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id, day) DO NOTHING
	`, userID, day, at.UTC())
	if err != nil {
		return false, fmt.Errorf("confirmation claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("confirmation rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *ConfirmationRepo) MarkConfirmed(ctx context.Context, userID, day string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE confirmations SET confirmed = 1 WHERE user_id = ? AND day = ?
	`, userID, day)
	if err != nil {
		return fmt.Errorf("confirmation mark: %w", err)
	}
	return nil
}

func (r *ConfirmationRepo) Get(ctx context.Context, userID, day string) (*Confirmation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, day, attempted_at, confirmed
		FROM confirmations
		WHERE user_id = ? AND day = ?
	`, userID, day)
	var c Confirmation
	var confirmed int
	if err := row.Scan(&c.UserID, &c.Day, &c.AttemptedAt, &confirmed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("confirmation get: %w", err)
	}
	c.Confirmed = confirmed != 0
	return &c, nil
}

// LastConfirmedDay returns the most recent confirmed day for userID, or "".
func (r *ConfirmationRepo) LastConfirmedDay(ctx context.Context, userID string) (string, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT day FROM confirmations
		WHERE user_id = ? AND confirmed = 1
		ORDER BY day DESC
		LIMIT 1
	`, userID)
	var day string
	if err := row.Scan(&day); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("confirmation last: %w", err)
	}
	return day, nil
}
