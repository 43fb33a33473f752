package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KVRepo is the device-local key/value store.
type KVRepo struct {
	db *sql.DB
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value for key and whether it was present.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	return setTx(ctx, r.db, key, value)
}

// MultiSet writes all pairs atomically.
func (r *KVRepo) MultiSet(ctx context.Context, pairs ...Pair) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, p := range pairs {
			if err := setTx(ctx, tx, p.Key, p.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// MultiRemove deletes all keys atomically. Missing keys are not an error.
func (r *KVRepo) MultiRemove(ctx context.Context, keys ...string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, k); err != nil {
				return fmt.Errorf("kv remove %s: %w", k, err)
			}
		}
		return nil
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setTx(ctx context.Context, e execer, key, value string) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}
