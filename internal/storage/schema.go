package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// Device-local key/value pairs: token, user, lastTaskDate.
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// One row per (user, day) on which the client issued the all-complete confirmation.
		`CREATE TABLE IF NOT EXISTS confirmations (
			user_id TEXT NOT NULL,
			day TEXT NOT NULL,
			attempted_at DATETIME NOT NULL,
			confirmed INTEGER DEFAULT 0,
			PRIMARY KEY (user_id, day)
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
