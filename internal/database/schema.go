package database

import (
	"context"
	"fmt"
)

// MigrateOrCreateSchema creates the users, tasks, and task_events tables if
// they do not exist. Safe to run on every startup.
func MigrateOrCreateSchema(ctx context.Context) error {
	db := DB(ctx)
	if db == nil {
		return fmt.Errorf("database unavailable")
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			username      VARCHAR(20) NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id          UUID PRIMARY KEY,
			title       VARCHAR(100) NOT NULL,
			description TEXT NOT NULL,
			completed   BOOLEAN NOT NULL DEFAULT FALSE,
			user_id     UUID NOT NULL REFERENCES users(id),
			created_on  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks (user_id, created_on)`,
		`CREATE TABLE IF NOT EXISTS task_events (
			id          UUID PRIMARY KEY,
			task_id     UUID,
			user_id     UUID NOT NULL,
			action      VARCHAR(16) NOT NULL,
			occurred_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
