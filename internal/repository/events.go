package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"tasktrack/internal/models"
	"tasktrack/pkg/logger"
)

// Events is the Postgres-backed audit store written by the event recorder.
type Events struct {
	db *sql.DB
}

// NewEvents returns an event store over the given pool.
func NewEvents(db *sql.DB) *Events {
	return &Events{db: db}
}

// Record inserts a task lifecycle event. Bulk actions like "cleared" carry
// no single task id; those store NULL in task_id.
func (r *Events) Record(ctx context.Context, ev *models.TaskEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	var taskID interface{}
	if ev.TaskID != "" {
		taskID = ev.TaskID
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_events (id, task_id, user_id, action, occurred_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, taskID, ev.UserID, ev.Action, ev.OccurredAt)
	if err != nil {
		logger.Error(ctx, "Repository event insert failed", "error", err, "action", ev.Action)
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}
