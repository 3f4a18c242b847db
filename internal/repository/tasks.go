package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"tasktrack/internal/apperr"
	"tasktrack/internal/models"
	"tasktrack/pkg/logger"
)

// Tasks is the Postgres-backed task store. Every query filters by user_id;
// an id match alone never reads or mutates a row.
type Tasks struct {
	db *sql.DB
}

// NewTasks returns a task store over the given pool.
func NewTasks(db *sql.DB) *Tasks {
	return &Tasks{db: db}
}

// ListByUser returns all tasks owned by userID in insertion order.
func (r *Tasks) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, completed, user_id, created_on
		 FROM tasks WHERE user_id = $1 ORDER BY created_on, id`, userID)
	if err != nil {
		logger.Error(ctx, "Repository list tasks failed", "error", err)
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID, &t.CreatedOn); err != nil {
			logger.Error(ctx, "Repository scan task failed", "error", err)
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Create inserts a new active task.
func (r *Tasks) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedOn.IsZero() {
		task.CreatedOn = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, completed, user_id, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		task.ID, task.Title, task.Description, task.Completed, task.UserID, task.CreatedOn)
	if err != nil {
		logger.Error(ctx, "Repository task insert failed", "error", err)
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Complete sets the completed flag on the task with the given id, provided
// userID owns it. A single atomic update; calling it on an already-completed
// task succeeds without changing anything. Returns apperr.ErrTaskNotFound
// when no owned row matches.
func (r *Tasks) Complete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		logger.Error(ctx, "Repository task complete failed", "error", err, "id", id)
		return fmt.Errorf("complete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	if n == 0 {
		return apperr.ErrTaskNotFound
	}
	return nil
}

// Delete removes the task with the given id, provided userID owns it.
// Returns apperr.ErrTaskNotFound when no owned row matches.
func (r *Tasks) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		logger.Error(ctx, "Repository task delete failed", "error", err, "id", id)
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return apperr.ErrTaskNotFound
	}
	return nil
}

// ClearCompleted deletes all of the user's completed tasks and returns how
// many were removed. Zero completed tasks is a successful no-op.
func (r *Tasks) ClearCompleted(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = $1 AND completed = TRUE`, userID)
	if err != nil {
		logger.Error(ctx, "Repository clear completed failed", "error", err)
		return 0, fmt.Errorf("clear completed: %w", err)
	}
	return res.RowsAffected()
}
