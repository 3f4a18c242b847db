package models

import "time"

// Task is a single todo item owned by exactly one user. The owner is fixed
// at creation; Completed only ever moves from false to true.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedOn   time.Time `json:"created_on"`
}

// Task lifecycle actions recorded on the event stream.
const (
	ActionCreated   = "created"
	ActionCompleted = "completed"
	ActionDeleted   = "deleted"
	ActionCleared   = "cleared"
)

// TaskEvent is the audit record published after a successful task mutation.
type TaskEvent struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
