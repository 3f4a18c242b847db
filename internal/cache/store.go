package cache

import (
	"context"

	"tasktrack/internal/models"
)

// Store adapts the package-level Redis helpers to the controller's cache
// interface.
type Store struct{}

func (Store) Get(ctx context.Context, userID string) ([]models.Task, bool) {
	return GetUserTasks(ctx, userID)
}

func (Store) Set(ctx context.Context, userID string, tasks []models.Task) {
	SetUserTasks(ctx, userID, tasks)
}

func (Store) Invalidate(ctx context.Context, userID string) {
	InvalidateUserTasks(ctx, userID)
}
