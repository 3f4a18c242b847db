// Package controller holds the request-level orchestration: validation,
// ownership checks, and task state transitions. Handlers depend only on the
// injected capabilities below, so tests run them against in-memory stores.
package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
	"tasktrack/internal/models"
	"tasktrack/internal/session"
	"tasktrack/pkg/logger"
)

// UserStore persists user records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TaskStore persists task records. Every operation is scoped by owner; an id
// the user does not own behaves as if it did not exist.
type TaskStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Complete(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
	ClearCompleted(ctx context.Context, userID string) (int64, error)
}

// TaskCache caches per-user task lists. May be absent.
type TaskCache interface {
	Get(ctx context.Context, userID string) ([]models.Task, bool)
	Set(ctx context.Context, userID string, tasks []models.Task)
	Invalidate(ctx context.Context, userID string)
}

// EventPublisher emits task lifecycle events. May be absent.
type EventPublisher interface {
	Publish(ctx context.Context, taskID, userID, action string)
}

// Controller wires the stores, session manager, cache, and event stream into
// HTTP handlers.
type Controller struct {
	users     UserStore
	tasks     TaskStore
	sessions  session.Manager
	cache     TaskCache
	events    EventPublisher
	listGroup singleflight.Group
}

// New returns a controller. cache and events may be nil to disable caching
// and the event stream.
func New(users UserStore, tasks TaskStore, sessions session.Manager, cache TaskCache, events EventPublisher) *Controller {
	return &Controller{users: users, tasks: tasks, sessions: sessions, cache: cache, events: events}
}

// currentUser returns the user id stored by the RequireUser middleware.
func currentUser(c *gin.Context) string {
	return c.GetString(session.UserKey)
}

// loadTasks returns the user's tasks, cache-first. Concurrent misses for the
// same user collapse into one database query.
func (ct *Controller) loadTasks(ctx context.Context, userID string) ([]models.Task, error) {
	if ct.cache != nil {
		if tasks, ok := ct.cache.Get(ctx, userID); ok {
			return tasks, nil
		}
	}
	v, err, _ := ct.listGroup.Do(userID, func() (interface{}, error) {
		tasks, err := ct.tasks.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if ct.cache != nil {
			ct.cache.Set(ctx, userID, tasks)
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Task), nil
}

func (ct *Controller) invalidate(ctx context.Context, userID string) {
	if ct.cache != nil {
		ct.cache.Invalidate(ctx, userID)
	}
}

func (ct *Controller) publish(ctx context.Context, taskID, userID, action string) {
	if ct.events != nil {
		ct.events.Publish(ctx, taskID, userID, action)
	}
}

// fail recovers a store failure at the request boundary: log it, answer with
// a generic 500. Details never reach the user.
func (ct *Controller) fail(c *gin.Context, err error) {
	logger.Error(c.Request.Context(), "Request failed", "error", err, "path", c.Request.URL.Path)
	c.String(http.StatusInternalServerError, "An error occurred. Please try again.")
}

func partition(tasks []models.Task) (active, completed []models.Task) {
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			active = append(active, t)
		}
	}
	return active, completed
}
