package controller

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"tasktrack/internal/apperr"
	"tasktrack/internal/models"
)

// Home renders the current user's active and completed task lists.
func (ct *Controller) Home(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)
	tasks, err := ct.loadTasks(ctx, userID)
	if err != nil {
		ct.fail(c, err)
		return
	}
	active, completed := partition(tasks)
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Active":    active,
		"Completed": completed,
		"Error":     c.Query("error"),
	})
}

// CreateTask handles the task submission form. Both fields are required
// after trimming; nothing is written when validation fails.
func (ct *Controller) CreateTask(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if title == "" || description == "" {
		ct.renderHomeError(c, http.StatusBadRequest, apperr.ErrMissingFields.Error())
		return
	}
	if len(title) > 100 {
		ct.renderHomeError(c, http.StatusBadRequest, apperr.ErrTitleTooLong.Error())
		return
	}
	task := &models.Task{
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	if err := ct.tasks.Create(ctx, task); err != nil {
		ct.fail(c, err)
		return
	}
	ct.invalidate(ctx, userID)
	ct.publish(ctx, task.ID, userID, models.ActionCreated)
	c.Redirect(http.StatusFound, "/")
}

// CompleteTask marks an owned task completed. The flag only moves one way;
// completing an already-completed task is a no-op success.
func (ct *Controller) CompleteTask(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)
	id := c.Param("id")
	if err := ct.tasks.Complete(ctx, id, userID); err != nil {
		if errors.Is(err, apperr.ErrTaskNotFound) {
			redirectHomeError(c, apperr.ErrTaskNotFound.Error())
			return
		}
		ct.fail(c, err)
		return
	}
	ct.invalidate(ctx, userID)
	ct.publish(ctx, id, userID, models.ActionCompleted)
	c.Redirect(http.StatusFound, "/")
}

// DeleteTask removes an owned task permanently.
func (ct *Controller) DeleteTask(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)
	id := c.Param("id")
	if err := ct.tasks.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, apperr.ErrTaskNotFound) {
			redirectHomeError(c, apperr.ErrTaskNotFound.Error())
			return
		}
		ct.fail(c, err)
		return
	}
	ct.invalidate(ctx, userID)
	ct.publish(ctx, id, userID, models.ActionDeleted)
	c.Redirect(http.StatusFound, "/")
}

// ClearCompleted removes all of the user's completed tasks. Nothing to clear
// is a success, not an error.
func (ct *Controller) ClearCompleted(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)
	n, err := ct.tasks.ClearCompleted(ctx, userID)
	if err != nil {
		ct.fail(c, err)
		return
	}
	if n > 0 {
		ct.invalidate(ctx, userID)
		ct.publish(ctx, "", userID, models.ActionCleared)
	}
	c.Redirect(http.StatusFound, "/")
}

// renderHomeError re-renders the task list with a validation message.
func (ct *Controller) renderHomeError(c *gin.Context, status int, msg string) {
	ctx := c.Request.Context()
	tasks, err := ct.loadTasks(ctx, currentUser(c))
	if err != nil {
		ct.fail(c, err)
		return
	}
	active, completed := partition(tasks)
	c.HTML(status, "home.html", gin.H{
		"Active":    active,
		"Completed": completed,
		"Error":     msg,
	})
}

func redirectHomeError(c *gin.Context, msg string) {
	c.Redirect(http.StatusFound, "/?error="+url.QueryEscape(msg))
}
