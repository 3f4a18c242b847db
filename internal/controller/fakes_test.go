package controller_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tasktrack/internal/apperr"
	"tasktrack/internal/models"
)

// In-memory stands-ins for the Postgres stores, matching their error
// contracts.

type memUsers struct {
	mu     sync.Mutex
	seq    int
	byName map[string]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byName: make(map[string]models.User)}
}

func (s *memUsers) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[user.Username]; ok {
		return apperr.ErrDuplicateUser
	}
	s.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("u%d", s.seq)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.byName[user.Username] = *user
	return nil
}

func (s *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byName[username]
	if !ok {
		return nil, apperr.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (s *memUsers) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byName)
}

type memTasks struct {
	mu    sync.Mutex
	seq   int
	tasks []models.Task
}

func newMemTasks() *memTasks {
	return &memTasks{}
}

func (s *memTasks) ListByUser(_ context.Context, userID string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memTasks) Create(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if task.ID == "" {
		task.ID = fmt.Sprintf("t%d", s.seq)
	}
	if task.CreatedOn.IsZero() {
		task.CreatedOn = time.Now()
	}
	s.tasks = append(s.tasks, *task)
	return nil
}

func (s *memTasks) Complete(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id && s.tasks[i].UserID == userID {
			s.tasks[i].Completed = true
			return nil
		}
	}
	return apperr.ErrTaskNotFound
}

func (s *memTasks) Delete(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id && s.tasks[i].UserID == userID {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return apperr.ErrTaskNotFound
}

func (s *memTasks) ClearCompleted(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []models.Task
	var removed int64
	for _, t := range s.tasks {
		if t.UserID == userID && t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	return removed, nil
}

func (s *memTasks) byID(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (s *memTasks) all() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.tasks...)
}
