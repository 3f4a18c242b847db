package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"tasktrack/internal/apperr"
	"tasktrack/internal/models"
	"tasktrack/pkg/logger"
)

const uniqueViolation = "23505"

// Users is the Postgres-backed user store.
type Users struct {
	db *sql.DB
}

// NewUsers returns a user store over the given pool.
func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// Create inserts a new user. Returns apperr.ErrDuplicateUser when the
// username is already taken, including the race where two signups pass the
// pre-check and collide on the unique constraint.
func (r *Users) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return apperr.ErrDuplicateUser
		}
		logger.Error(ctx, "Repository user insert failed", "error", err)
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUsername looks up a user by username. Returns apperr.ErrUserNotFound
// when no record matches.
func (r *Users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository user lookup failed", "error", err, "username", username)
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &u, nil
}
