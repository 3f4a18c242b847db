// Package apperr defines the sentinel errors shared across stores and
// handlers. Handlers match them with errors.Is to pick the user-visible
// outcome; anything unmatched is treated as a store failure.
package apperr

import "errors"

var (
	// ErrDuplicateUser means the username is already taken.
	ErrDuplicateUser = errors.New("username already taken")

	// ErrUserNotFound means no user record matches the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials means the password did not verify against the
	// stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTaskNotFound means no task with the given id is owned by the
	// requesting user. An id that exists under another owner still maps here.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidUsername means the username failed format validation.
	ErrInvalidUsername = errors.New("username must be 3-20 characters, start with a letter, and contain only letters, digits, underscores, or dots")

	// ErrInvalidPassword means the password failed strength validation.
	ErrInvalidPassword = errors.New("password must be at least 8 characters with an uppercase letter, a lowercase letter, a digit, and a symbol")

	// ErrPasswordMismatch means password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrMissingFields means a required form field was empty after trimming.
	ErrMissingFields = errors.New("title and description are required")

	// ErrTitleTooLong means the task title exceeds the stored column size.
	ErrTitleTooLong = errors.New("title must be at most 100 characters")
)
