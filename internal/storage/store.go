// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/authgate/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint would be violated.
var ErrDuplicate = errors.New("already exists")

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrDuplicate if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail looks up a user by normalized email.
	// Returns ErrNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID looks up a user by ID.
	// Returns ErrNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// SessionStore persists issued sessions so they can be revoked.
type SessionStore interface {
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession returns ErrNotFound if the session was never issued.
	GetSession(ctx context.Context, id string) (*models.Session, error)

	// RevokeSession marks the session revoked at the given Unix time.
	// Revoking an already revoked session is a no-op.
	RevokeSession(ctx context.Context, id string, at int64) error
}

// Store combines every store the backend needs.
type Store interface {
	UserStore
	SessionStore

	// Close releases any resources held by the store.
	Close() error
}
