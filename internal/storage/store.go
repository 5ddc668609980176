// Package storage provides abstractions for persistent data storage.
//
// Bills are never persisted; a bill lives only in its in-memory session. The
// store holds accounts and their scanning approval.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billsplitter/internal/models"
)

// ErrUserNotFound is returned when no account matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// Store defines the interface for account storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user together with an unapproved profile.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns ErrUserNotFound if no user has this email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns ErrUserNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// SetApproval unlocks or locks receipt scanning for a user.
	SetApproval(ctx context.Context, userID string, approved bool) error

	// IsApproved reports whether receipt scanning is unlocked for a user.
	// A user without a profile is not approved.
	IsApproved(ctx context.Context, userID string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
