package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage"
)

const selectUser = `
	SELECT u.id, u.email, u.display_name, u.password_hash, u.created_at, u.updated_at,
	       COALESCE(p.profile_approved, 0)
	FROM users u
	LEFT JOIN user_profiles p ON p.user_id = u.id
`

// CreateUser inserts a new user and its unapproved profile in one transaction.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, profile_approved, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, user.ID, user.Approved, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, selectUser+" WHERE u.email = ?", email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, selectUser+" WHERE u.id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// SetApproval updates the user's profile, creating it if it is missing.
func (s *SQLiteStore) SetApproval(ctx context.Context, userID string, approved bool) error {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}

	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, profile_approved, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			profile_approved = excluded.profile_approved,
			updated_at = excluded.updated_at
	`, userID, approved, now, now)
	if err != nil {
		return fmt.Errorf("failed to update approval: %w", err)
	}
	return nil
}

// IsApproved reports the user's approval. Missing users and profiles are not approved.
func (s *SQLiteStore) IsApproved(ctx context.Context, userID string) (bool, error) {
	var approved bool
	err := s.db.QueryRowContext(ctx,
		"SELECT profile_approved FROM user_profiles WHERE user_id = ?",
		userID,
	).Scan(&approved)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get approval status: %w", err)
	}
	return approved, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Approved,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
