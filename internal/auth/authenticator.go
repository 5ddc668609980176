// Package auth handles account credentials and session tokens.
//
// Accounts exist only to gate receipt scanning. Manual bill entry never
// touches this package.
package auth

import (
	"context"

	"github.com/mmynk/billsplitter/internal/models"
)

// Authenticator verifies who a caller is.
// Swapping password login for another method should not affect the services.
type Authenticator interface {
	// Register creates an unapproved account for email.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account matching email and credential.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential before it is stored.
	ValidateCredential(credential string) error
}
