package auth

import (
	"context"

	"github.com/mmynk/authgate/internal/models"
)

// Authenticator defines the interface for credential verification on the
// backend. It lets the service layer stay the same when the credential type
// changes (password, passkey, OAuth code).
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	// Returns ErrEmailExists if the email is taken.
	Register(ctx context.Context, email, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	// Returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
