package auth

import (
	"errors"

	"github.com/mmynk/authgate/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New(validation.MsgPasswordShort)
	ErrEmailExists        = errors.New("email already registered")

	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrMissingToken   = errors.New("authorization token required")
	ErrSessionRevoked = errors.New("session revoked or expired")

	// ErrNotAuthenticated is returned by providers asked to end a session
	// they do not hold.
	ErrNotAuthenticated = errors.New("not authenticated")
)
