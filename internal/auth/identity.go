package auth

import "context"

// IdentityProvider is the external authentication backend seen from the
// client. Implementations block until the backend answers and report
// failures in whatever shape is natural to them; Gateway turns those into
// display-ready results.
type IdentityProvider interface {
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
}

// SessionSource is implemented by providers that publish their session state.
type SessionSource interface {
	Session() *Session
}
