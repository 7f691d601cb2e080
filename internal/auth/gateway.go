package auth

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
)

// Messages returned in Result.Error.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmailExists        = "An account with this email already exists"
	MsgNotAuthenticated   = "You are not logged in"
	MsgTimeout            = "The request timed out. Please try again."
	MsgCanceled           = "The request was cancelled"
	MsgNetwork            = "Network error. Please check your connection and try again."
	MsgUnknown            = "Something went wrong. Please try again."
)

type operation string

const (
	opLogin  operation = "login"
	opSignup operation = "signup"
	opLogout operation = "logout"
)

// Result is the uniform outcome of an auth operation. Exactly one of
// Success or a non-empty Error holds.
type Result struct {
	Success bool
	Error   string
}

// Succeeded returns a successful Result.
func Succeeded() Result {
	return Result{Success: true}
}

// Failed returns a failed Result. An empty message is replaced so the
// result always explains itself.
func Failed(msg string) Result {
	if msg == "" {
		msg = MsgUnknown
	}
	return Result{Error: msg}
}

// Gateway calls an IdentityProvider and normalizes every outcome into a
// Result. It holds no state, never retries and never panics.
type Gateway struct {
	provider IdentityProvider
	logger   *slog.Logger
}

// NewGateway creates a gateway in front of provider.
func NewGateway(provider IdentityProvider, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{provider: provider, logger: logger}
}

// Login signs in with email and password.
func (g *Gateway) Login(ctx context.Context, email, password string) Result {
	return g.call(ctx, opLogin, email, func(ctx context.Context) error {
		return g.provider.Login(ctx, email, password)
	})
}

// Signup creates an account and signs in.
func (g *Gateway) Signup(ctx context.Context, email, password string) Result {
	return g.call(ctx, opSignup, email, func(ctx context.Context) error {
		return g.provider.Signup(ctx, email, password)
	})
}

// Logout ends the current session.
func (g *Gateway) Logout(ctx context.Context) Result {
	return g.call(ctx, opLogout, "", func(ctx context.Context) error {
		return g.provider.Logout(ctx)
	})
}

func (g *Gateway) call(ctx context.Context, op operation, email string, fn func(context.Context) error) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Identity provider panicked", "operation", op, "panic", r)
			res = Failed(MsgUnknown)
		}
	}()

	if err := fn(ctx); err != nil {
		msg := normalize(op, err)
		g.logger.Warn("Auth operation failed", "operation", op, "email", email, "error", err, "message", msg)
		return Failed(msg)
	}

	g.logger.Info("Auth operation succeeded", "operation", op, "email", email)
	return Succeeded()
}

// normalize maps a provider error to a message fit for display.
func normalize(op operation, err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, ErrEmailExists):
		return MsgEmailExists
	case errors.Is(err, ErrWeakPassword):
		return ErrWeakPassword.Error()
	case errors.Is(err, ErrNotAuthenticated):
		return MsgNotAuthenticated
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	case errors.Is(err, context.Canceled):
		return MsgCanceled
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		switch connectErr.Code() {
		case connect.CodeUnauthenticated:
			if op == opLogout {
				return MsgNotAuthenticated
			}
			return MsgInvalidCredentials
		case connect.CodeAlreadyExists:
			return MsgEmailExists
		case connect.CodeDeadlineExceeded:
			return MsgTimeout
		case connect.CodeCanceled:
			return MsgCanceled
		case connect.CodeUnavailable:
			return MsgNetwork
		case connect.CodeInternal, connect.CodeUnknown:
			return MsgUnknown
		}
		if msg := connectErr.Message(); msg != "" {
			return msg
		}
		return MsgUnknown
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgUnknown
}
