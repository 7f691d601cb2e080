package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/authgate/internal/auth"
	"github.com/mmynk/authgate/internal/metrics"
	"github.com/mmynk/authgate/internal/middleware"
	"github.com/mmynk/authgate/internal/models"
	"github.com/mmynk/authgate/internal/storage"
	"github.com/mmynk/authgate/internal/validation"
	"github.com/mmynk/authgate/pkg/authrpc"
)

// Ensure AuthService implements the handler interface
var _ authrpc.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	sessions      *auth.SessionManager
	users         storage.UserStore
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service. m may be nil.
func NewAuthService(
	authenticator auth.Authenticator,
	sessions *auth.SessionManager,
	users storage.UserStore,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		sessions:      sessions,
		users:         users,
		metrics:       m,
		logger:        logger,
	}
}

// Register creates a new user account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[authrpc.RegisterRequest]) (*connect.Response[authrpc.AuthResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if result := validation.ValidateLoginForm(req.Msg.Email, req.Msg.Password); !result.Valid {
		s.logger.Warn("Register rejected", "email", req.Msg.Email, "error", result.Errors)
		s.metrics.AuthAttempt("register", metrics.OutcomeInvalid)
		return nil, invalidArgument(result.Errors)
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			s.metrics.AuthAttempt("register", metrics.OutcomeRejected)
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword):
			s.metrics.AuthAttempt("register", metrics.OutcomeInvalid)
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		s.metrics.AuthAttempt("register", metrics.OutcomeError)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp, err := s.signIn(ctx, user)
	if err != nil {
		s.metrics.AuthAttempt("register", metrics.OutcomeError)
		return nil, err
	}

	s.metrics.AuthAttempt("register", metrics.OutcomeSuccess)
	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return resp, nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[authrpc.LoginRequest]) (*connect.Response[authrpc.AuthResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if result := validation.ValidateLoginForm(req.Msg.Email, req.Msg.Password); !result.Valid {
		s.logger.Warn("Login rejected", "email", req.Msg.Email, "error", result.Errors)
		s.metrics.AuthAttempt("login", metrics.OutcomeInvalid)
		return nil, invalidArgument(result.Errors)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		s.metrics.AuthAttempt("login", metrics.OutcomeRejected)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}
	if err != nil {
		s.logger.Error("Login failed", "email", req.Msg.Email, "error", err)
		s.metrics.AuthAttempt("login", metrics.OutcomeError)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp, err := s.signIn(ctx, user)
	if err != nil {
		s.metrics.AuthAttempt("login", metrics.OutcomeError)
		return nil, err
	}

	s.metrics.AuthAttempt("login", metrics.OutcomeSuccess)
	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return resp, nil
}

// Logout revokes the session behind the request's token.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[emptypb.Empty], error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		if errors.Is(err, auth.ErrSessionRevoked) {
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
		s.logger.Error("Failed to revoke session", "session_id", sessionID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.Logout()
	s.logger.Info("User logged out", "user_id", middleware.GetUserID(ctx), "session_id", sessionID)
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[authrpc.GetCurrentUserResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&authrpc.GetCurrentUserResponse{User: toProtoUser(user)}), nil
}

// invalidArgument reports field errors with display messages only. The
// field names stay in the log.
func invalidArgument(errs validation.FieldErrors) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, errors.New(errs.Summary()))
}

// signIn issues a session for user and builds the response.
func (s *AuthService) signIn(ctx context.Context, user *models.User) (*connect.Response[authrpc.AuthResponse], error) {
	token, err := s.sessions.Issue(ctx, user)
	if err != nil {
		s.logger.Error("Failed to issue session", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&authrpc.AuthResponse{
		User:  toProtoUser(user),
		Token: token,
	}), nil
}

func toProtoUser(u *models.User) *authrpc.User {
	return &authrpc.User{
		Id:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
