package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/authgate/internal/auth"
	"github.com/mmynk/authgate/internal/models"
	"github.com/mmynk/authgate/internal/storage"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"missing", "", "", auth.ErrMissingToken},
		{"wrong scheme", "Basic abc", "", auth.ErrInvalidToken},
		{"no token", "Bearer ", "", auth.ErrInvalidToken},
		{"extra parts", "Bearer a b", "", auth.ErrInvalidToken},
		{"ok", "Bearer abc.def.ghi", "abc.def.ghi", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithClaims(t *testing.T) {
	claims := &auth.Claims{
		UserID:           "user-1",
		Email:            "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{ID: "session-1"},
	}
	ctx := WithClaims(context.Background(), claims)

	if got := GetUserID(ctx); got != "user-1" {
		t.Errorf("GetUserID = %q", got)
	}
	if got := GetEmail(ctx); got != "a@b.com" {
		t.Errorf("GetEmail = %q", got)
	}
	if got := GetSessionID(ctx); got != "session-1" {
		t.Errorf("GetSessionID = %q", got)
	}
	if got := GetUserID(context.Background()); got != "" {
		t.Errorf("GetUserID on empty context = %q", got)
	}
}

// sessionStore returns a fixed session or error from GetSession.
type sessionStore struct {
	session *models.Session
	err     error
}

func (s sessionStore) CreateSession(context.Context, *models.Session) error { return nil }

func (s sessionStore) GetSession(context.Context, string) (*models.Session, error) {
	return s.session, s.err
}

func (s sessionStore) RevokeSession(context.Context, string, int64) error { return nil }

func TestRequireAuth_VerifyErrors(t *testing.T) {
	tokens := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	token, claims, err := tokens.Generate(&models.User{ID: "user-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	active := &models.Session{ID: claims.ID, UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour).Unix()}

	tests := []struct {
		name     string
		header   string
		store    sessionStore
		wantCode connect.Code
		wantUser string
	}{
		{"active session", "Bearer " + token, sessionStore{session: active}, 0, "user-1"},
		{"missing token", "", sessionStore{session: active}, connect.CodeUnauthenticated, ""},
		{"malformed token", "Bearer nope", sessionStore{session: active}, connect.CodeUnauthenticated, ""},
		{"unknown session", "Bearer " + token, sessionStore{err: storage.ErrNotFound}, connect.CodeUnauthenticated, ""},
		{"store failure", "Bearer " + token, sessionStore{err: errors.New("database is locked")}, connect.CodeInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				gotUser = GetUserID(ctx)
				return connect.NewResponse(&emptypb.Empty{}), nil
			}

			interceptor := RequireAuth(auth.NewSessionManager(tokens, tt.store))
			req := connect.NewRequest(&emptypb.Empty{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			_, err := interceptor(next)(context.Background(), req)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if got := connect.CodeOf(err); got != tt.wantCode {
				t.Fatalf("code = %v, want %v (err %v)", got, tt.wantCode, err)
			}
			if gotUser != tt.wantUser {
				t.Errorf("user = %q, want %q", gotUser, tt.wantUser)
			}
		})
	}
}
