package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/authgate/internal/models"
	"github.com/mmynk/authgate/internal/storage"
)

// SessionManager issues, verifies and revokes server-side sessions. Each
// issued token is backed by a stored session so logout can invalidate it
// before it expires.
type SessionManager struct {
	tokens *TokenManager
	store  storage.SessionStore
	now    func() time.Time
}

// NewSessionManager creates a session manager.
func NewSessionManager(tokens *TokenManager, store storage.SessionStore) *SessionManager {
	return &SessionManager{tokens: tokens, store: store, now: time.Now}
}

// Issue signs a token for user and records its session.
func (m *SessionManager) Issue(ctx context.Context, user *models.User) (string, error) {
	token, claims, err := m.tokens.Generate(user)
	if err != nil {
		return "", err
	}

	session := &models.Session{
		ID:        claims.ID,
		UserID:    user.ID,
		CreatedAt: claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}
	if err := m.store.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to record session: %w", err)
	}
	return token, nil
}

// Verify validates the token and checks that its session is still active.
func (m *SessionManager) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := m.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	session, err := m.store.GetSession(ctx, claims.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrSessionRevoked
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.Active(m.now()) {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Revoke ends the session identified by sessionID.
func (m *SessionManager) Revoke(ctx context.Context, sessionID string) error {
	err := m.store.RevokeSession(ctx, sessionID, m.now().Unix())
	if errors.Is(err, storage.ErrNotFound) {
		return ErrSessionRevoked
	}
	return err
}
