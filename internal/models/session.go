package models

import "time"

// Session is one issued login. Its ID is the JWT ID of the token handed to
// the client.
type Session struct {
	ID        string
	UserID    string
	CreatedAt int64
	ExpiresAt int64

	// RevokedAt is zero while the session is active.
	RevokedAt int64
}

// Active reports whether the session can still authenticate requests at t.
func (s *Session) Active(t time.Time) bool {
	return s.RevokedAt == 0 && t.Unix() < s.ExpiresAt
}
