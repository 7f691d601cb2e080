package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/authgate/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPasswordAuthenticator(t *testing.T) {
	store := newTestStore(t)
	a := NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	t.Run("Register hashes password and normalizes email", func(t *testing.T) {
		user, err := a.Register(ctx, " Alice@Example.com", "secret1")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("Email = %q, want alice@example.com", user.Email)
		}
		if user.PasswordHash == "secret1" || user.PasswordHash == "" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("Register rejects duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "alice@example.com", "another1")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("Register rejects short password", func(t *testing.T) {
		_, err := a.Register(ctx, "bob@example.com", "abc")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		user, err := a.Authenticate(ctx, "ALICE@example.com", "secret1")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("Email = %q", user.Email)
		}
	})

	t.Run("Authenticate rejects wrong password and unknown email alike", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := a.Authenticate(ctx, "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
		}
	})
}
