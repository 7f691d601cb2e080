package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/authgate/internal/auth"
	"github.com/mmynk/authgate/internal/config"
	"github.com/mmynk/authgate/internal/service"
	"github.com/mmynk/authgate/internal/storage/sqlite"
)

func startBackend(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "authflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := service.NewAuthService(
		auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
		auth.NewSessionManager(auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour), store),
		store,
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	mux := http.NewServeMux()
	mux.Handle(svc.Handler())
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRunScriptedSession(t *testing.T) {
	server := startBackend(t)
	cfg := config.Client{ServerURL: server.URL, Timeout: 5 * time.Second}

	script := strings.Join([]string{
		"s",                     // welcome -> signup
		"a@b.com", "abc", "abd", // invalid signup
		"a@b.com", "secret1", "secret1", // valid signup -> home
		"l", "y", // logout
		"l",                         // welcome -> login
		"a@b.com", "wrong-password", // rejected
		"a@b.com", "secret1", // home
		"q",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := run(context.Background(), cfg, server.Client(), strings.NewReader(script), &out,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "password: Password must be at least 6 characters")
	assert.Contains(t, got, "confirmPassword: Passwords do not match")
	assert.Contains(t, got, "[Account Created] Your account has been created successfully!")
	assert.Contains(t, got, "(A) Welcome! a@b.com")
	assert.Regexp(t, `User ID: [0-9a-f-]{12}\.\.\.`, got)
	assert.Contains(t, got, "[Login Failed] Invalid email or password")
	assert.Equal(t, 2, strings.Count(got, "== Home =="))
}

func TestRunEndsAtEOF(t *testing.T) {
	server := startBackend(t)
	cfg := config.Client{ServerURL: server.URL, Timeout: time.Second}

	var out bytes.Buffer
	err := run(context.Background(), cfg, server.Client(), strings.NewReader(""), &out,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "== Welcome ==")
}
