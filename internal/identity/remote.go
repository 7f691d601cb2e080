// Package identity implements auth.IdentityProvider against the authgate
// backend.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/authgate/internal/auth"
	"github.com/mmynk/authgate/pkg/authrpc"
)

var (
	_ auth.IdentityProvider = (*RemoteProvider)(nil)
	_ auth.SessionSource    = (*RemoteProvider)(nil)
)

// RemoteProvider talks to the backend over Connect. The bearer token lives
// in memory only and is lost when the process exits.
type RemoteProvider struct {
	client  authrpc.AuthServiceClient
	session *auth.Session
	logger  *slog.Logger

	mu    sync.Mutex
	token string
}

// NewRemoteProvider creates a provider using client.
func NewRemoteProvider(client authrpc.AuthServiceClient, logger *slog.Logger) *RemoteProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteProvider{
		client:  client,
		session: auth.NewSession(),
		logger:  logger,
	}
}

// Session returns the observable session state.
func (p *RemoteProvider) Session() *auth.Session {
	return p.session
}

// SetToken installs a previously issued token, for example one handed over
// by the caller. Call Restore afterwards to load the user.
func (p *RemoteProvider) SetToken(token string) {
	p.mu.Lock()
	p.token = token
	p.mu.Unlock()
}

func (p *RemoteProvider) currentToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

// Restore resolves the user behind the current token, if any, and marks
// the session ready. A rejected token is dropped.
func (p *RemoteProvider) Restore(ctx context.Context) error {
	token := p.currentToken()
	if token == "" {
		p.session.Anonymous()
		return nil
	}

	p.session.Begin()
	req := connect.NewRequest(&emptypb.Empty{})
	setBearer(req.Header(), token)
	resp, err := p.client.GetCurrentUser(ctx, req)
	if err != nil {
		if connect.CodeOf(err) == connect.CodeUnauthenticated {
			p.SetToken("")
		}
		p.session.Anonymous()
		return fmt.Errorf("restore session: %w", err)
	}

	p.session.Authenticated(toSessionUser(resp.Msg.User))
	return nil
}

// Login implements auth.IdentityProvider.
func (p *RemoteProvider) Login(ctx context.Context, email, password string) error {
	p.session.Begin()
	resp, err := p.client.Login(ctx, connect.NewRequest(&authrpc.LoginRequest{
		Email:    email,
		Password: password,
	}))
	return p.settle(resp, err)
}

// Signup implements auth.IdentityProvider.
func (p *RemoteProvider) Signup(ctx context.Context, email, password string) error {
	p.session.Begin()
	resp, err := p.client.Register(ctx, connect.NewRequest(&authrpc.RegisterRequest{
		Email:    email,
		Password: password,
	}))
	return p.settle(resp, err)
}

func (p *RemoteProvider) settle(resp *connect.Response[authrpc.AuthResponse], err error) error {
	if err != nil {
		p.session.Anonymous()
		return err
	}
	if resp.Msg.User == nil || resp.Msg.Token == "" {
		p.session.Anonymous()
		return errors.New("identity backend returned an incomplete response")
	}

	p.SetToken(resp.Msg.Token)
	p.session.Authenticated(toSessionUser(resp.Msg.User))
	return nil
}

// Logout implements auth.IdentityProvider. A token the backend no longer
// recognizes counts as logged out.
func (p *RemoteProvider) Logout(ctx context.Context) error {
	token := p.currentToken()
	if token == "" {
		return auth.ErrNotAuthenticated
	}

	prev := p.session.Snapshot()
	p.session.Begin()

	req := connect.NewRequest(&emptypb.Empty{})
	setBearer(req.Header(), token)
	_, err := p.client.Logout(ctx, req)
	if err != nil && connect.CodeOf(err) != connect.CodeUnauthenticated {
		if prev.User != nil {
			p.session.Authenticated(*prev.User)
		} else {
			p.session.Anonymous()
		}
		return err
	}
	if err != nil {
		p.logger.Debug("Session already ended on the backend", "error", err)
	}

	p.SetToken("")
	p.session.Anonymous()
	return nil
}

func toSessionUser(u *authrpc.User) auth.SessionUser {
	if u == nil {
		return auth.SessionUser{}
	}
	return auth.SessionUser{ID: u.Id, Email: u.Email}
}

func setBearer(h http.Header, token string) {
	h.Set("Authorization", "Bearer "+token)
}
