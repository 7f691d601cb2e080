// Package flow drives the welcome, login, signup and home screens without
// rendering them. Each screen validates input, gates re-submission while a
// call is outstanding and turns the gateway's result into a navigation or
// an alert.
package flow

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/mmynk/authgate/internal/auth"
)

// Route names a screen.
type Route string

const (
	RouteWelcome Route = "/"
	RouteLogin   Route = "/login"
	RouteSignup  Route = "/signup"
	RouteHome    Route = "/home"
)

// Protected reports whether r requires a signed-in user.
func (r Route) Protected() bool {
	return r == RouteHome
}

// Navigator replaces the current screen.
type Navigator interface {
	Replace(route Route)
}

// Alerter shows a modal message.
type Alerter interface {
	Alert(title, message string)
}

// Confirmer is optionally implemented by an Alerter that can ask a yes/no
// question. Without it, confirmations are assumed.
type Confirmer interface {
	Confirm(title, message string) bool
}

// Gateway is the subset of auth.Gateway the screens use.
type Gateway interface {
	Login(ctx context.Context, email, password string) auth.Result
	Signup(ctx context.Context, email, password string) auth.Result
	Logout(ctx context.Context) auth.Result
}

var _ Gateway = (*auth.Gateway)(nil)

// ErrBusy is returned when a screen is asked to submit while its previous
// submission is still in flight.
var ErrBusy = errors.New("flow: submission already in progress")

// loadingGate is the per-screen loading flag.
type loadingGate struct {
	busy atomic.Bool
}

func (g *loadingGate) Loading() bool { return g.busy.Load() }

func (g *loadingGate) enter() bool { return g.busy.CompareAndSwap(false, true) }

func (g *loadingGate) leave() { g.busy.Store(false) }

// App wires the screens to one gateway, session and set of collaborators.
type App struct {
	Welcome *WelcomeScreen
	Login   *LoginScreen
	Signup  *SignupScreen
	Home    *HomeScreen

	session *auth.Session
	nav     Navigator
}

// NewApp builds every screen.
func NewApp(gw Gateway, session *auth.Session, nav Navigator, alert Alerter) *App {
	return &App{
		Welcome: NewWelcomeScreen(session, nav),
		Login:   NewLoginScreen(gw, nav, alert),
		Signup:  NewSignupScreen(gw, nav, alert),
		Home:    NewHomeScreen(gw, session, nav, alert),
		session: session,
		nav:     nav,
	}
}

// Enter is called before showing route. Protected routes redirect to the
// login screen when nobody is signed in; it returns false in that case.
func (a *App) Enter(route Route) bool {
	if route.Protected() {
		return Guard(a.session, a.nav)
	}
	return true
}

// Guard allows a protected screen only when the session has a user. While
// the session is still loading nothing happens and false is returned.
func Guard(session *auth.Session, nav Navigator) bool {
	snap := session.Snapshot()
	if snap.User != nil {
		return true
	}
	if !snap.Loading {
		nav.Replace(RouteLogin)
	}
	return false
}
