package flow

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mmynk/authgate/internal/auth"
	"github.com/mmynk/authgate/internal/validation"
)

// Alert titles and texts.
const (
	TitleLoginFailed    = "Login Failed"
	TitleSignupFailed   = "Signup Failed"
	TitleAccountCreated = "Account Created"
	TitleLogout         = "Logout"
	TitleError          = "Error"

	MsgAccountCreated = "Your account has been created successfully!"
	MsgConfirmLogout  = "Are you sure you want to logout?"
)

// WelcomeScreen sends signed-in users straight home.
type WelcomeScreen struct {
	session *auth.Session
	nav     Navigator
}

func NewWelcomeScreen(session *auth.Session, nav Navigator) *WelcomeScreen {
	return &WelcomeScreen{session: session, nav: nav}
}

// Loading reports whether the session is still being resolved.
func (w *WelcomeScreen) Loading() bool {
	return w.session.Snapshot().Loading
}

// Resolve redirects to the home screen once the session has settled with a
// user. It reports whether it redirected.
func (w *WelcomeScreen) Resolve() bool {
	snap := w.session.Snapshot()
	if snap.Loading || snap.User == nil {
		return false
	}
	w.nav.Replace(RouteHome)
	return true
}

// LoginScreen handles the login form.
type LoginScreen struct {
	loadingGate
	gateway Gateway
	nav     Navigator
	alert   Alerter
}

func NewLoginScreen(gw Gateway, nav Navigator, alert Alerter) *LoginScreen {
	return &LoginScreen{gateway: gw, nav: nav, alert: alert}
}

// Submit validates the form and, when it passes, logs in. Field errors are
// returned for display; when they are non-empty the provider was not
// contacted.
func (s *LoginScreen) Submit(ctx context.Context, email, password string) (validation.FieldErrors, error) {
	if !s.enter() {
		return nil, ErrBusy
	}
	defer s.leave()

	if v := validation.ValidateLoginForm(email, password); !v.Valid {
		return v.Errors, nil
	}

	result := s.gateway.Login(ctx, email, password)
	if result.Success {
		s.nav.Replace(RouteHome)
	} else {
		s.alert.Alert(TitleLoginFailed, result.Error)
	}
	return validation.FieldErrors{}, nil
}

// SignupScreen handles the signup form.
type SignupScreen struct {
	loadingGate
	gateway Gateway
	nav     Navigator
	alert   Alerter
}

func NewSignupScreen(gw Gateway, nav Navigator, alert Alerter) *SignupScreen {
	return &SignupScreen{gateway: gw, nav: nav, alert: alert}
}

// Submit validates the form and, when it passes, creates the account.
func (s *SignupScreen) Submit(ctx context.Context, email, password, confirmPassword string) (validation.FieldErrors, error) {
	if !s.enter() {
		return nil, ErrBusy
	}
	defer s.leave()

	if v := validation.ValidateSignupForm(email, password, confirmPassword); !v.Valid {
		return v.Errors, nil
	}

	result := s.gateway.Signup(ctx, email, password)
	if result.Success {
		s.alert.Alert(TitleAccountCreated, MsgAccountCreated)
		s.nav.Replace(RouteHome)
	} else {
		s.alert.Alert(TitleSignupFailed, result.Error)
	}
	return validation.FieldErrors{}, nil
}

// HomeScreen shows the signed-in user and offers logout.
type HomeScreen struct {
	loadingGate
	gateway Gateway
	session *auth.Session
	nav     Navigator
	alert   Alerter
}

func NewHomeScreen(gw Gateway, session *auth.Session, nav Navigator, alert Alerter) *HomeScreen {
	return &HomeScreen{gateway: gw, session: session, nav: nav, alert: alert}
}

// Greeting returns the avatar initial and the email of the current user.
// The initial is "?" when unknown.
func (h *HomeScreen) Greeting() (initial, email string) {
	snap := h.session.Snapshot()
	if snap.User == nil {
		return "?", ""
	}
	return avatarInitial(snap.User.Email), snap.User.Email
}

// shortIDLength is how much of the user ID the home screen shows.
const shortIDLength = 12

// Profile describes the signed-in user for the home screen.
type Profile struct {
	Initial string
	Email   string
	// ShortID is the first 12 characters of the user ID followed by "...".
	ShortID string
}

// Profile returns what the home screen shows about the current user.
func (h *HomeScreen) Profile() Profile {
	initial, email := h.Greeting()
	p := Profile{Initial: initial, Email: email}
	if snap := h.session.Snapshot(); snap.User != nil {
		p.ShortID = shortID(snap.User.ID)
	}
	return p
}

func shortID(id string) string {
	runes := []rune(id)
	if len(runes) > shortIDLength {
		runes = runes[:shortIDLength]
	}
	return string(runes) + "..."
}

func avatarInitial(email string) string {
	r, size := utf8.DecodeRuneInString(email)
	if size == 0 || r == utf8.RuneError || unicode.IsSpace(r) {
		return "?"
	}
	return strings.ToUpper(string(r))
}

// Logout asks for confirmation, then logs out. On success the user lands on
// the welcome screen. It reports whether the user was logged out.
func (h *HomeScreen) Logout(ctx context.Context) (bool, error) {
	if c, ok := h.alert.(Confirmer); ok && !c.Confirm(TitleLogout, MsgConfirmLogout) {
		return false, nil
	}

	if !h.enter() {
		return false, ErrBusy
	}
	defer h.leave()

	result := h.gateway.Logout(ctx)
	if !result.Success {
		h.alert.Alert(TitleError, result.Error)
		return false, nil
	}
	h.nav.Replace(RouteWelcome)
	return true, nil
}
