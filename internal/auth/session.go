package auth

import "sync"

// State is the client's view of the authentication lifecycle.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionUser is the signed-in user as known to the client.
type SessionUser struct {
	ID    string
	Email string
}

// SessionSnapshot is a point-in-time copy of a Session.
type SessionSnapshot struct {
	State   State
	User    *SessionUser
	Loading bool
}

// Session is the observable auth state owned by an identity provider.
// Readers call Snapshot or Subscribe; only the provider drives transitions.
type Session struct {
	mu     sync.RWMutex
	state  State
	user   *SessionUser
	ready  bool
	subs   map[int]func(SessionSnapshot)
	nextID int
}

// NewSession returns an anonymous session that reports Loading until the
// provider calls Ready or completes a transition.
func NewSession() *Session {
	return &Session{subs: make(map[int]func(SessionSnapshot))}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{
		State:   s.state,
		Loading: !s.ready || s.state == StateAuthenticating,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Subscribe calls fn with the current state and after every transition
// until the returned cancel func is called.
func (s *Session) Subscribe(fn func(SessionSnapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	snap := s.snapshotLocked()
	s.mu.Unlock()

	fn(snap)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Begin moves to authenticating. The current user, if any, is kept until
// the operation settles.
func (s *Session) Begin() {
	s.transition(func() { s.state = StateAuthenticating })
}

// Authenticated records a signed-in user.
func (s *Session) Authenticated(user SessionUser) {
	s.transition(func() {
		s.state = StateAuthenticated
		s.user = &user
		s.ready = true
	})
}

// Anonymous clears the user.
func (s *Session) Anonymous() {
	s.transition(func() {
		s.state = StateAnonymous
		s.user = nil
		s.ready = true
	})
}

// Ready marks the initial restore as finished without changing state.
func (s *Session) Ready() {
	s.transition(func() { s.ready = true })
}

func (s *Session) transition(apply func()) {
	s.mu.Lock()
	apply()
	snap := s.snapshotLocked()
	subs := make([]func(SessionSnapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
