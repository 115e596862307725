// ABOUTME: Session holds at most one authenticated identity.
// ABOUTME: Transitions: Anonymous -> Authenticated -> Anonymous; Authenticate replaces.
package auth

import "sync"

// Identity is the authenticated user.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// State is the session state.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session is the single live session of a store. The zero value is Anonymous.
type Session struct {
	mu  sync.RWMutex
	id  Identity
	set bool
}

// Authenticate installs id, replacing any existing identity. It returns the
// identity that was replaced, if any.
func (s *Session) Authenticate(id Identity) (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.id, s.set
	s.id, s.set = id, true
	return prev, had
}

// Current returns the live identity.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.set
}

// End clears the session. It returns the identity that was ended; false means
// the session was already empty.
func (s *Session) End() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.id, s.set
	s.id, s.set = Identity{}, false
	return prev, had
}

// State returns Anonymous or Authenticated.
func (s *Session) State() State {
	if _, ok := s.Current(); ok {
		return Authenticated
	}
	return Anonymous
}
