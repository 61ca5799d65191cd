package remote

import "sync"

// Session tracks the identity collaborator's login state and the opaque
// principal identifier used for display. The core never inspects the
// principal beyond showing it.
type Session struct {
	mu        sync.RWMutex
	principal string
	active    bool
}

// NewSession returns a logged-out session.
func NewSession() *Session {
	return &Session{}
}

// Login activates the session under the given principal.
func (s *Session) Login(principal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = principal
	s.active = true
}

// Logout deactivates the session.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = ""
	s.active = false
}

// Active reports whether a session is established.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Principal returns the display identifier, empty when logged out.
func (s *Session) Principal() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}
