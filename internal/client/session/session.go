// Package session holds the client's current authenticated user.
//
// A Session is owned by whoever constructs it (normally main) and passed to
// the services that read or change it. Observers learn about login and
// logout through Subscribe. The persisted form of a session is a signed
// token, see EncodeToken and DecodeToken.
package session

import (
	"sync"

	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
	"github.com/dmitrijs2005/pokekeeper/internal/notify"
)

// Session is safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	current *models.User
	changes *notify.Broadcaster[*models.User]
}

func New() *Session {
	return &Session{changes: notify.New[*models.User]()}
}

// Current returns a copy of the logged-in user or nil.
func (s *Session) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Set makes u the current user. The password hash is never kept.
func (s *Session) Set(u *models.User) {
	if u == nil {
		s.Clear()
		return
	}
	cp := *u
	cp.PasswordHash = ""

	s.mu.Lock()
	s.current = &cp
	s.mu.Unlock()

	snapshot := cp
	s.changes.Notify(&snapshot)
}

// Clear logs the session out. Observers are notified with nil even when
// nobody was logged in.
func (s *Session) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.changes.Notify(nil)
}

// Subscribe returns a channel that receives the new current user (nil on
// logout) after every Set or Clear, and a cancel function.
func (s *Session) Subscribe() (<-chan *models.User, func()) {
	return s.changes.Subscribe()
}
