// Package session holds the frontend's server-side sessions. The browser
// only ever sees an opaque session id; the API bearer token stays here and
// never reaches the client.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session id cookie set on successful login.
const CookieName = "sessionId"

// Session is the server-side state behind one logged-in browser.
type Session struct {
	Token     string // bearer token for API calls
	Login     string
	Email     string
	IsAdmin   bool
	ExpiresAt time.Time
}

func (s Session) expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store is an in-memory session store. A janitor goroutine evicts expired
// sessions so abandoned logins do not accumulate.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

func NewStore(ttl time.Duration, cleanupInterval time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.janitor(cleanupInterval)
	return s
}

// Create registers a new session and returns its id. The session expires at
// tokenExpiry or after the store TTL, whichever comes first: a session must
// never outlive the token it carries.
func (s *Store) Create(token, login, email string, isAdmin bool, tokenExpiry time.Time) string {
	expiresAt := time.Now().Add(s.ttl)
	if tokenExpiry.Before(expiresAt) {
		expiresAt = tokenExpiry
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = Session{
		Token:     token,
		Login:     login,
		Email:     email,
		IsAdmin:   isAdmin,
		ExpiresAt: expiresAt,
	}
	s.mu.Unlock()
	return id
}

// Get returns the session for id. Expired sessions are evicted on read and
// reported as absent.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}

	if session.expired(time.Now()) {
		s.Delete(id)
		return Session{}, false
	}
	return session, true
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len reports the number of live sessions, expired entries included until
// the janitor or a read evicts them.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stop terminates the janitor goroutine.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Store) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, session := range s.sessions {
				if session.expired(now) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
