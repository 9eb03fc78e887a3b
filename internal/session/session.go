// Package session holds the signed-in state shared by every component that
// calls the backend. Logout is a single state transition observed by all
// dependents rather than a scattered side effect.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"salespoint/internal/model"
)

// TokenStore is the boundary to wherever credentials are persisted (secure
// storage on device, keychain, ...). The store itself is an external
// collaborator; MemoryStore is the in-process default.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// MemoryStore keeps the token in memory only. Suitable for a single online
// session, which is all this client supports.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Session is the shared signed-in context: bearer token, user profile and a
// set of logout listeners. Safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	store     TokenStore
	token     string
	user      model.Profile
	listeners []func()
}

// New creates a session backed by the given store, restoring any previously
// saved token.
func New(store TokenStore) *Session {
	if store == nil {
		store = &MemoryStore{}
	}
	s := &Session{store: store}
	if tok, err := store.Load(); err == nil {
		s.token = tok
	}
	return s
}

// SignIn records the token and profile from a successful login.
func (s *Session) SignIn(res model.LoginResult) error {
	s.mu.Lock()
	s.token = res.Token
	s.user = res.User
	s.mu.Unlock()
	return s.store.Save(res.Token)
}

// Token returns the current bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in profile.
func (s *Session) User() model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser replaces the cached profile (after a profile update round-trip).
func (s *Session) SetUser(p model.Profile) {
	s.mu.Lock()
	s.user = p
	s.mu.Unlock()
}

// SignedIn reports whether a token is held.
func (s *Session) SignedIn() bool {
	return s.Token() != ""
}

// OnLogout registers a listener invoked exactly once per logout transition.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Logout clears credentials and notifies listeners. Calling it while already
// signed out is a no-op, so a burst of 401s produces a single transition.
func (s *Session) Logout() {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.token = ""
	s.user = model.Profile{}
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	_ = s.store.Clear()
	for _, fn := range listeners {
		fn()
	}
}

// Expired reports whether the held token is a JWT whose exp claim has passed.
// The signature is not verified here; the server remains the authority and
// this is only a local fast path to avoid a doomed request. Opaque
// (non-JWT) tokens are never considered expired locally.
func (s *Session) Expired() bool {
	tok := s.Token()
	if tok == "" {
		return true
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}
