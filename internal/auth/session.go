package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when a shop has no stored session.
var ErrSessionNotFound = errors.New("session not found")

// Session is the OAuth state held for one authenticated shop.
type Session struct {
	Shop        string    `json:"shop"`
	AccessToken string    `json:"access_token"`
	Scopes      []string  `json:"scopes"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionStore holds merchant sessions keyed by shop domain. It is injected
// into the handlers instead of living in a package-level map so request
// handling stays free of hidden globals.
type SessionStore interface {
	Get(ctx context.Context, shop string) (Session, error)
	Set(ctx context.Context, shop string, s Session) error
	Delete(ctx context.Context, shop string) error
	// Shops lists every shop with a stored session, in no defined order.
	Shops(ctx context.Context) ([]string, error)
}

// InMemorySessionStore is a mutex-guarded SessionStore for tests and
// single-process development.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: map[string]Session{}}
}

func (s *InMemorySessionStore) Get(_ context.Context, shop string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[shop]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *InMemorySessionStore) Set(_ context.Context, shop string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[shop] = sess
	return nil
}

func (s *InMemorySessionStore) Delete(_ context.Context, shop string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, shop)
	return nil
}

func (s *InMemorySessionStore) Shops(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shops := make([]string, 0, len(s.sessions))
	for shop := range s.sessions {
		shops = append(shops, shop)
	}
	return shops, nil
}
