package session

import (
	"fmt"
	"sync"
	"time"

	"codeck-client/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Session holds the authenticated user and bearer token for the lifetime of
// the application. Login, Logout and Hydrate are the only writers; every
// reader takes a snapshot under the read lock. A 401 from the backend does
// not clear the session by itself, the shell decides that via
// api.IsUnauthorized.
type Session struct {
	mu    sync.RWMutex
	user  *models.User
	token string
	store Store
}

// New creates an anonymous session backed by store
func New(store Store) *Session {
	return &Session{store: store}
}

// Login stores the authenticated user and token and persists them. The
// in-memory session is established even when persistence fails.
func (s *Session) Login(user models.User, token string) error {
	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	if err := s.store.Save(State{User: &user, Token: token}); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Logout clears the session and the persisted state
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	return nil
}

// Hydrate restores the session from the persisted store on startup. A token
// whose expiry claim is already past is discarded instead of restored.
func (s *Session) Hydrate() error {
	state, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if state == nil || state.User == nil || state.Token == "" {
		return nil
	}
	if tokenExpired(state.Token, time.Now()) {
		log.Info().Str("user_id", state.User.ID).Msg("Persisted token expired, staying anonymous")
		return nil
	}

	s.mu.Lock()
	s.user = state.User
	s.token = state.Token
	s.mu.Unlock()
	return nil
}

// IsAuthenticated reports whether a user is logged in
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// CurrentUser returns a copy of the logged-in user, or nil when anonymous
func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the current bearer token, or "" when anonymous. It satisfies
// api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// tokenExpired checks the token's registered exp claim without verifying the
// signature; the client has no signing key. Tokens that do not parse as JWTs
// or carry no expiry are kept, the backend is the authority on validity.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
