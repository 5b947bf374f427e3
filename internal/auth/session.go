package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
	"github.com/heartmarshall/myenglish-flashcards/pkg/ctxutil"
)

// Session holds the credentials of the signed-in user for the lifetime of
// the process. It is passed explicitly to whoever needs it; there is no
// package-level instance.
type Session struct {
	mu        sync.RWMutex
	token     string
	user      User
	expiresAt time.Time
	now       func() time.Time
}

// NewSession returns an empty, signed-out session.
func NewSession() *Session {
	return &Session{now: time.Now}
}

// Init signs the session in with an access token. Expired tokens are rejected.
func (s *Session) Init(token string) error {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	info, err := parseAccessToken(token)
	if err != nil {
		return fmt.Errorf("auth init: %w: %w", domain.ErrUnauthorized, err)
	}
	if !info.ExpiresAt.IsZero() && !info.ExpiresAt.After(s.now()) {
		return fmt.Errorf("auth init: %w: token expired at %s", domain.ErrUnauthorized, info.ExpiresAt.Format(time.RFC3339))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = info.User
	s.expiresAt = info.ExpiresAt
	return nil
}

// Teardown signs the session out.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = User{}
	s.expiresAt = time.Time{}
}

// Token returns the bearer token, or domain.ErrUnauthorized when signed out or expired.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", domain.ErrUnauthorized
	}
	if !s.expiresAt.IsZero() && !s.expiresAt.After(s.now()) {
		return "", fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
	}
	return s.token, nil
}

// User returns the signed-in user.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

// ExpiresAt returns the token expiry; zero when the token has none.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// WithUser tags ctx with the signed-in user's id for logging.
func (s *Session) WithUser(ctx context.Context) context.Context {
	if u, ok := s.User(); ok {
		return ctxutil.WithUserID(ctx, u.ID)
	}
	return ctx
}
