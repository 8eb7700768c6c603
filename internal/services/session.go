// Session management: token acquisition with login -> magic-link fallback.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rossw/tvrx/internal/shared"
	"golang.org/x/oauth2"
)

// SessionManager acquires and holds the bearer token for one user email.
// The token, once obtained, is immutable for the process lifetime: no
// refresh, no expiry tracking. If the server-side token expires, calls fail
// and surface as authentication errors; the manager never retries.
type SessionManager struct {
	gateway Gateway
	email   string
	token   string
}

// NewSessionManager creates a session manager for the given email.
func NewSessionManager(gateway Gateway, email string) *SessionManager {
	return &SessionManager{gateway: gateway, email: email}
}

// Acquire obtains a bearer token, trying the primary login endpoint first
// and falling back to the magic-link endpoint with the same email. Both
// failing is terminal: the error wraps [shared.ErrAuthFailed] and callers
// must not retry. Acquire is idempotent; a held token is returned as-is.
func (s *SessionManager) Acquire(ctx context.Context) (string, error) {
	if s.token != "" {
		return s.token, nil
	}

	token, loginErr := s.gateway.Login(ctx, s.email)
	if loginErr != nil {
		var magicErr error
		token, magicErr = s.gateway.Magic(ctx, s.email)
		if magicErr != nil {
			return "", fmt.Errorf("%w: login: %v; magic: %v", shared.ErrAuthFailed, loginErr, magicErr)
		}
	}

	s.token = token
	return s.token, nil
}

// Token returns the held bearer token, or [shared.ErrNotAuthenticated] if
// Acquire has not succeeded yet.
func (s *SessionManager) Token() (string, error) {
	if s.token == "" {
		return "", shared.ErrNotAuthenticated
	}
	return s.token, nil
}

// Email returns the session email.
func (s *SessionManager) Email() string {
	return s.email
}

// HTTPClient returns an [http.Client] that injects the bearer token on every
// request, backed by a static [oauth2.TokenSource]. Useful for raw calls
// outside the typed gateway.
func (s *SessionManager) HTTPClient(ctx context.Context) (*http.Client, error) {
	if s.token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src), nil
}
