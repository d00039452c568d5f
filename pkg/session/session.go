// Package session holds the authenticated viewer for the lifetime of a
// command. The HTTP client asks the session for a token on every request.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/snapshare/cli/pkg/credentials"
	"github.com/snapshare/cli/pkg/logger"
)

var (
	// ErrNoSession is returned when no token has been stored
	ErrNoSession = errors.New("not logged in")
	// ErrExpired is returned once the token is past its expiry
	ErrExpired = errors.New("session expired")
)

// Session is the explicit auth context passed to the API client
type Session struct {
	mu    sync.RWMutex
	creds *credentials.Credentials
	now   func() time.Time
}

// New wraps credentials in a session. A nil creds yields an anonymous session
// whose Token always fails with ErrNoSession.
func New(creds *credentials.Credentials) *Session {
	return &Session{creds: creds, now: time.Now}
}

// Load builds a session from the credentials file
func Load() (*Session, error) {
	creds, err := credentials.Load()
	if err != nil {
		return nil, err
	}
	return New(creds), nil
}

// Token returns the bearer token for the next request
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.creds == nil || s.creds.AccessToken == "" {
		return "", ErrNoSession
	}
	if !s.creds.ExpiresAt.IsZero() && s.now().After(s.creds.ExpiresAt) {
		return "", ErrExpired
	}
	return s.creds.AccessToken, nil
}

// ViewerID is the identifier of the logged-in user, empty when unknown
func (s *Session) ViewerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.UserID
}

// Username of the logged-in user
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.Username
}

// ExpiresAt reports the token expiry; zero when unknown
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return time.Time{}
	}
	return s.creds.ExpiresAt
}

// SetViewer records who the token belongs to
func (s *Session) SetViewer(userID, username, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		s.creds = &credentials.Credentials{}
	}
	s.creds.UserID = userID
	s.creds.Username = username
	s.creds.Email = email
}

// Invalidate drops the token after the server rejected it
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds != nil {
		logger.Debug("Invalidating session", "user_id", s.creds.UserID)
		s.creds.AccessToken = ""
	}
}

// Credentials returns a copy of the current credentials
func (s *Session) Credentials() credentials.Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return credentials.Credentials{}
	}
	return *s.creds
}

// Claims are the token fields the client cares about
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}

// ParseClaims reads claims from a JWT without verifying its signature. The
// server stays the authority; this only tells the client when to stop
// sending a dead token and who the viewer is.
func ParseClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, err
	}

	var c Claims
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	for _, key := range []string{"id", "_id", "userId"} {
		if v, ok := mc[key].(string); ok && v != "" {
			c.UserID = v
			break
		}
	}
	if c.UserID == "" {
		c.UserID, _ = mc.GetSubject()
	}
	return c, nil
}

// FromToken builds credentials for a raw token. Opaque (non-JWT) tokens are
// accepted with no expiry and no viewer id.
func FromToken(token string) *credentials.Credentials {
	creds := &credentials.Credentials{AccessToken: token}
	claims, err := ParseClaims(token)
	if err != nil {
		logger.Debug("Token is not a readable JWT", "error", err)
		return creds
	}
	creds.ExpiresAt = claims.ExpiresAt
	creds.UserID = claims.UserID
	return creds
}

// IsSessionError reports whether err means the viewer must log in again
func IsSessionError(err error) bool {
	return errors.Is(err, ErrNoSession) || errors.Is(err, ErrExpired)
}
