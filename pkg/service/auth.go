package service

import (
	"context"
	"time"

	"github.com/snapshare/cli/pkg/api"
	"github.com/snapshare/cli/pkg/credentials"
	clierrors "github.com/snapshare/cli/pkg/errors"
	"github.com/snapshare/cli/pkg/logger"
	"github.com/snapshare/cli/pkg/output"
	"github.com/snapshare/cli/pkg/session"
)

type AuthService struct {
	env *Env
}

// NewAuthService creates a new auth service
func NewAuthService(env *Env) *AuthService {
	return &AuthService{env: env}
}

// Login stores token as the session. The token is read from the prompt when
// empty, and the viewer it belongs to is looked up before anything is saved.
func (s *AuthService) Login(ctx context.Context, token string) error {
	if current := s.env.Session; current != nil {
		if creds := current.Credentials(); creds.IsValid() {
			s.env.printer().Warning("Already logged in as %s, replacing the stored token", current.Username())
		}
	}

	if token == "" {
		var err error
		token, err = s.env.Prompt.PromptPassword("Access token: ")
		if err != nil {
			return err
		}
	}
	if token == "" {
		return clierrors.ValidationError("token", "cannot be empty")
	}

	creds := session.FromToken(token)
	if creds.IsExpired() {
		return clierrors.SessionExpiredError()
	}

	sess := session.New(creds)
	profile, err := s.env.Connect(sess).GetProfile(ctx, "")
	if err != nil {
		logger.Error("Token check failed", "error", err)
		if api.IsUnauthorized(err) {
			return clierrors.AuthError("The access token was rejected")
		}
		return err
	}
	if creds.UserID != "" && profile.ID != "" && creds.UserID != profile.ID {
		logger.Warn("Token subject differs from profile", "token_user", creds.UserID, "profile_user", profile.ID)
	}
	sess.SetViewer(profile.ID, profile.Username, profile.Email)

	stored := sess.Credentials()
	if err := credentials.Save(&stored); err != nil {
		return err
	}
	s.env.Session = sess
	s.env.API = s.env.Connect(sess)

	s.env.printer().Success("✓ Logged in as %s", profile.Username)
	return nil
}

// Logout removes the stored token
func (s *AuthService) Logout() error {
	if err := credentials.Delete(); err != nil {
		return err
	}
	if s.env.Session != nil {
		s.env.Session.Invalidate()
	}
	s.env.printer().Success("✓ Logged out")
	return nil
}

// Status prints who is logged in and until when
func (s *AuthService) Status() error {
	sess := s.env.Session
	if sess == nil {
		return clierrors.AuthError("You are not logged in")
	}
	if _, err := sess.Token(); err != nil {
		return err
	}

	expires := "never"
	if at := sess.ExpiresAt(); !at.IsZero() {
		expires = at.Local().Format(time.RFC1123)
	}
	creds := sess.Credentials()
	// the token itself is never printed
	doc := map[string]interface{}{
		"username":   creds.Username,
		"user_id":    creds.UserID,
		"email":      creds.Email,
		"expires_at": creds.ExpiresAt,
	}
	return s.env.printer().Record("Session", doc, []output.Field{
		{Key: "Username", Value: creds.Username},
		{Key: "User ID", Value: creds.UserID},
		{Key: "Email", Value: creds.Email},
		{Key: "Expires", Value: expires},
	})
}
