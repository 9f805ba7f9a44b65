package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/matrixgame/internal/dependencies/clock"
	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/services/user"
	"github.com/mcoot/matrixgame/internal/storage"
)

// ErrInvalidSession is returned for unknown, expired or orphaned session tokens
var ErrInvalidSession = errors.New("invalid or expired session")

// Session is an authenticated session together with its user
type Session struct {
	model.Session
	User *model.User
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 7 * 24 * time.Hour,
	}
}

// Service handles login, logout and session validation
type Service struct {
	users    *user.Service
	sessions storage.SessionStore
	clock    clock.Clock
	logger   *slog.Logger

	sessionDuration time.Duration
}

// New creates a new auth Service
func New(users *user.Service, sessions storage.SessionStore, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		users:           users,
		sessions:        sessions,
		clock:           clock,
		logger:          logger,
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates an account and opens a session for it
func (s *Service) Register(ctx context.Context, input user.RegistrationInput) (*Session, error) {
	u, err := s.users.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.StartSession(ctx, u)
}

// Login authenticates by email and password and opens a session.
// Any failure is model.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			s.logger.Info("login failed")
		}
		return nil, err
	}
	return s.StartSession(ctx, u)
}

// Logout ends the session. Unknown or empty tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}

// StartSession opens a new session for an already authenticated user
func (s *Service) StartSession(ctx context.Context, u *model.User) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	session := &Session{
		Session: model.Session{
			Token:     token,
			UserID:    u.ID,
			CreatedAt: now,
			ExpiresAt: now.Add(s.sessionDuration),
		},
		User: u,
	}

	if err := s.sessions.SaveSession(ctx, &session.Session); err != nil {
		s.logger.Error("failed to save session",
			slog.Int64("user_id", int64(u.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("session started", slog.Int64("user_id", int64(u.ID)))
	return session, nil
}

// ValidateSession checks a token and returns the session it names.
// Expired sessions are removed.
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		_ = s.sessions.DeleteSession(ctx, token)
		return nil, ErrInvalidSession
	}

	return session, nil
}

// CurrentUser returns the user for a session token
func (s *Service) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			_ = s.sessions.DeleteSession(ctx, token)
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return u, nil
}

// generateToken returns a random URL-safe session token
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
