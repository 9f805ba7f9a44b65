package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/matrixgame/internal/dependencies/clock"
	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/storage"
	"github.com/mcoot/matrixgame/internal/validation"
)

// maxPasswordBytes is the most bcrypt will hash
const maxPasswordBytes = 72

// RegistrationInput is the whitelisted set of registration fields
type RegistrationInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,mailbox"`
	Password string `json:"password" validate:"required,min=6"`
	// PasswordConfirmation is only checked when supplied
	PasswordConfirmation *string `json:"password_confirmation"`
}

// Config holds configuration for the user service
type Config struct {
	BcryptCost int
}

// DefaultConfig returns default user configuration
func DefaultConfig() Config {
	return Config{
		BcryptCost: bcrypt.DefaultCost,
	}
}

// Service manages user accounts and credentials
type Service struct {
	storage    storage.Storage
	clock      clock.Clock
	bcryptCost int
	dummyHash  []byte
	logger     *slog.Logger
}

// New creates a new user Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}

	// Compared against for unknown emails so both login failure paths
	// take the same time
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cfg.BcryptCost)
	if err != nil {
		panic(fmt.Sprintf("user: generate dummy hash: %v", err))
	}

	return &Service{
		storage:    storage,
		clock:      clock,
		bcryptCost: cfg.BcryptCost,
		dummyHash:  dummyHash,
		logger:     logger,
	}
}

// Register validates the input and creates a user with a hashed password.
// Violations are returned as *model.ValidationError.
func (s *Service) Register(ctx context.Context, input RegistrationInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	ve := validation.Struct(input)
	if len(input.Password) > maxPasswordBytes && !ve.Has("password") {
		ve.Add("password", fmt.Sprintf(model.MsgTooLongFormat, fmt.Sprint(maxPasswordBytes)))
	}
	if input.PasswordConfirmation != nil && *input.PasswordConfirmation != input.Password {
		ve.Add("password_confirmation", model.MsgConfirmation)
	}

	username := strings.ToLower(input.Username)
	email := strings.ToLower(input.Email)

	if !ve.Has("username") {
		if err := s.checkTaken(ctx, ve, "username", s.storage.GetUserByUsername, username); err != nil {
			return nil, err
		}
	}
	if !ve.Has("email") {
		if err := s.checkTaken(ctx, ve, "email", s.storage.GetUserByEmail, email); err != nil {
			return nil, err
		}
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.clock.Now()
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if ce, ok := storage.AsConstraint(err); ok && ce.Kind == storage.ConstraintUnique {
			// Lost a race with a concurrent registration
			return nil, model.NewFieldError(ce.Field, model.MsgTaken)
		}
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", int64(user.ID)),
		slog.String("username", user.Username),
	)

	return user, nil
}

func (s *Service) checkTaken(
	ctx context.Context,
	ve *model.ValidationError,
	field string,
	lookup func(context.Context, string) (*model.User, error),
	value string,
) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		ve.Add(field, model.MsgTaken)
		return nil
	case errors.Is(err, model.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// Authenticate checks an email and password pair. Every failure returns
// model.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}
