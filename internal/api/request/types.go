package request

import (
	"github.com/mcoot/matrixgame/internal/services/game"
	"github.com/mcoot/matrixgame/internal/services/user"
)

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username             string  `json:"username"`
	Email                string  `json:"email"`
	Password             string  `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation,omitempty"`
}

// ToInput converts the request into service input
func (r RegisterRequest) ToInput() user.RegistrationInput {
	return user.RegistrationInput{
		Username:             r.Username,
		Email:                r.Email,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
	}
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	MinParticipants *int   `json:"min_participants"`
	MaxParticipants *int   `json:"max_participants"`
}

// ToInput converts the request into service input
func (r CreateGameRequest) ToInput() game.GameInput {
	return game.GameInput{
		Name:            r.Name,
		Description:     r.Description,
		MinParticipants: r.MinParticipants,
		MaxParticipants: r.MaxParticipants,
	}
}
