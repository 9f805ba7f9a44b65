package response

import (
	"time"

	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/services/auth"
)

// User represents a user in API responses. The password hash never leaves the server.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromModel converts a model.User, including the email
func UserFromModel(u *model.User) User {
	return User{
		ID:        int64(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUserFromModel converts a model.User as seen by someone other than its owner
func PublicUserFromModel(u *model.User) User {
	pu := UserFromModel(u)
	pu.Email = ""
	return pu
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User      `json:"user"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(s.User),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Game represents a game in API responses
type Game struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	MinParticipants int        `json:"min_participants"`
	MaxParticipants int        `json:"max_participants"`
	Status          string     `json:"status"`
	StartedAt       *time.Time `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:              int64(g.ID),
		Name:            g.Name,
		Description:     g.Description,
		MinParticipants: g.MinParticipants,
		MaxParticipants: g.MaxParticipants,
		Status:          string(g.Status()),
		StartedAt:       g.StartedAt,
		CompletedAt:     g.CompletedAt,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

// GameList wraps a list of games
type GameList struct {
	Games []Game `json:"games"`
}

// GameListFromModels converts a slice of games, never producing a null list
func GameListFromModels(games []*model.Game) GameList {
	list := GameList{Games: make([]Game, 0, len(games))}
	for _, g := range games {
		list.Games = append(list.Games, GameFromModel(g))
	}
	return list
}

// Transition is the result of a start or complete request.
// Changed is false when the game was already in (or past) the target state.
type Transition struct {
	Changed bool `json:"changed"`
	Game    Game `json:"game"`
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
