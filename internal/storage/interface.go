package storage

import (
	"context"
	"time"

	"github.com/mcoot/matrixgame/internal/model"
)

// Storage defines the interface for relational data persistence.
// Implementations enforce uniqueness and participant checks themselves and
// report violations as *ConstraintError.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)

	// Game operations
	CreateGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGameByName(ctx context.Context, name string) (*model.Game, error)
	// ListGames returns games in storage order; an empty status means all games
	ListGames(ctx context.Context, status model.GameStatus) ([]*model.Game, error)
	// MarkGameStarted sets started_at only if it is unset. Returns false when
	// the game was already started.
	MarkGameStarted(ctx context.Context, id model.GameID, at time.Time) (bool, error)
	// MarkGameCompleted sets completed_at only if the game is started and not
	// yet completed. Returns false otherwise.
	MarkGameCompleted(ctx context.Context, id model.GameID, at time.Time) (bool, error)

	Close() error
}

// SessionStore holds server-side sessions keyed by token
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	// DeleteSession is a no-op for unknown tokens
	DeleteSession(ctx context.Context, token string) error
}
