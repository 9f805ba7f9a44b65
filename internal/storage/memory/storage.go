package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/storage"
)

// Storage is an in-memory implementation of the storage interfaces.
// It mirrors the relational constraints of the SQL schema so that the
// services behave the same against either backend.
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	emailIndex    map[string]model.UserID
	nextUserID    model.UserID

	games      map[model.GameID]*model.Game
	gameOrder  []model.GameID
	nameIndex  map[string]model.GameID
	nextGameID model.GameID

	sessions map[string]*model.Session
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		emailIndex:    make(map[string]model.UserID),
		games:         make(map[model.GameID]*model.Game),
		nameIndex:     make(map[string]model.GameID),
		sessions:      make(map[string]*model.Session),
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage      = (*Storage)(nil)
	_ storage.SessionStore = (*Storage)(nil)
)

// Close is a no-op
func (s *Storage) Close() error {
	return nil
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := strings.ToLower(user.Username)
	email := strings.ToLower(user.Email)

	if _, ok := s.usernameIndex[username]; ok {
		return storage.NewUniqueError("users", "username")
	}
	if _, ok := s.emailIndex[email]; ok {
		return storage.NewUniqueError("users", "email")
	}

	s.nextUserID++
	user.ID = s.nextUserID

	stored := *user
	s.users[user.ID] = &stored
	s.usernameIndex[username] = user.ID
	s.emailIndex[email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	c := *user
	return &c, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	id, ok := s.usernameIndex[strings.ToLower(username)]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.GetUser(ctx, id)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.GetUser(ctx, id)
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case game.MaxParticipants <= 0:
		return storage.NewCheckError("games", storage.CheckMaxParticipantsPositive)
	case game.MinParticipants <= 0:
		return storage.NewCheckError("games", storage.CheckMinParticipantsPositive)
	case game.MaxParticipants < game.MinParticipants:
		return storage.NewCheckError("games", storage.CheckMaxGteMinParticipants)
	}
	if _, ok := s.nameIndex[game.Name]; ok {
		return storage.NewUniqueError("games", "name")
	}

	s.nextGameID++
	game.ID = s.nextGameID

	s.games[game.ID] = game.Clone()
	s.gameOrder = append(s.gameOrder, game.ID)
	s.nameIndex[game.Name] = game.ID
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	s.mu.RLock()
	id, ok := s.nameIndex[name]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return s.GetGame(ctx, id)
}

func (s *Storage) ListGames(ctx context.Context, status model.GameStatus) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*model.Game, 0, len(s.gameOrder))
	for _, id := range s.gameOrder {
		game := s.games[id]
		if status != "" && game.Status() != status {
			continue
		}
		games = append(games, game.Clone())
	}
	return games, nil
}

func (s *Storage) MarkGameStarted(ctx context.Context, id model.GameID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return false, model.ErrGameNotFound
	}
	return game.Start(at), nil
}

func (s *Storage) MarkGameCompleted(ctx context.Context, id model.GameID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return false, model.ErrGameNotFound
	}
	return game.Complete(at), nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *session
	s.sessions[session.Token] = &stored
	return nil
}

// GetSession returns the stored session. Expiry is left to the caller,
// which owns the clock.
func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	c := *session
	return &c, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
