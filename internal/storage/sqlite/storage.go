package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/storage"
)

// Storage is a sqlite-backed implementation of storage.Storage
type Storage struct {
	db *sql.DB
}

var _ storage.Storage = (*Storage)(nil)

// New opens the database at path and applies pending migrations
func New(ctx context.Context, path string) (*Storage, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// User operations

const userColumns = `id, username, email, password_hash, created_at, updated_at`

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO users (username, email, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return translateError("users", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	user.ID = model.UserID(id)
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, int64(id))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *Storage) queryUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	var id int64
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&id, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.ID = model.UserID(id)
	return &u, nil
}

// Game operations

const gameColumns = `id, name, description, min_participants, max_participants,
	started_at, completed_at, created_at, updated_at`

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO games (name, description, min_participants, max_participants,
	started_at, completed_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		game.Name, game.Description, game.MinParticipants, game.MaxParticipants,
		nullTime(game.StartedAt), nullTime(game.CompletedAt), game.CreatedAt, game.UpdatedAt,
	)
	if err != nil {
		return translateError("games", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("game id: %w", err)
	}
	game.ID = model.GameID(id)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, int64(id))
	return scanGame(row)
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE name = ?`, name)
	return scanGame(row)
}

func (s *Storage) ListGames(ctx context.Context, status model.GameStatus) ([]*model.Game, error) {
	var where string
	switch status {
	case "":
	case model.GameStatusUpcoming:
		where = ` WHERE started_at IS NULL`
	case model.GameStatusInProgress:
		where = ` WHERE started_at IS NOT NULL AND completed_at IS NULL`
	case model.GameStatusCompleted:
		where = ` WHERE completed_at IS NOT NULL`
	default:
		return nil, fmt.Errorf("unknown game status %q", status)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+gameColumns+` FROM games`+where+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := []*model.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (s *Storage) MarkGameStarted(ctx context.Context, id model.GameID, at time.Time) (bool, error) {
	return s.markGame(ctx, id, `
UPDATE games SET started_at = ?, updated_at = ?
WHERE id = ? AND started_at IS NULL`, at)
}

func (s *Storage) MarkGameCompleted(ctx context.Context, id model.GameID, at time.Time) (bool, error) {
	return s.markGame(ctx, id, `
UPDATE games SET completed_at = ?, updated_at = ?
WHERE id = ? AND started_at IS NOT NULL AND completed_at IS NULL`, at)
}

func (s *Storage) markGame(ctx context.Context, id model.GameID, query string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, at, at, int64(id))
	if err != nil {
		return false, translateError("games", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	// Nothing changed: distinguish a missing game from a no-op transition
	if _, err := s.GetGame(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*model.Game, error) {
	var g model.Game
	var id int64
	var started, completed sql.NullTime
	err := row.Scan(
		&id, &g.Name, &g.Description, &g.MinParticipants, &g.MaxParticipants,
		&started, &completed, &g.CreatedAt, &g.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan game: %w", err)
	}
	g.ID = model.GameID(id)
	if started.Valid {
		t := started.Time
		g.StartedAt = &t
	}
	if completed.Valid {
		t := completed.Time
		g.CompletedAt = &t
	}
	return &g, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
