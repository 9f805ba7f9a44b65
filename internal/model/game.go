package model

import "time"

// GameID uniquely identifies a game
type GameID int64

// GameStatus is the lifecycle phase of a game, derived from its timestamps
type GameStatus string

const (
	GameStatusUpcoming   GameStatus = "upcoming"    // Not started
	GameStatusInProgress GameStatus = "in_progress" // Started, not completed
	GameStatusCompleted  GameStatus = "completed"   // Completed (implies started)
)

// ParseGameStatus converts a status string, returning false if unknown
func ParseGameStatus(s string) (GameStatus, bool) {
	switch GameStatus(s) {
	case GameStatusUpcoming, GameStatusInProgress, GameStatusCompleted:
		return GameStatus(s), true
	}
	return "", false
}

// Game is a scheduled game with a participant range
type Game struct {
	ID              GameID
	Name            string
	Description     string
	MinParticipants int
	MaxParticipants int

	// Lifecycle timestamps, immutable once set
	StartedAt   *time.Time
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status derives the lifecycle phase from the timestamps.
// There is deliberately no stored status field.
func (g *Game) Status() GameStatus {
	switch {
	case g.CompletedAt != nil:
		return GameStatusCompleted
	case g.StartedAt != nil:
		return GameStatusInProgress
	default:
		return GameStatusUpcoming
	}
}

// Start marks the game as started at the given time.
// Returns false without changing anything if it has already started.
func (g *Game) Start(at time.Time) bool {
	if g.StartedAt != nil {
		return false
	}
	g.StartedAt = &at
	g.UpdatedAt = at
	return true
}

// Complete marks the game as completed at the given time.
// Returns false without changing anything if it has not started or is already complete.
func (g *Game) Complete(at time.Time) bool {
	if g.StartedAt == nil || g.CompletedAt != nil {
		return false
	}
	g.CompletedAt = &at
	g.UpdatedAt = at
	return true
}

// Clone returns a deep copy, so callers can't mutate stored timestamps
func (g *Game) Clone() *Game {
	c := *g
	if g.StartedAt != nil {
		t := *g.StartedAt
		c.StartedAt = &t
	}
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
