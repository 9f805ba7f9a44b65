package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/matrixgame/internal/dependencies/clock"
	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/storage"
	"github.com/mcoot/matrixgame/internal/validation"
)

// GameInput is the set of fields accepted when creating a game.
// Participant counts are pointers so a missing value can be told apart from zero.
type GameInput struct {
	Name            string `json:"name" validate:"required,min=3,max=100"`
	Description     string `json:"description" validate:"required,max=1000"`
	MinParticipants *int   `json:"min_participants" validate:"required,gt=0"`
	MaxParticipants *int   `json:"max_participants" validate:"required,gt=0"`
}

// Controller manages game creation and the lifecycle state machine
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new game Controller
func NewController(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CreateGame validates the input and persists a new upcoming game.
// Violations are returned as *model.ValidationError.
func (c *Controller) CreateGame(ctx context.Context, input GameInput) (*model.Game, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	ve := validation.Struct(input)
	if input.MinParticipants != nil && input.MaxParticipants != nil &&
		*input.MaxParticipants < *input.MinParticipants {
		ve.Add("max_participants", model.MsgMaxGteMin)
	}

	if !ve.Has("name") {
		_, err := c.storage.GetGameByName(ctx, input.Name)
		switch {
		case err == nil:
			ve.Add("name", model.MsgTaken)
		case !errors.Is(err, model.ErrGameNotFound):
			return nil, err
		}
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		Name:            input.Name,
		Description:     input.Description,
		MinParticipants: *input.MinParticipants,
		MaxParticipants: *input.MaxParticipants,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := c.storage.CreateGame(ctx, game); err != nil {
		if ve := constraintToValidation(err); ve != nil {
			return nil, ve
		}
		c.logger.Error("failed to save game",
			slog.String("name", game.Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.Int64("game_id", int64(game.ID)),
		slog.String("name", game.Name),
		slog.Int("min_participants", game.MinParticipants),
		slog.Int("max_participants", game.MaxParticipants),
	)

	return game, nil
}

// constraintToValidation maps a storage constraint failure onto the field
// it protects. Returns nil for any other error.
func constraintToValidation(err error) *model.ValidationError {
	ce, ok := storage.AsConstraint(err)
	if !ok {
		return nil
	}
	switch {
	case ce.Kind == storage.ConstraintUnique:
		return model.NewFieldError(ce.Field, model.MsgTaken)
	case ce.Name == storage.CheckMaxParticipantsPositive:
		return model.NewFieldError("max_participants", fmt.Sprintf(model.MsgGreaterFormat, "0"))
	case ce.Name == storage.CheckMinParticipantsPositive:
		return model.NewFieldError("min_participants", fmt.Sprintf(model.MsgGreaterFormat, "0"))
	case ce.Name == storage.CheckMaxGteMinParticipants:
		return model.NewFieldError("max_participants", model.MsgMaxGteMin)
	}
	return nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// Start moves an upcoming game to in progress. It reports false, with no
// error, when the game had already been started.
func (c *Controller) Start(ctx context.Context, gameID model.GameID) (bool, *model.Game, error) {
	changed, err := c.storage.MarkGameStarted(ctx, gameID, c.clock.Now())
	if err != nil {
		return false, nil, err
	}

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return false, nil, err
	}

	if changed {
		c.logger.Info("game started",
			slog.Int64("game_id", int64(game.ID)),
			slog.Time("started_at", *game.StartedAt),
		)
	}
	return changed, game, nil
}

// Complete moves an in-progress game to completed. It reports false, with
// no error, when the game has not started or is already completed.
func (c *Controller) Complete(ctx context.Context, gameID model.GameID) (bool, *model.Game, error) {
	changed, err := c.storage.MarkGameCompleted(ctx, gameID, c.clock.Now())
	if err != nil {
		return false, nil, err
	}

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return false, nil, err
	}

	if changed {
		c.logger.Info("game completed",
			slog.Int64("game_id", int64(game.ID)),
			slog.Time("completed_at", *game.CompletedAt),
		)
	}
	return changed, game, nil
}

// ListGames returns games in the given status, or all games when status is empty
func (c *Controller) ListGames(ctx context.Context, status model.GameStatus) ([]*model.Game, error) {
	return c.storage.ListGames(ctx, status)
}

// ListUpcoming returns games that have not started
func (c *Controller) ListUpcoming(ctx context.Context) ([]*model.Game, error) {
	return c.ListGames(ctx, model.GameStatusUpcoming)
}

// ListInProgress returns games that have started but not completed
func (c *Controller) ListInProgress(ctx context.Context) ([]*model.Game, error) {
	return c.ListGames(ctx, model.GameStatusInProgress)
}

// ListCompleted returns completed games
func (c *Controller) ListCompleted(ctx context.Context) ([]*model.Game, error) {
	return c.ListGames(ctx, model.GameStatusCompleted)
}
