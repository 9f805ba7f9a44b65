package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/matrixgame/internal/api/middleware"
	"github.com/mcoot/matrixgame/internal/api/request"
	"github.com/mcoot/matrixgame/internal/api/response"
	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/services/game"
)

// GameHandler handles game endpoints
type GameHandler struct {
	gameController *game.Controller
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// List handles GET /api/v1/games, optionally filtered by ?status=
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	var status model.GameStatus
	if s := r.URL.Query().Get("status"); s != "" {
		var ok bool
		if status, ok = model.ParseGameStatus(s); !ok {
			WriteError(w, NewInvalidRequestError("status must be one of upcoming, in_progress, completed"))
			return
		}
	}

	games, err := h.gameController.ListGames(r.Context(), status)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameListFromModels(games))
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), req.ToInput())
	if err != nil {
		WriteError(w, err)
		return
	}

	h.logger.Info("game created via api",
		slog.Int64("game_id", int64(g.ID)),
		slog.Int64("user_id", int64(middleware.MustGetUser(r.Context()).ID)),
	)
	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), model.GameID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Start handles POST /api/v1/games/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.gameController.Start)
}

// Complete handles POST /api/v1/games/{id}/complete
func (h *GameHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.gameController.Complete)
}

type transitionFunc func(ctx context.Context, id model.GameID) (bool, *model.Game, error)

func (h *GameHandler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	changed, g, err := fn(r.Context(), model.GameID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Transition{
		Changed: changed,
		Game:    response.GameFromModel(g),
	})
}
