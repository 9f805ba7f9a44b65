package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/matrixgame/internal/services/game"
	"github.com/mcoot/matrixgame/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	gameController *game.Controller
	logger         *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(gameController *game.Controller, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	upcoming, err := h.gameController.ListUpcoming(ctx)
	if err != nil {
		serverError(w, r, h.logger, "failed to list games", err)
		return
	}
	inProgress, err := h.gameController.ListInProgress(ctx)
	if err != nil {
		serverError(w, r, h.logger, "failed to list games", err)
		return
	}
	completed, err := h.gameController.ListCompleted(ctx)
	if err != nil {
		serverError(w, r, h.logger, "failed to list games", err)
		return
	}

	data := pages.HomeData{
		PageData:   pageData(r, "Home"),
		Upcoming:   upcoming,
		InProgress: inProgress,
		Completed:  completed,
	}
	render(w, r, http.StatusOK, pages.Home(data))
}
