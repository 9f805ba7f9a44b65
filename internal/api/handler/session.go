package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/matrixgame/internal/api/middleware"
	"github.com/mcoot/matrixgame/internal/api/request"
	"github.com/mcoot/matrixgame/internal/api/response"
	"github.com/mcoot/matrixgame/internal/services/auth"
)

// SessionHandler handles login and logout
type SessionHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		authService: authService,
		logger:      logger,
	}
}

// Create handles POST /api/v1/session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Delete handles DELETE /api/v1/session. Logging out without a session is not an error.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.ExtractToken(r)); err != nil {
		h.logger.Error("failed to end session", slog.String("error", err.Error()))
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
