package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/matrixgame/internal/api/middleware"
	"github.com/mcoot/matrixgame/internal/api/request"
	"github.com/mcoot/matrixgame/internal/api/response"
	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/services/auth"
	"github.com/mcoot/matrixgame/internal/services/user"
)

// UserHandler handles user-related endpoints
type UserHandler struct {
	authService *auth.Service
	userService *user.Service
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service, userService *user.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		logger:      logger,
	}
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.authService.Register(r.Context(), req.ToInput())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(u))
}

// Get handles GET /api/v1/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	u, err := h.userService.GetUser(r.Context(), model.UserID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	if current := middleware.GetUser(r.Context()); current != nil && current.ID == u.ID {
		response.JSON(w, http.StatusOK, response.UserFromModel(u))
		return
	}
	response.JSON(w, http.StatusOK, response.PublicUserFromModel(u))
}
