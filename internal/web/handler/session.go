package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/services/auth"
	"github.com/mcoot/matrixgame/internal/web/middleware"
	"github.com/mcoot/matrixgame/internal/web/templates/pages"
)

// Page messages for login and logout
const (
	msgLoggedIn           = "Logged in successfully!"
	msgLoggedOut          = "Logged out successfully!"
	msgInvalidCredentials = "Invalid email or password"
)

// SessionHandler handles login and logout
type SessionHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(authService *auth.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		authService: authService,
		logger:      logger,
	}
}

// New renders the login page
func (h *SessionHandler) New(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		// Already logged in, redirect to home
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	render(w, r, http.StatusOK, pages.Login(pages.LoginData{PageData: pageData(r, "Log In")}))
}

// Create handles login form submission
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	session, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, model.ErrInvalidCredentials) {
			serverError(w, r, h.logger, "login failed", err)
			return
		}
		h.renderLoginError(w, r, email)
		return
	}

	// Drop any session this browser already held
	_ = h.authService.Logout(r.Context(), middleware.SessionToken(r))

	middleware.SetSessionCookie(w, session.Token, session.ExpiresAt)
	redirectWithNotice(w, r, "/", msgLoggedIn)
}

// Destroy logs out. It succeeds whether or not anyone was logged in.
func (h *SessionHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.SessionToken(r)); err != nil {
		h.logger.Error("failed to delete session", slog.String("error", err.Error()))
	}

	middleware.ClearSessionCookie(w)
	redirectWithNotice(w, r, "/", msgLoggedOut)
}

func (h *SessionHandler) renderLoginError(w http.ResponseWriter, r *http.Request, email string) {
	data := pages.LoginData{
		PageData: pageData(r, "Log In"),
		Email:    email,
	}
	data.Alert = msgInvalidCredentials
	render(w, r, http.StatusUnprocessableEntity, pages.Login(data))
}
