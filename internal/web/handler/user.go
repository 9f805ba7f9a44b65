package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/services/auth"
	"github.com/mcoot/matrixgame/internal/services/user"
	"github.com/mcoot/matrixgame/internal/web/middleware"
	"github.com/mcoot/matrixgame/internal/web/templates/pages"
)

const msgAccountCreated = "Account created successfully!"

// registrationFields are the only form fields registration accepts
var registrationFields = []string{"username", "email", "password", "password_confirmation"}

// ErrMissingUserParams is returned when a registration form carries none of
// the user fields
var ErrMissingUserParams = errors.New("param is missing or the value is empty: user")

// PermitRegistrationParams extracts the whitelisted registration fields.
// Fields may be nested as user[name] or sent bare; anything else, such as
// user[admin], is dropped.
func PermitRegistrationParams(form url.Values) (map[string]string, error) {
	permitted := make(map[string]string, len(registrationFields))
	for _, name := range registrationFields {
		if values, ok := form["user["+name+"]"]; ok && len(values) > 0 {
			permitted[name] = values[0]
			continue
		}
		if values, ok := form[name]; ok && len(values) > 0 {
			permitted[name] = values[0]
		}
	}
	if len(permitted) == 0 {
		return nil, ErrMissingUserParams
	}
	return permitted, nil
}

// registrationInput converts permitted params into service input
func registrationInput(params map[string]string) user.RegistrationInput {
	input := user.RegistrationInput{
		Username: params["username"],
		Email:    params["email"],
		Password: params["password"],
	}
	if confirmation, ok := params["password_confirmation"]; ok {
		input.PasswordConfirmation = &confirmation
	}
	return input
}

// UserHandler handles registration and profile pages
type UserHandler struct {
	authService *auth.Service
	userService *user.Service
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *auth.Service, userService *user.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		logger:      logger,
	}
}

// New renders the registration page
func (h *UserHandler) New(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		// Already logged in, redirect to home
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	render(w, r, http.StatusOK, pages.Signup(pages.SignupData{PageData: pageData(r, "Sign Up")}))
}

// Create handles registration form submission
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	params, err := PermitRegistrationParams(r.PostForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.authService.Register(r.Context(), registrationInput(params))
	if err != nil {
		var ve *model.ValidationError
		if !errors.As(err, &ve) {
			serverError(w, r, h.logger, "registration failed", err)
			return
		}

		data := pages.SignupData{
			PageData: pageData(r, "Sign Up"),
			Username: params["username"],
			Email:    params["email"],
			Errors:   ve,
		}
		render(w, r, http.StatusUnprocessableEntity, pages.Signup(data))
		return
	}

	// Drop any session this browser already held
	_ = h.authService.Logout(r.Context(), middleware.SessionToken(r))

	middleware.SetSessionCookie(w, session.Token, session.ExpiresAt)
	redirectWithNotice(w, r, "/", msgAccountCreated)
}

// Show renders a user's profile
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		NotFound(w, r)
		return
	}

	profile, err := h.userService.GetUser(r.Context(), model.UserID(id))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			NotFound(w, r)
			return
		}
		serverError(w, r, h.logger, "failed to load user", err)
		return
	}

	data := pages.UserData{
		PageData: pageData(r, profile.Username),
		Profile:  profile,
	}
	render(w, r, http.StatusOK, pages.UserShow(data))
}
