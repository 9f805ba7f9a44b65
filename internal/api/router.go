package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/matrixgame/internal/api/apierr"
	"github.com/mcoot/matrixgame/internal/api/handler"
	"github.com/mcoot/matrixgame/internal/api/middleware"
	"github.com/mcoot/matrixgame/internal/services/auth"
	"github.com/mcoot/matrixgame/internal/services/game"
	"github.com/mcoot/matrixgame/internal/services/user"
)

// PathPrefix is where the JSON API is mounted
const PathPrefix = "/api/v1"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	UserService    *user.Service
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.AuthService, cfg.UserService, cfg.Logger)
	sessionHandler := handler.NewSessionHandler(cfg.AuthService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix(PathPrefix).Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// Public routes
	public := api.NewRoute().Subrouter()
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/users", userHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/users/{id:[0-9]+}", userHandler.Get).Methods(http.MethodGet)
	public.HandleFunc("/session", sessionHandler.Create).Methods(http.MethodPost)
	public.HandleFunc("/session", sessionHandler.Delete).Methods(http.MethodDelete)
	public.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	public.HandleFunc("/games/{id:[0-9]+}", gameHandler.Get).Methods(http.MethodGet)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/users/me", userHandler.GetMe).Methods(http.MethodGet)
	protected.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id:[0-9]+}/start", gameHandler.Start).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id:[0-9]+}/complete", gameHandler.Complete).Methods(http.MethodPost)

	notFound := recoveryMiddleware(loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})))
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notFound

	return r
}
