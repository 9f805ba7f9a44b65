package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/matrixgame/internal/services/auth"
	"github.com/mcoot/matrixgame/internal/services/game"
	"github.com/mcoot/matrixgame/internal/services/user"
	"github.com/mcoot/matrixgame/internal/web/handler"
	"github.com/mcoot/matrixgame/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	UserService    *user.Service
	GameController *game.Controller
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.GameController, cfg.Logger)
	sessionHandler := handler.NewSessionHandler(cfg.AuthService, cfg.Logger)
	userHandler := handler.NewUserHandler(cfg.AuthService, cfg.UserService, cfg.Logger)

	// Health check, no session lookup
	r.HandleFunc("/up", handler.Up).Methods(http.MethodGet)

	// Pages (optional auth for showing the user in nav)
	pages := r.NewRoute().Subrouter()
	pages.Use(flashMiddleware)
	pages.Use(optionalAuthMiddleware)

	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	// Registration
	pages.HandleFunc("/signup", userHandler.New).Methods(http.MethodGet)
	pages.HandleFunc("/signup", userHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/users/new", userHandler.New).Methods(http.MethodGet)
	pages.HandleFunc("/users", userHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/users/{id:[0-9]+}", userHandler.Show).Methods(http.MethodGet)

	// Login and logout
	pages.HandleFunc("/login", sessionHandler.New).Methods(http.MethodGet)
	pages.HandleFunc("/login", sessionHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/logout", sessionHandler.Destroy).Methods(http.MethodDelete)

	// Unmatched paths get the HTML 404 page with the usual middleware
	r.NotFoundHandler = recoveryMiddleware(loggingMiddleware(
		flashMiddleware(optionalAuthMiddleware(http.HandlerFunc(handler.NotFound))),
	))

	// Method override has to see the request before routing
	return middleware.MethodOverride(r)
}
