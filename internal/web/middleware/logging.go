package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/matrixgame/internal/middleware"
)

// Logging creates logging middleware for the web interface
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// MethodOverride lets HTML forms send DELETE via a _method field
func MethodOverride(next http.Handler) http.Handler {
	return middleware.MethodOverride(next)
}
