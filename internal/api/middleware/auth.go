package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/matrixgame/internal/api/apierr"
	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/services/auth"
	webmiddleware "github.com/mcoot/matrixgame/internal/web/middleware"
)

type contextKey string

const userContextKey contextKey = "user"

// Auth creates authentication middleware
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			user, err := authService.CurrentUser(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// OptionalAuth extracts the user if a valid token is present but doesn't require it
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r); token != "" {
				if user, err := authService.CurrentUser(r.Context(), token); err == nil {
					r = r.WithContext(withUser(r.Context(), user))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// ExtractToken reads the bearer token, falling back to the browser session cookie
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return webmiddleware.SessionToken(r)
}

// GetUser returns the authenticated user from the request context
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// MustGetUser returns the authenticated user or panics
func MustGetUser(ctx context.Context) *model.User {
	user := GetUser(ctx)
	if user == nil {
		panic("no user in context - auth middleware not applied?")
	}
	return user
}
