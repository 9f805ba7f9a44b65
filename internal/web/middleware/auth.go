package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/services/auth"
)

type contextKey string

const (
	userContextKey contextKey = "user"

	// SessionCookieName holds the opaque session token
	SessionCookieName = "session"
)

// GetUser retrieves the authenticated user from the request context
// Returns nil if no user is authenticated
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// WithUser returns a copy of ctx carrying the user
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
// Sets user in context if authenticated, nil otherwise
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := getUserFromSession(r, authService)
			if user == nil {
				if _, err := r.Cookie(SessionCookieName); err == nil {
					// Stale or expired token
					ClearSessionCookie(w)
				}
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func getUserFromSession(r *http.Request, authService *auth.Service) *model.User {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	user, err := authService.CurrentUser(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}

	return user
}

// SessionToken returns the session token sent by the browser, or ""
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie stores the session token in the browser until expiry
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
