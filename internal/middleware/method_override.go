package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideField is the form field HTML forms use to send DELETE, PUT or PATCH
const MethodOverrideField = "_method"

// MethodOverride rewrites POST requests carrying a _method form field.
// It must run before routing so the router matches the overridden method.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch m := strings.ToUpper(r.PostFormValue(MethodOverrideField)); m {
			case http.MethodDelete, http.MethodPut, http.MethodPatch:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
