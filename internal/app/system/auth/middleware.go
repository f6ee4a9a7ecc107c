package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
)

type ctxKey string

const currentUserIDKey ctxKey = "currentUserID"

// CurrentUserID returns the authenticated user's ID from the request
// context and a "found?" flag.
func CurrentUserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(currentUserIDKey).(string)
	return id, ok && id != ""
}

// WithUserID stores a user ID on the request context. Used by the
// middleware and by handler tests that bypass it.
func WithUserID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserIDKey, id))
}

// RequireAuth rejects requests that do not carry a valid bearer token.
// The gate is applied once at the routing layer so every protected route
// behaves the same way.
func (tm *TokenManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			httpjson.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := tm.Parse(strings.TrimSpace(token))
		if err != nil {
			httpjson.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, WithUserID(r, userID))
	})
}
