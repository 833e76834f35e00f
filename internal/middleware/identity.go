package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserIDHeader            = "X-User-ID"

	maxUserIDLength = 128
)

// UserIdentity attaches the caller's user id to the context. The id comes
// from the X-User-ID header and defaults to defaultUserID. It only scopes
// sessions and progress; it is not authentication.
func UserIdentity(defaultUserID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if userID == "" {
				userID = defaultUserID
			}
			if len(userID) > maxUserIDLength || strings.ContainsAny(userID, " \t\r\n:") {
				writeError(w, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user id", r)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts user_id from request context
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}
