package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/server/auth"
)

const shutdownTimeout = 5 * time.Second

type ctxKey string

const userIDKey ctxKey = "userID"

// requireAuth verifies the bearer token and stores the caller's user id in
// the request context. Missing or invalid credentials end the request with
// 401 before the handler runs.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			s.respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// userIDFromContext returns the verified caller identity set by requireAuth.
func userIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
