package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/security"
	"partsphere-backend/internal/service"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFrom extracts the authenticated user from the request context.
func UserIDFrom(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(userIDKey).(int32)
	return id, ok
}

// authMiddleware validates the bearer token and stashes the caller's user id
// in the request context.
func authMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondErrorCode(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondErrorCode(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// adminMiddleware allows only accounts flagged as platform admins. It runs
// after authMiddleware.
func adminMiddleware(auth service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFrom(r.Context())
			if !ok {
				respondErrorCode(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}
			user, err := auth.Me(r.Context(), userID)
			if err != nil || !user.IsAdmin {
				respondErrorCode(w, http.StatusForbidden, "forbidden", "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// loggingMiddleware records one line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
