package middleware

import (
	"context"
	"net/http"
	"strings"

	"wisewallet/backend/logger"
	"wisewallet/backend/models"
)

// Define context keys
type contextKey string

const UserIDKey contextKey = "user_id"
const UserKey contextKey = "user"

// TokenVerifier resolves a session token to the user it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth verifies the bearer token and puts the user and its id in the
// request context. The user is re-read on every request.
func RequireAuth(verifier TokenVerifier, showDetail bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip auth for OPTIONS requests (CORS preflight)
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, http.StatusUnauthorized, "No token provided", nil, showDetail)
				return
			}

			token := extractToken(authHeader)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "No token provided", nil, showDetail)
				return
			}

			user, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context()).Info("token rejected", "error", err)
				WriteError(w, http.StatusUnauthorized, "Invalid or expired token", err, showDetail)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserKey, user)
			ctx = logger.IntoContext(ctx, logger.FromContext(ctx).With("user_id", user.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken gets the token from the Authorization header
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, "Bearer ")
	if len(parts) != 2 || parts[0] != "" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetUserIDFromContext retrieves the user ID from the request context
func GetUserIDFromContext(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUserFromContext retrieves the verified user from the request context
func GetUserFromContext(r *http.Request) *models.User {
	user, _ := r.Context().Value(UserKey).(*models.User)
	return user
}
