package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fkhayef/friendpay/internal/auth"
	"github.com/fkhayef/friendpay/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey ContextKey = "user_id"
)

// TokenVerifier verifies a bearer token and returns the user ID it carries
type TokenVerifier interface {
	VerifyToken(token string) (int64, error)
}

// Auth returns a middleware that validates the Authorization bearer token
// and attaches the authenticated user ID to the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			userID, err := verifier.VerifyToken(parts[1])
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					response.Unauthorized(w, "Token expired. Please login again.")
					return
				}
				response.Unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the user ID from the request context
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
