package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/finsight-app/finsight/internal/api"
	"github.com/finsight-app/finsight/internal/types"
)

// Define typed context keys
type contextKey string

const claimsKey contextKey = "authClaims"

// Authenticate is middleware to validate bearer tokens on protected routes.
// On success the verified claims are attached to the request context for the
// duration of this request only; identity is never cached across requests.
func Authenticate(tokens *TokenService, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header required")
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				l.WarnContext(ctx, "Invalid Authorization header format")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}

			claims, err := tokens.Verify(headerParts[1])
			if err != nil {
				l.WarnContext(ctx, "Token verification failed", slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusUnauthorized, err.Error())
				return
			}

			ctx = context.WithValue(ctx, claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext returns the verified claims placed by Authenticate.
func GetClaimsFromContext(ctx context.Context) (*types.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*types.Claims)
	return claims, ok
}

// GetUserIDFromContext returns the authenticated user's id, or false when the
// request was not authenticated.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok || claims == nil {
		return 0, false
	}
	return claims.UserID, true
}

// ContextWithClaims attaches claims to ctx; used by handler tests to simulate
// an authenticated request.
func ContextWithClaims(ctx context.Context, claims *types.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
