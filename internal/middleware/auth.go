package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"accrete-server/internal/auth"
	"accrete-server/internal/shared/cookies"
	"accrete-server/internal/shared/errors"
	"accrete-server/internal/shared/response"
)

type contextKey string

const UserContextKey contextKey = "user"

// JWTMiddleware rejects requests without a valid session cookie and stores
// the token claims in the request context.
func JWTMiddleware(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "jwt",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			cookie, err := r.Cookie(cookies.AuthCookieName)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := issuer.Validate(cookie.Value)
			if err != nil {
				logger.Debug("Rejected session token", "error", err)
				response.Error(w, r, logger, errors.Unauthorized("invalid token"))
				return
			}

			logger.Debug("JWT authentication successful", "login", claims.Login)
			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(UserContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
