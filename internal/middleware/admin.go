package middleware

import (
	"log/slog"
	"net/http"

	"accrete-server/internal/auth"
	"accrete-server/internal/shared/errors"
	"accrete-server/internal/shared/response"
)

// AdminMiddleware must run after JWTMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "admin",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		claims := GetUserFromContext(r)
		if claims == nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		if !claims.IsAdmin() {
			logger.Warn("Non-admin user attempted to access admin endpoint",
				"login", claims.Login,
				"role", claims.Role)
			response.Error(w, r, logger, errors.Forbidden("admin access required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(issuer *auth.TokenIssuer, next http.Handler) http.Handler {
	return JWTMiddleware(issuer)(AdminMiddleware(next))
}
