package handlers

import (
	"log/slog"
	"net/http"

	"accrete-server/internal/middleware"
	"accrete-server/internal/shared/cookies"
	"accrete-server/internal/shared/errors"
	"accrete-server/internal/shared/response"
)

type meResponse struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
}

// Me returns the identity carried by the session cookie. It expects to run
// behind the JWT middleware.
func Me(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "auth_me")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("authentication required"))
		return
	}

	response.Success(w, http.StatusOK, meResponse{
		Login:     claims.Login,
		Name:      claims.Name,
		AvatarURL: claims.AvatarURL,
		Role:      string(claims.Role),
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "auth_logout")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	cookies.ClearAuthCookie(w)
	logger.Debug("Auth cookie cleared")
	w.WriteHeader(http.StatusNoContent)
}
