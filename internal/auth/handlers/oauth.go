package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"accrete-server/internal/auth"
	"accrete-server/internal/auth/providers"
	"accrete-server/internal/shared/cookies"
	"accrete-server/internal/shared/errors"
	"accrete-server/internal/shared/response"
)

const exchangeTimeout = 30 * time.Second

// OAuthHandler drives the authorization code flow for one provider and
// exchanges a successful login for a session cookie.
type OAuthHandler struct {
	provider    providers.OAuthProvider
	states      *auth.StateManager
	issuer      *auth.TokenIssuer
	isAdmin     func(login string) bool
	frontendURL string
	configured  bool
}

type OAuthHandlerConfig struct {
	Provider    providers.OAuthProvider
	States      *auth.StateManager
	Issuer      *auth.TokenIssuer
	IsAdmin     func(login string) bool
	FrontendURL string
	Configured  bool
}

func NewOAuthHandler(cfg OAuthHandlerConfig) *OAuthHandler {
	isAdmin := cfg.IsAdmin
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &OAuthHandler{
		provider:    cfg.Provider,
		states:      cfg.States,
		issuer:      cfg.Issuer,
		isAdmin:     isAdmin,
		frontendURL: cfg.FrontendURL,
		configured:  cfg.Configured,
	}
}

// HandleAuth redirects the browser to the provider's consent page.
func (h *OAuthHandler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	logger := slog.With(
		"handler", "oauth_init",
		"provider", h.provider.Name(),
		"user_agent", r.UserAgent(),
		"ip", r.RemoteAddr,
	)

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	if !h.configured {
		response.Error(w, r, logger, errors.WrapExternal(
			"OAuth is not configured", fmt.Errorf("%s client credentials missing", h.provider.Name())))
		return
	}

	state, err := h.states.GenerateState(h.provider.Name(), r.UserAgent())
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to initialize OAuth flow", err))
		return
	}

	logger.Info("Initiating OAuth flow")
	http.Redirect(w, r, h.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// HandleCallback validates the state, resolves the user and sets the session
// cookie before sending the browser back to the frontend.
func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code := q.Get("code")
	state := q.Get("state")

	logger := slog.With(
		"handler", "oauth_callback",
		"provider", h.provider.Name(),
		"ip", r.RemoteAddr,
		"has_code", code != "",
		"has_state", state != "",
	)

	if oauthErr := q.Get("error"); oauthErr != "" {
		logger.Warn("OAuth authorization denied",
			"oauth_error", oauthErr,
			"error_description", q.Get("error_description"))
		h.redirectWithError(w, r, "oauth_denied", "Authorization was denied")
		return
	}

	if code == "" {
		logger.Warn("OAuth callback missing authorization code")
		h.redirectWithError(w, r, "oauth_error", "Missing authorization code")
		return
	}

	if err := h.states.ValidateState(state, h.provider.Name(), r.UserAgent()); err != nil {
		logger.Warn("OAuth state validation failed", "error", err)
		h.redirectWithError(w, r, "oauth_error", "Invalid request state")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), exchangeTimeout)
	defer cancel()

	token, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code", "error", err)
		h.redirectWithError(w, r, "oauth_error", "Failed to exchange authorization code")
		return
	}

	user, err := h.provider.GetUserInfo(ctx, token)
	if err != nil {
		logger.Error("Failed to get user info", "error", err)
		h.redirectWithError(w, r, "oauth_error", "Failed to retrieve user information")
		return
	}

	role := auth.RoleUser
	if h.isAdmin(user.Login) {
		role = auth.RoleAdmin
	}

	jwtToken, err := h.issuer.Generate(user.Login, user.Name, user.AvatarURL, role)
	if err != nil {
		logger.Error("Failed to generate JWT", "error", err, "login", user.Login)
		h.redirectWithError(w, r, "auth_error", "Failed to create authentication token")
		return
	}

	cookies.SetAuthCookie(w, jwtToken)

	logger.Info("OAuth authentication successful", "login", user.Login, "role", role)
	http.Redirect(w, r, h.frontendURL+"/auth/callback?success=true", http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, errorType, message string) {
	v := url.Values{}
	v.Set("error", errorType)
	v.Set("message", message)
	http.Redirect(w, r, h.frontendURL+"/auth/error?"+v.Encode(), http.StatusTemporaryRedirect)
}
