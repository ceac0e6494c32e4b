package server

import (
	"log/slog"
	"net/http"

	"accrete-server/internal/auth"
	authHandlers "accrete-server/internal/auth/handlers"
	"accrete-server/internal/auth/providers"
	"accrete-server/internal/middleware"
	"accrete-server/internal/planet"
	planetHandlers "accrete-server/internal/planet/handlers"
	serverHandlers "accrete-server/internal/server/handlers"
	"accrete-server/internal/shared/config"
	sharedredis "accrete-server/internal/shared/redis"
	"accrete-server/internal/system"
	systemHandlers "accrete-server/internal/system/handlers"
)

type Routes struct {
	db            serverHandlers.Pinger
	redis         *sharedredis.Client
	systemService *system.Service
	planetService *planet.Service
	issuer        *auth.TokenIssuer
	states        *auth.StateManager
	limiter       *middleware.RateLimiter
	cfg           *config.Config
}

type RoutesConfig struct {
	DB            serverHandlers.Pinger
	Redis         *sharedredis.Client
	SystemService *system.Service
	PlanetService *planet.Service
	Issuer        *auth.TokenIssuer
	States        *auth.StateManager
	Limiter       *middleware.RateLimiter
	Config        *config.Config
}

func NewRoutes(rc RoutesConfig) *Routes {
	return &Routes{
		db:            rc.DB,
		redis:         rc.Redis,
		systemService: rc.SystemService,
		planetService: rc.PlanetService,
		issuer:        rc.Issuer,
		states:        rc.States,
		limiter:       rc.Limiter,
		cfg:           rc.Config,
	}
}

// Setup builds the route table. CORS is applied by the caller.
func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.redis)
	systemHandler := systemHandlers.NewSystemHandler(r.systemService)
	planetHandler := planetHandlers.NewPlanetHandler(r.planetService)
	githubHandler := authHandlers.NewOAuthHandler(authHandlers.OAuthHandlerConfig{
		Provider:    providers.NewGitHubProvider(r.cfg.OAuth.GitHub),
		States:      r.states,
		Issuer:      r.issuer,
		IsAdmin:     r.cfg.IsAdmin,
		FrontendURL: r.cfg.Frontend.URL,
		Configured:  r.cfg.GitHubOAuthConfigured(),
	})

	requireUser := middleware.JWTMiddleware(r.issuer)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.Handle("/api/generate", r.limiter.Middleware(http.HandlerFunc(systemHandler.Generate)))
	mux.HandleFunc("GET /api/systems", systemHandler.List)
	mux.HandleFunc("GET /api/systems/{id}", systemHandler.Get)
	mux.HandleFunc("/api/systems/{id}/report", systemHandler.Report)
	mux.HandleFunc("/api/systems/{id}/bodies", planetHandler.GetBySystemID)

	// Protected endpoints (authenticated users)
	mux.Handle("POST /api/systems", r.limiter.Middleware(requireUser(http.HandlerFunc(systemHandler.Create))))
	mux.Handle("/auth/me", requireUser(http.HandlerFunc(authHandlers.Me)))

	// Admin-only endpoints
	mux.Handle("DELETE /api/systems/{id}", middleware.RequireAdmin(r.issuer, http.HandlerFunc(systemHandler.Delete)))

	// OAuth endpoints
	mux.HandleFunc("/auth/github", githubHandler.HandleAuth)
	mux.HandleFunc("/auth/github/callback", githubHandler.HandleCallback)
	mux.HandleFunc("/auth/logout", authHandlers.Logout)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/generate", "/api/systems", "/api/systems/{id}", "/api/systems/{id}/report", "/api/systems/{id}/bodies"},
		"protected_endpoints", []string{"POST /api/systems", "/auth/me"},
		"admin_endpoints", []string{"DELETE /api/systems/{id}"},
		"auth_endpoints", []string{"/auth/github", "/auth/logout"},
	)

	return mux
}
