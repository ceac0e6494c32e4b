package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedredis "accrete-server/internal/shared/redis"
	"accrete-server/internal/shared/response"
)

const pingTimeout = 2 * time.Second

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
}

// Pinger is satisfied by *database.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	redis *sharedredis.Client
	now   func() time.Time
}

// NewHealthHandler reports the cache as "memory" when redis is nil.
func NewHealthHandler(db Pinger, redis *sharedredis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, now: time.Now}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	dbStatus := "disconnected"
	if err := h.db.PingContext(ctx); err == nil {
		dbStatus = "connected"
	} else {
		logger.Warn("Database ping failed", "error", err)
	}

	cacheStatus := "memory"
	if h.redis != nil && h.redis.Client != nil {
		cacheStatus = "connected"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			cacheStatus = "disconnected"
			logger.Warn("Redis ping failed", "error", err)
		}
	}

	status := "healthy"
	if dbStatus != "connected" || cacheStatus == "disconnected" {
		status = "degraded"
	}

	response.Success(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Database:  dbStatus,
		Cache:     cacheStatus,
	})
}
