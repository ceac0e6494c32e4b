package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sharedredis "accrete-server/internal/shared/redis"

	"github.com/redis/go-redis/v9"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	unreachable := &sharedredis.Client{Client: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})}
	defer unreachable.Close()

	tests := []struct {
		name  string
		db    Pinger
		redis *sharedredis.Client
		want  HealthResponse
	}{
		{"healthy", fakePinger{}, nil, HealthResponse{Status: "healthy", Database: "connected", Cache: "memory"}},
		{"db down", fakePinger{err: errors.New("refused")}, nil, HealthResponse{Status: "degraded", Database: "disconnected", Cache: "memory"}},
		{"redis down", fakePinger{}, unreachable, HealthResponse{Status: "degraded", Database: "connected", Cache: "disconnected"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, tt.redis)
			h.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/server/health", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var got HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			tt.want.Timestamp = "2025-01-02T03:04:05Z"
			if got != tt.want {
				t.Errorf("health = %+v, want %+v", got, tt.want)
			}
		})
	}
}
