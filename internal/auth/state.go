package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const defaultStateTTL = 10 * time.Minute

// StateManager issues and checks the one-time OAuth state tokens that tie a
// callback to the browser that started the login.
type StateManager struct {
	states map[string]StateEntry
	mutex  sync.Mutex
	ttl    time.Duration
	now    func() time.Time
}

type StateEntry struct {
	CreatedAt time.Time
	Provider  string
	UserAgent string
}

func NewStateManager(ttl time.Duration) *StateManager {
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &StateManager{
		states: make(map[string]StateEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// GenerateState creates a new state token and stores it for validation.
func (sm *StateManager) GenerateState(provider, userAgent string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	sm.mutex.Lock()
	sm.states[state] = StateEntry{
		CreatedAt: sm.now(),
		Provider:  provider,
		UserAgent: userAgent,
	}
	sm.mutex.Unlock()

	slog.Debug("OAuth state token generated", "component", "state_manager", "provider", provider)
	return state, nil
}

// ValidateState consumes state. A token is accepted at most once.
func (sm *StateManager) ValidateState(state, provider, userAgent string) error {
	logger := slog.With("component", "state_manager", "operation", "validate", "provider", provider)

	if state == "" {
		return fmt.Errorf("state token is required")
	}

	sm.mutex.Lock()
	entry, exists := sm.states[state]
	delete(sm.states, state)
	sm.mutex.Unlock()

	if !exists {
		return fmt.Errorf("invalid or expired state token")
	}

	if age := sm.now().Sub(entry.CreatedAt); age > sm.ttl {
		return fmt.Errorf("state token has expired")
	}

	if entry.Provider != provider {
		logger.Warn("State token provider mismatch",
			"expected_provider", entry.Provider,
			"received_provider", provider)
		return fmt.Errorf("state token provider mismatch")
	}

	if entry.UserAgent != userAgent {
		logger.Warn("State token user agent changed during login")
	}

	return nil
}

// Run drops expired tokens every interval until ctx is done.
func (sm *StateManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.cleanupExpiredStates()
		}
	}
}

func (sm *StateManager) cleanupExpiredStates() int {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	now := sm.now()
	expired := 0
	for state, entry := range sm.states {
		if now.Sub(entry.CreatedAt) > sm.ttl {
			delete(sm.states, state)
			expired++
		}
	}

	if expired > 0 {
		slog.Debug("Cleaned up expired state tokens",
			"component", "state_manager",
			"expired_count", expired,
			"remaining_count", len(sm.states))
	}
	return expired
}

// Len reports the number of outstanding tokens.
func (sm *StateManager) Len() int {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	return len(sm.states)
}
