package system

import (
	"fmt"
	"time"

	"accrete-server/internal/accrete"

	"github.com/google/uuid"
)

// System is a generated planetary system saved under a name. Bodies is only
// filled when a single system is fetched.
type System struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Seed         int64          `json:"seed"`
	MaxBodies    int            `json:"max_bodies"`
	IncludeMoons bool           `json:"include_moons"`
	Star         accrete.Star   `json:"star"`
	BodyCount    int            `json:"body_count"`
	CreatedBy    string         `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	Bodies       []accrete.Body `json:"bodies,omitempty"`
}

// Generated returns the stored system in the generator's own shape.
func (s *System) Generated() *accrete.System {
	bodies := s.Bodies
	if bodies == nil {
		bodies = []accrete.Body{}
	}
	return &accrete.System{Seed: s.Seed, Star: s.Star, Bodies: bodies}
}

// GenerateParams fully determine a generated system.
type GenerateParams struct {
	Seed         int64 `json:"seed"`
	MaxBodies    int   `json:"max_bodies"`
	IncludeMoons bool  `json:"include_moons"`
}

// CacheKey is versioned so a change to the generator can retire old entries.
func (p GenerateParams) CacheKey() string {
	return fmt.Sprintf("accrete:system:v1:%d:%d:%t", p.Seed, p.MaxBodies, p.IncludeMoons)
}

// CreateRequest is the body of POST /api/systems. Omitted fields take the
// configured defaults; an omitted seed is drawn at random.
type CreateRequest struct {
	Name         string `json:"name"`
	Seed         *int64 `json:"seed"`
	MaxBodies    *int   `json:"max_bodies"`
	IncludeMoons *bool  `json:"include_moons"`
}
