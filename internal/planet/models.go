package planet

import (
	"time"

	"accrete-server/internal/accrete"

	"github.com/google/uuid"
)

type PlanetType string

const (
	PlanetTypeBarren      PlanetType = "barren"
	PlanetTypeTerrestrial PlanetType = "terrestrial"
	PlanetTypeGasGiant    PlanetType = "gas_giant"
	PlanetTypeIce         PlanetType = "ice"
	PlanetTypeHothouse    PlanetType = "hothouse"
)

// ParsePlanetType accepts the stored names of the body types.
func ParsePlanetType(s string) (PlanetType, bool) {
	switch t := PlanetType(s); t {
	case PlanetTypeBarren, PlanetTypeTerrestrial, PlanetTypeGasGiant, PlanetTypeIce, PlanetTypeHothouse:
		return t, true
	}
	return "", false
}

// BodyFilter narrows a listing of stored bodies. The zero value keeps
// everything.
type BodyFilter struct {
	Type        PlanetType
	PlanetsOnly bool
}

func (f BodyFilter) keep(b Body) bool {
	if f.PlanetsOnly && b.ParentIndex != nil {
		return false
	}
	return f.Type == "" || b.Type == f.Type
}

// Filter returns the rows f keeps, in their original order.
func Filter(rows []Body, f BodyFilter) []Body {
	out := make([]Body, 0, len(rows))
	for _, b := range rows {
		if f.keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// Body is a stored planet or moon. Moons carry the body index of their host
// in ParentIndex; planets have none.
type Body struct {
	ID          int        `json:"id"`
	SystemID    uuid.UUID  `json:"system_id"`
	ParentIndex *int       `json:"parent_index"`
	BodyIndex   int        `json:"body_index"`
	Name        string     `json:"name"`
	Type        PlanetType `json:"type"`
	RetainedGas string     `json:"retained_gas"`
	accrete.Body
	CreatedAt time.Time `json:"created_at"`
}

// BatchInsertRequest is one row of a batch insert. It is sent to Postgres as
// an element of a JSON array, so the json tags name the columns.
type BatchInsertRequest struct {
	SystemID    uuid.UUID  `json:"system_id"`
	ParentIndex *int       `json:"parent_index"`
	BodyIndex   int        `json:"body_index"`
	Name        string     `json:"name"`
	Type        PlanetType `json:"type"`
	RetainedGas string     `json:"retained_gas"`
	accrete.Body
}
