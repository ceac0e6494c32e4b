package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"accrete-server/internal/planet"
	"accrete-server/internal/shared/errors"
	"accrete-server/internal/shared/response"

	"github.com/google/uuid"
)

type PlanetHandler struct {
	service *planet.Service
}

func NewPlanetHandler(service *planet.Service) *PlanetHandler {
	return &PlanetHandler{service: service}
}

// GetBySystemID lists the stored rows of a system, planets then moons.
// ?type= keeps one body type and ?moons=false drops the moons.
func (h *PlanetHandler) GetBySystemID(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_bodies_by_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	systemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid system ID format", err))
		return
	}

	filter, err := parseBodyFilter(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	bodies, err := h.service.GetBySystemID(r.Context(), systemID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, planet.Filter(bodies, filter))
}

func parseBodyFilter(r *http.Request) (planet.BodyFilter, error) {
	var f planet.BodyFilter
	q := r.URL.Query()

	if raw := q.Get("type"); raw != "" {
		t, ok := planet.ParsePlanetType(raw)
		if !ok {
			return f, errors.Validationf("unknown body type %q", raw)
		}
		f.Type = t
	}

	if raw := q.Get("moons"); raw != "" {
		moons, err := strconv.ParseBool(raw)
		if err != nil {
			return f, errors.WrapValidation("moons must be a boolean", err)
		}
		f.PlanetsOnly = !moons
	}
	return f, nil
}
