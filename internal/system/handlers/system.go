package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"accrete-server/internal/accrete"
	"accrete-server/internal/middleware"
	"accrete-server/internal/report"
	"accrete-server/internal/shared/errors"
	"accrete-server/internal/shared/response"
	"accrete-server/internal/system"

	"github.com/google/uuid"
)

type SystemHandler struct {
	service *system.Service
}

func NewSystemHandler(service *system.Service) *SystemHandler {
	return &SystemHandler{service: service}
}

// Generate runs the generator without storing anything. Query parameters:
// seed, max_bodies, moons and format.
func (h *SystemHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "generate_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	q := r.URL.Query()
	var req system.CreateRequest

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid seed", err))
			return
		}
		req.Seed = &seed
	}
	if v := q.Get("max_bodies"); v != "" {
		maxBodies, err := strconv.Atoi(v)
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid max_bodies", err))
			return
		}
		req.MaxBodies = &maxBodies
	}
	if v := q.Get("moons"); v != "" {
		moons, err := strconv.ParseBool(v)
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid moons flag", err))
			return
		}
		req.IncludeMoons = &moons
	}

	format := report.FormatJSON
	if v := q.Get("format"); v != "" {
		f, err := report.ParseFormat(v)
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid format", err))
			return
		}
		format = f
	}

	sys, err := h.service.Generate(ctx, h.service.Params(req))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	writeReport(w, r, logger, sys, format)
}

func (h *SystemHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_system")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("authentication required"))
		return
	}

	var req system.CreateRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	created, err := h.service.Create(ctx, req, claims.Login)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, created)
}

func (h *SystemHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "list_systems")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	limit, err := intParam(r, "limit")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	offset, err := intParam(r, "offset")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	systems, err := h.service.List(ctx, limit, offset)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, systems)
}

func (h *SystemHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, err := systemID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	sys, err := h.service.Get(ctx, id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, sys)
}

// Report renders a stored system as text (the default), json or yaml.
func (h *SystemHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "system_report")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, err := systemID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid format", err))
		return
	}

	sys, err := h.service.Get(ctx, id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	writeReport(w, r, logger, sys.Generated(), format)
}

func (h *SystemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "delete_system")

	if r.Method != http.MethodDelete {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, err := systemID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusNoContent, nil)
}

func systemID(r *http.Request) (uuid.UUID, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return uuid.Nil, errors.Validation("system ID is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errors.WrapValidation("invalid system ID format", err)
	}
	return id, nil
}

func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name, err)
	}
	return n, nil
}

func writeReport(w http.ResponseWriter, r *http.Request, logger *slog.Logger, sys *accrete.System, format report.Format) {
	if format == report.FormatJSON {
		response.Success(w, http.StatusOK, sys)
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, sys, format); err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to render report", err))
		return
	}
	response.Raw(w, http.StatusOK, format.ContentType(), buf.Bytes())
}
