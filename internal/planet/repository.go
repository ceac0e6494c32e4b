package planet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"accrete-server/internal/shared/database"

	"github.com/google/uuid"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planet repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

const bodyColumns = `id, system_id, parent_index, body_index, name, type, retained_gas,
	a, e, mass, gas_giant, orbit_zone, radius, density, orbital_period, day_length,
	resonant_period, axial_tilt, escape_velocity, surface_accel, surface_gravity,
	rms_velocity, molecule_weight, volatile_gas_inventory, surface_pressure,
	greenhouse_effect, boil_point, albedo, surface_temp, hydrosphere, cloud_cover,
	ice_cover, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanBody(row scanner) (Body, error) {
	var b Body
	err := row.Scan(
		&b.ID,
		&b.SystemID,
		&b.ParentIndex,
		&b.BodyIndex,
		&b.Name,
		&b.Type,
		&b.RetainedGas,
		&b.A,
		&b.E,
		&b.Mass,
		&b.GasGiant,
		&b.OrbitZone,
		&b.Radius,
		&b.Density,
		&b.OrbitalPeriod,
		&b.DayLength,
		&b.ResonantPeriod,
		&b.AxialTilt,
		&b.EscapeVelocity,
		&b.SurfaceAccel,
		&b.SurfaceGravity,
		&b.RMSVelocity,
		&b.MoleculeWeight,
		&b.VolatileGasInventory,
		&b.SurfacePressure,
		&b.GreenhouseEffect,
		&b.BoilPoint,
		&b.Albedo,
		&b.SurfaceTemp,
		&b.Hydrosphere,
		&b.CloudCover,
		&b.IceCover,
		&b.CreatedAt,
	)
	return b, err
}

// CreateBodiesBatch inserts all rows in a single statement by sending them
// as one JSON array.
func (r *Repository) CreateBodiesBatch(ctx context.Context, bodies []BatchInsertRequest, tx *database.Tx) ([]Body, error) {
	if len(bodies) == 0 {
		return []Body{}, nil
	}

	exec := r.getExecutor(tx)

	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "create_bodies_batch",
		"count", len(bodies),
	)
	logger.Debug("Creating bodies in batch")

	bodiesJSON, err := json.Marshal(bodies)
	if err != nil {
		logger.Error("Failed to marshal bodies to JSON", "error", err)
		return nil, fmt.Errorf("failed to marshal bodies: %w", err)
	}

	query := `
		INSERT INTO bodies (system_id, parent_index, body_index, name, type, retained_gas,
			a, e, mass, gas_giant, orbit_zone, radius, density, orbital_period, day_length,
			resonant_period, axial_tilt, escape_velocity, surface_accel, surface_gravity,
			rms_velocity, molecule_weight, volatile_gas_inventory, surface_pressure,
			greenhouse_effect, boil_point, albedo, surface_temp, hydrosphere, cloud_cover,
			ice_cover)
		SELECT
			(data->>'system_id')::uuid,
			(data->>'parent_index')::integer,
			(data->>'body_index')::integer,
			data->>'name',
			(data->>'type')::body_type,
			data->>'retained_gas',
			(data->>'a')::double precision,
			(data->>'e')::double precision,
			(data->>'mass')::double precision,
			(data->>'gas_giant')::boolean,
			(data->>'orbit_zone')::integer,
			(data->>'radius')::double precision,
			(data->>'density')::double precision,
			(data->>'orbital_period')::double precision,
			(data->>'day_length')::double precision,
			(data->>'resonant_period')::boolean,
			(data->>'axial_tilt')::integer,
			(data->>'escape_velocity')::double precision,
			(data->>'surface_accel')::double precision,
			(data->>'surface_gravity')::double precision,
			(data->>'rms_velocity')::double precision,
			(data->>'molecule_weight')::double precision,
			(data->>'volatile_gas_inventory')::double precision,
			(data->>'surface_pressure')::double precision,
			(data->>'greenhouse_effect')::boolean,
			(data->>'boil_point')::double precision,
			(data->>'albedo')::double precision,
			(data->>'surface_temp')::double precision,
			(data->>'hydrosphere')::double precision,
			(data->>'cloud_cover')::double precision,
			(data->>'ice_cover')::double precision
		FROM json_array_elements($1::json) AS data
		RETURNING ` + bodyColumns

	rows, err := exec.QueryContext(ctx, query, string(bodiesJSON))
	if err != nil {
		logger.Error("Failed to batch create bodies", "error", err)
		return nil, fmt.Errorf("failed to batch create bodies: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var created []Body
	for rows.Next() {
		b, err := scanBody(rows)
		if err != nil {
			logger.Error("Failed to scan body row", "error", err)
			return nil, fmt.Errorf("failed to scan body: %w", err)
		}
		created = append(created, b)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating bodies: %w", err)
	}

	logger.Info("Bodies batch created", "count", len(created))
	return created, nil
}

func (r *Repository) GetBodiesBySystemID(ctx context.Context, systemID uuid.UUID) ([]Body, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "get_bodies_by_system", "system_id", systemID)
	logger.Debug("Getting bodies by system ID")

	query := `SELECT ` + bodyColumns + `
		FROM bodies
		WHERE system_id = $1
		ORDER BY parent_index NULLS FIRST, body_index`

	rows, err := r.db.QueryContext(ctx, query, systemID)
	if err != nil {
		logger.Error("Failed to query bodies", "error", err)
		return nil, fmt.Errorf("failed to query bodies: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var bodies []Body
	for rows.Next() {
		b, err := scanBody(rows)
		if err != nil {
			logger.Error("Failed to scan body row", "error", err)
			return nil, fmt.Errorf("failed to scan body: %w", err)
		}
		bodies = append(bodies, b)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating bodies: %w", err)
	}

	logger.Debug("Bodies retrieved", "count", len(bodies))
	return bodies, nil
}
