package system

import (
	"context"
	"database/sql"
	"errors"
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
	logger.Debug("Initializing system repository")

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

const systemColumns = `id, name, seed, max_bodies, include_moons, mass_ratio, luminosity_ratio,
	main_sequence_lifetime, age, ecosphere_radius, greenhouse_radius, spectral_class,
	body_count, created_by, created_at`

func scanSystem(row interface{ Scan(dest ...any) error }) (System, error) {
	var s System
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Seed,
		&s.MaxBodies,
		&s.IncludeMoons,
		&s.Star.MassRatio,
		&s.Star.LuminosityRatio,
		&s.Star.MainSequenceLifetime,
		&s.Star.Age,
		&s.Star.EcosphereRadius,
		&s.Star.GreenhouseRadius,
		&s.Star.SpectralClass,
		&s.BodyCount,
		&s.CreatedBy,
		&s.CreatedAt,
	)
	return s, err
}

// CreateSystem inserts sys and fills in CreatedAt. The caller assigns the ID.
func (r *Repository) CreateSystem(ctx context.Context, sys *System, tx *database.Tx) error {
	exec := r.getExecutor(tx)

	logger := r.logger.With(
		"component", "system_repository",
		"operation", "create_system",
		"system_id", sys.ID,
		"seed", sys.Seed,
	)
	logger.Debug("Creating system")

	query := `
		INSERT INTO systems (id, name, seed, max_bodies, include_moons, mass_ratio, luminosity_ratio,
			main_sequence_lifetime, age, ecosphere_radius, greenhouse_radius, spectral_class,
			body_count, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	err := exec.QueryRowContext(ctx, query,
		sys.ID,
		sys.Name,
		sys.Seed,
		sys.MaxBodies,
		sys.IncludeMoons,
		sys.Star.MassRatio,
		sys.Star.LuminosityRatio,
		sys.Star.MainSequenceLifetime,
		sys.Star.Age,
		sys.Star.EcosphereRadius,
		sys.Star.GreenhouseRadius,
		sys.Star.SpectralClass,
		sys.BodyCount,
		sys.CreatedBy,
	).Scan(&sys.CreatedAt)
	if err != nil {
		logger.Error("Failed to create system", "error", err)
		return fmt.Errorf("failed to create system: %w", err)
	}

	logger.Debug("System created successfully")
	return nil
}

// GetSystemByID returns nil and no error when the system does not exist.
func (r *Repository) GetSystemByID(ctx context.Context, id uuid.UUID) (*System, error) {
	logger := r.logger.With("component", "system_repository", "operation", "get_system", "system_id", id)
	logger.Debug("Getting system by ID")

	query := `SELECT ` + systemColumns + ` FROM systems WHERE id = $1`

	sys, err := scanSystem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("System not found")
			return nil, nil
		}
		logger.Error("Database error getting system", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &sys, nil
}

// ListSystems returns the stored systems, newest first.
func (r *Repository) ListSystems(ctx context.Context, limit, offset int) ([]System, error) {
	logger := r.logger.With("component", "system_repository", "operation", "list_systems", "limit", limit, "offset", offset)
	logger.Debug("Listing systems")

	query := `SELECT ` + systemColumns + `
		FROM systems
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		logger.Error("Failed to query systems", "error", err)
		return nil, fmt.Errorf("failed to query systems: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var systems []System
	for rows.Next() {
		sys, err := scanSystem(rows)
		if err != nil {
			logger.Error("Failed to scan system row", "error", err)
			return nil, fmt.Errorf("failed to scan system: %w", err)
		}
		systems = append(systems, sys)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating systems: %w", err)
	}

	logger.Debug("Systems retrieved", "count", len(systems))
	return systems, nil
}

// DeleteSystem removes a system and, through the foreign key, its bodies. It
// reports whether a row was deleted.
func (r *Repository) DeleteSystem(ctx context.Context, id uuid.UUID) (bool, error) {
	logger := r.logger.With("component", "system_repository", "operation", "delete_system", "system_id", id)
	logger.Info("Deleting system")

	result, err := r.db.ExecContext(ctx, `DELETE FROM systems WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to delete system", "error", err)
		return false, fmt.Errorf("failed to delete system: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("Failed to get rows affected", "error", err)
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
