package planet

import (
	"context"
	"fmt"
	"log/slog"

	"accrete-server/internal/accrete"
	"accrete-server/internal/shared/database"

	"github.com/google/uuid"
)

// Store is the persistence the service needs; *Repository implements it.
type Store interface {
	CreateBodiesBatch(ctx context.Context, bodies []BatchInsertRequest, tx *database.Tx) ([]Body, error)
	GetBodiesBySystemID(ctx context.Context, systemID uuid.UUID) ([]Body, error)
}

type Service struct {
	repo   Store
	logger *slog.Logger
}

func NewService(repo Store, logger *slog.Logger) *Service {
	logger.Debug("Initializing planet service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// SaveBodies stores a generated system's planets and moons inside tx and
// returns how many rows were written.
func (s *Service) SaveBodies(ctx context.Context, systemID uuid.UUID, systemName string, bodies []accrete.Body, tx *database.Tx) (int, error) {
	logger := s.logger.With("component", "planet_service", "operation", "save_bodies", "system_id", systemID)

	rows := Flatten(systemID, systemName, bodies)
	created, err := s.repo.CreateBodiesBatch(ctx, rows, tx)
	if err != nil {
		return 0, fmt.Errorf("failed to save bodies: %w", err)
	}

	logger.Debug("Bodies saved", "planets", len(bodies), "rows", len(created))
	return len(created), nil
}

func (s *Service) GetBySystemID(ctx context.Context, systemID uuid.UUID) ([]Body, error) {
	return s.repo.GetBodiesBySystemID(ctx, systemID)
}

// GetTree returns the stored bodies of a system with moons nested under
// their hosts.
func (s *Service) GetTree(ctx context.Context, systemID uuid.UUID) ([]accrete.Body, error) {
	rows, err := s.repo.GetBodiesBySystemID(ctx, systemID)
	if err != nil {
		return nil, err
	}
	return Nest(rows), nil
}
