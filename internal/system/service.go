package system

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"accrete-server/internal/accrete"
	"accrete-server/internal/shared/config"
	"accrete-server/internal/shared/database"
	apperrors "accrete-server/internal/shared/errors"
	"accrete-server/internal/telemetry"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	maxNameLength    = 100
	defaultListLimit = 50
	maxListLimit     = 200
)

type Store interface {
	CreateSystem(ctx context.Context, sys *System, tx *database.Tx) error
	GetSystemByID(ctx context.Context, id uuid.UUID) (*System, error)
	ListSystems(ctx context.Context, limit, offset int) ([]System, error)
	DeleteSystem(ctx context.Context, id uuid.UUID) (bool, error)
}

// BodyStore persists a system's planets and moons; *planet.Service
// implements it.
type BodyStore interface {
	SaveBodies(ctx context.Context, systemID uuid.UUID, systemName string, bodies []accrete.Body, tx *database.Tx) (int, error)
	GetTree(ctx context.Context, systemID uuid.UUID) ([]accrete.Body, error)
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *database.Tx) error) error
}

type Service struct {
	repo   Store
	bodies BodyStore
	tx     TxRunner
	cache  Cache
	limits config.GenerationConfig
	tracer trace.Tracer
	logger *slog.Logger
}

func NewService(repo Store, bodies BodyStore, tx TxRunner, cache Cache, limits config.GenerationConfig, logger *slog.Logger) *Service {
	logger.Debug("Initializing system service")

	return &Service{
		repo:   repo,
		bodies: bodies,
		tx:     tx,
		cache:  cache,
		limits: limits,
		tracer: telemetry.Tracer(),
		logger: logger,
	}
}

// Generate runs the accretion model for p, serving repeated requests from
// the cache.
func (s *Service) Generate(ctx context.Context, p GenerateParams) (*accrete.System, error) {
	logger := s.logger.With(
		"component", "system_service",
		"operation", "generate",
		"seed", p.Seed,
		"max_bodies", p.MaxBodies,
		"include_moons", p.IncludeMoons,
	)

	if err := s.validate(p); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "system.generate", trace.WithAttributes(
		attribute.Int64("accrete.seed", p.Seed),
		attribute.Int("accrete.max_bodies", p.MaxBodies),
		attribute.Bool("accrete.include_moons", p.IncludeMoons),
	))
	defer span.End()

	key := p.CacheKey()
	if sys, ok := s.cache.Get(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		logger.Debug("System served from cache")
		return sys, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	start := time.Now()
	notices := 0
	sys, err := accrete.Generate(p.Seed, accrete.Options{
		MaxBodies:    p.MaxBodies,
		IncludeMoons: p.IncludeMoons,
		Notify: func(msg string) {
			notices++
			logger.Debug(msg)
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		if errors.Is(err, accrete.ErrNonConvergent) {
			return nil, apperrors.WrapNonConvergent(fmt.Sprintf("seed %d did not converge", p.Seed), err)
		}
		return nil, apperrors.WrapInternal("system generation failed", err)
	}

	span.SetAttributes(attribute.Int("accrete.bodies", len(sys.Bodies)))
	logger.Info("System generated",
		"bodies", len(sys.Bodies),
		"notices", notices,
		"duration", time.Since(start),
	)

	s.cache.Set(ctx, key, sys)
	return sys, nil
}

func (s *Service) validate(p GenerateParams) error {
	if p.MaxBodies < 0 {
		return apperrors.Validationf("max_bodies must not be negative, got %d", p.MaxBodies)
	}
	if p.MaxBodies > s.limits.MaxBodiesLimit {
		return apperrors.Validationf("max_bodies %d exceeds the limit of %d", p.MaxBodies, s.limits.MaxBodiesLimit)
	}
	return nil
}

// Params fills the omitted fields of req with defaults.
func (s *Service) Params(req CreateRequest) GenerateParams {
	p := GenerateParams{IncludeMoons: s.limits.DefaultIncludeMoons}
	if req.Seed != nil {
		p.Seed = *req.Seed
	} else {
		p.Seed = rand.Int64()
	}
	if req.MaxBodies != nil {
		p.MaxBodies = *req.MaxBodies
	}
	if req.IncludeMoons != nil {
		p.IncludeMoons = *req.IncludeMoons
	}
	return p
}

// Create generates the requested system and stores it with its bodies in
// one transaction.
func (s *Service) Create(ctx context.Context, req CreateRequest, createdBy string) (*System, error) {
	p := s.Params(req)

	logger := s.logger.With("component", "system_service", "operation", "create", "seed", p.Seed, "created_by", createdBy)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultName(p.Seed)
	}
	if len(name) > maxNameLength {
		return nil, apperrors.Validationf("name must be at most %d characters", maxNameLength)
	}

	gen, err := s.Generate(ctx, p)
	if err != nil {
		return nil, err
	}

	sys := &System{
		ID:           uuid.New(),
		Name:         name,
		Seed:         p.Seed,
		MaxBodies:    p.MaxBodies,
		IncludeMoons: p.IncludeMoons,
		Star:         gen.Star,
		BodyCount:    len(gen.Bodies),
		CreatedBy:    createdBy,
		Bodies:       gen.Bodies,
	}

	err = s.tx.WithTx(ctx, func(tx *database.Tx) error {
		if err := s.repo.CreateSystem(ctx, sys, tx); err != nil {
			return err
		}
		_, err := s.bodies.SaveBodies(ctx, sys.ID, sys.Name, sys.Bodies, tx)
		return err
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflictf("a system named %q already exists", name)
		}
		return nil, apperrors.WrapInternal("failed to save system", err)
	}

	logger.Info("System stored", "system_id", sys.ID, "name", sys.Name, "bodies", sys.BodyCount)
	return sys, nil
}

// Get returns a stored system with its bodies.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*System, error) {
	sys, err := s.repo.GetSystemByID(ctx, id)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load system", err)
	}
	if sys == nil {
		return nil, apperrors.NotFoundf("system %s not found", id)
	}

	bodies, err := s.bodies.GetTree(ctx, id)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load system bodies", err)
	}
	sys.Bodies = bodies
	return sys, nil
}

// List returns stored systems without their bodies, newest first. A zero
// limit selects the default page size.
func (s *Service) List(ctx context.Context, limit, offset int) ([]System, error) {
	if limit < 0 || offset < 0 {
		return nil, apperrors.Validation("limit and offset must not be negative")
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	systems, err := s.repo.ListSystems(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list systems", err)
	}
	if systems == nil {
		systems = []System{}
	}
	return systems, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	logger := s.logger.With("component", "system_service", "operation", "delete", "system_id", id)

	deleted, err := s.repo.DeleteSystem(ctx, id)
	if err != nil {
		return apperrors.WrapInternal("failed to delete system", err)
	}
	if !deleted {
		return apperrors.NotFoundf("system %s not found", id)
	}

	logger.Info("System deleted")
	return nil
}

var systemNames = []string{
	"Altair", "Vega", "Sirius", "Arcturus", "Capella", "Rigel", "Procyon",
	"Aldebaran", "Spica", "Antares", "Pollux", "Fomalhaut", "Deneb", "Regulus",
	"Castor", "Bellatrix", "Alioth", "Dubhe", "Mirfak", "Polaris", "Alphard",
	"Hamal", "Mizar", "Nunki", "Kochab", "Enif", "Schedar", "Markab",
}

// DefaultName picks a star name for an unnamed system from its seed.
func DefaultName(seed int64) string {
	base := systemNames[uint64(seed)%uint64(len(systemNames))]
	return fmt.Sprintf("%s-%d", base, uint64(seed)%10000)
}
