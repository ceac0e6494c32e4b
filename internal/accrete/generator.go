// Package accrete generates planetary systems with the Dole/Fogg dust
// accretion model: planetesimals sweep up a disk of dust and gas, collide and
// merge, and the surviving bodies are given a physical environment.
//
// A generation run is deterministic for a given seed and Options.
package accrete

import (
	"fmt"
	"math"
)

// Options control a generation run.
type Options struct {
	// MaxBodies caps the bodies formed in each disk. Zero means unbounded.
	MaxBodies int
	// IncludeMoons runs a moon accretion pass around every planet.
	IncludeMoons bool
	// Notify, when set, receives progress notices.
	Notify Notifier
}

// System is a generated planetary system. Bodies are ordered by distance
// from the star.
type System struct {
	Seed   int64  `json:"seed" yaml:"seed"`
	Star   Star   `json:"star" yaml:"star"`
	Bodies []Body `json:"bodies" yaml:"bodies"`
}

// Generate builds the system for seed using the reference generator.
func Generate(seed int64, opts Options) (*System, error) {
	sys, err := GenerateFrom(NewSource(seed), opts)
	if err != nil {
		return nil, fmt.Errorf("generate seed %d: %w", seed, err)
	}
	sys.Seed = seed
	return sys, nil
}

// GenerateFrom builds a system drawing every random value from src.
func GenerateFrom(src Source, opts Options) (*System, error) {
	if opts.MaxBodies < 0 {
		return nil, fmt.Errorf("max bodies %d is negative", opts.MaxBodies)
	}
	s := newSimulation(src, opts.Notify)

	mass := s.rnd.Range(0.6, 1.3)
	s.stellarMass = mass
	s.luminosity = Luminosity(mass)

	bodies, err := s.distributeMasses(disk{
		centralMass: mass,
		dustInner:   0,
		dustOuter:   stellarDustLimit(mass),
		inner:       innermostPlanet(mass),
		outer:       outermostPlanet(mass),
	}, opts.MaxBodies)
	if err != nil {
		return nil, err
	}

	lifetime := mainSequenceLifetime(mass, s.luminosity)
	s.age = s.sampleStellarAge(lifetime)
	s.rEcosphere = math.Sqrt(s.luminosity)
	s.rGreenhouse = s.rEcosphere * GreenhouseEffectConst

	for i := range bodies {
		b := &bodies[i]
		p := primary{mass: mass, distance: b.A, zone: OrbitalZone(s.luminosity, b.A)}
		if err := s.deriveEnvironment(b, p); err != nil {
			return nil, err
		}
		if opts.IncludeMoons {
			if err := s.generateMoons(b, opts.MaxBodies); err != nil {
				return nil, err
			}
		}
	}

	star := Star{
		MassRatio:            mass,
		LuminosityRatio:      s.luminosity,
		MainSequenceLifetime: lifetime,
		Age:                  s.age,
		EcosphereRadius:      s.rEcosphere,
		GreenhouseRadius:     s.rGreenhouse,
	}
	if t, ok := ClassifyByMass(mass); ok {
		star.SpectralClass = t.Class
	}

	if bodies == nil {
		bodies = []Body{}
	}
	return &System{Star: star, Bodies: bodies}, nil
}
