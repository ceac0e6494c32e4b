package accrete

import (
	"fmt"
)

// distributeMasses seeds planetesimals across the disk until no dust is left
// within its planet-forming bounds, or until maxBodies bodies exist when
// maxBodies is positive. Bodies come back sorted by semi-major axis with only
// their orbital elements, mass and gas giant flag set.
func (s *simulation) distributeMasses(d disk, maxBodies int) ([]Body, error) {
	s.resetDisk(d)

	misses := 0
	for s.dustLeft {
		if maxBodies > 0 && len(s.bodies) >= maxBodies {
			break
		}

		a := s.rnd.Range(d.inner, d.outer)
		e := s.rnd.Eccentricity()
		mass := ProtoplanetMass

		if !s.lanes.Available(s.innerEffectLimit(a, e, mass), s.outerEffectLimit(a, e, mass)) {
			misses++
			if misses >= MaxFormationRetries {
				return nil, fmt.Errorf("planetesimal formation: %d consecutive samples found no dust: %w", misses, ErrNonConvergent)
			}
			continue
		}
		misses = 0
		s.notifyf("injecting protoplanet at %.3f AU", a)

		s.dustDensity = dustDensity(d.centralMass, a)
		critOrbit := a
		if d.critOrbit > 0 {
			critOrbit = d.critOrbit
		}
		critMass := criticalLimit(critOrbit, e, s.luminosity)

		total, err := s.accreteDust(mass, a, e, critMass, d.inner, d.outer)
		if err != nil {
			return nil, err
		}
		if total == 0 || total == ProtoplanetMass {
			continue
		}
		if total < d.minMass {
			s.notifyf("dropping %.3g solar mass debris at %.3f AU", total, a)
			continue
		}
		if err := s.coalesce(a, e, total, critMass, d.inner, d.outer); err != nil {
			return nil, err
		}
	}

	bodies := s.bodies
	s.bodies = nil
	return bodies, nil
}
