package accrete

import (
	"fmt"
	"math"
)

// hillRadius is the radius in AU of the region around host where its gravity
// dominates the star's, taken at the host's periapsis.
func hillRadius(host Body, stellarMass float64) float64 {
	return host.A * (1.0 - host.E) * math.Cbrt(host.Mass/(3.0*stellarMass))
}

// moonDisk returns the accretion disk around host, and false when the
// host's Hill sphere is too small to hold a moon outside its Roche zone.
func (s *simulation) moonDisk(host Body) (disk, bool) {
	hill := hillRadius(host, s.stellarMass)
	inner := 2.5 * host.Radius / KMPerAU
	outer := 0.5 * hill
	if !(inner < outer) {
		return disk{}, false
	}
	return disk{
		centralMass: host.Mass,
		dustInner:   0,
		dustOuter:   hill,
		inner:       inner,
		outer:       outer,
		critOrbit:   host.A,
		minMass:     MinMoonGrowth * ProtoplanetMass,
	}, true
}

// generateMoons runs a second accretion pass around host and derives each
// moon's environment. Moons never get moons of their own.
func (s *simulation) generateMoons(host *Body, maxBodies int) error {
	d, ok := s.moonDisk(*host)
	if !ok {
		return nil
	}

	moons, err := s.distributeMasses(d, maxBodies)
	if err != nil {
		return fmt.Errorf("moons of body at %.4f AU: %w", host.A, err)
	}

	p := primary{mass: host.Mass, distance: host.A, zone: host.OrbitZone}
	for i := range moons {
		if err := s.deriveEnvironment(&moons[i], p); err != nil {
			return err
		}
	}
	host.Moons = moons
	return nil
}
