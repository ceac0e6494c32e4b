package accrete

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonConvergent is returned when one of the model's iterative loops hits
// its iteration cap.
var ErrNonConvergent = errors.New("non-convergent")

// accretionIterationLimit caps accreteDust. Tests lower it.
var accretionIterationLimit = MaxAccretionIterations

// Notifier receives free-text progress notices. It never influences the
// generation.
type Notifier func(msg string)

// disk describes one accretion run: the stellar disk, or a moon disk around
// a planet.
type disk struct {
	// centralMass scales the dust density, in solar masses.
	centralMass float64
	dustInner   float64
	dustOuter   float64
	// inner and outer bound where planetesimals are seeded.
	inner float64
	outer float64
	// critOrbit, when positive, replaces the candidate's own orbit in the
	// critical mass calculation.
	critOrbit float64
	// minMass, when positive, is the smallest accreted mass kept as a body.
	// Lighter candidates still sweep their annulus but are dropped as debris.
	minMass float64
}

// simulation is the mutable state of a single generation run.
type simulation struct {
	rnd    *Random
	notify Notifier

	stellarMass float64
	luminosity  float64
	age         float64
	rEcosphere  float64
	rGreenhouse float64

	lanes  *DustLanes
	bodies []Body

	// scratch values shared by the accretion steps
	reducedMass       float64
	rInner            float64
	rOuter            float64
	dustDensity       float64
	cloudEccentricity float64
	dustLeft          bool
}

func newSimulation(src Source, notify Notifier) *simulation {
	return &simulation{rnd: NewRandom(src), notify: notify}
}

func (s *simulation) notifyf(format string, args ...any) {
	if s.notify != nil {
		s.notify(fmt.Sprintf(format, args...))
	}
}

func (s *simulation) resetDisk(d disk) {
	s.lanes = NewDustLanes(d.dustInner, d.dustOuter)
	s.bodies = nil
	s.dustLeft = true
	s.cloudEccentricity = initialCloudEccentricity
	s.reducedMass = 0
	s.rInner = 0
	s.rOuter = 0
}

func stellarDustLimit(stellarMass float64) float64 {
	return 200.0 * math.Cbrt(stellarMass)
}

func innermostPlanet(stellarMass float64) float64 {
	return 0.3 * math.Cbrt(stellarMass)
}

func outermostPlanet(stellarMass float64) float64 {
	return 50.0 * math.Cbrt(stellarMass)
}

func reducedMass(mass float64) float64 {
	return math.Pow(mass/(1.0+mass), 0.25)
}

// innerEffectLimit and outerEffectLimit bound the annulus a body at (a, e)
// sweeps, widened by the gravitational focusing term m.
func (s *simulation) innerEffectLimit(a, e, m float64) float64 {
	return a * (1.0 - e) * (1.0 - m) / (1.0 + s.cloudEccentricity)
}

func (s *simulation) outerEffectLimit(a, e, m float64) float64 {
	return a * (1.0 + e) * (1.0 + m) / (1.0 - s.cloudEccentricity)
}

// criticalLimit is the mass, in solar masses, above which a body at (a, e)
// starts to accrete gas as well as dust.
func criticalLimit(a, e, luminosity float64) float64 {
	perihelion := a - a*e
	return CritMassCoeff * math.Pow(perihelion*math.Sqrt(luminosity), -0.75)
}

func dustDensity(centralMass, a float64) float64 {
	return DustDensityCoeff * math.Sqrt(centralMass) * math.Exp(-DensityAlpha*math.Pow(a, 1.0/DensityN))
}

// collectDust returns the mass a body of lastMass at (a, e) sweeps from the
// dust lanes. It leaves the swept annulus in s.rInner and s.rOuter.
//
// The bands are folded from the outermost inwards so the sum is evaluated
// in the same order as the nested recurrence v0 + (v1 + (v2 + ...)).
func (s *simulation) collectDust(lastMass, a, e, critMass float64) float64 {
	s.reducedMass = reducedMass(lastMass)
	s.rInner = s.innerEffectLimit(a, e, s.reducedMass)
	s.rOuter = s.outerEffectLimit(a, e, s.reducedMass)
	if s.rInner < 0 {
		s.rInner = 0
	}

	bands := s.lanes.bands
	sum := 0.0
	for i := len(bands) - 1; i >= 0; i-- {
		band := bands[i]
		if band.Outer <= s.rInner || band.Inner >= s.rOuter {
			continue
		}

		density := 0.0
		if band.Dust {
			density = s.dustDensity
		}
		if lastMass >= critMass && band.Gas {
			density = GasDustRatio * density / (1.0 + math.Sqrt(critMass/lastMass)*(GasDustRatio-1.0))
		}

		bandwidth := s.rOuter - s.rInner
		temp1 := math.Max(0, s.rOuter-band.Outer)
		temp2 := math.Max(0, band.Inner-s.rInner)
		width := bandwidth - temp1 - temp2
		volume := 4.0 * math.Pi * a * a * s.reducedMass * (1.0 - e*(temp1-temp2)/bandwidth) * width
		sum = volume*density + sum
	}
	return sum
}

// accreteDust grows a body from seedMass until the swept mass converges,
// then clears the swept annulus from the dust lanes. It returns the body's
// final mass.
func (s *simulation) accreteDust(seedMass, a, e, critMass, bodyInner, bodyOuter float64) (float64, error) {
	newMass := seedMass
	for i := 0; ; i++ {
		if i >= accretionIterationLimit {
			return 0, fmt.Errorf("accretion at %.4f AU: no convergence after %d iterations: %w", a, i, ErrNonConvergent)
		}
		prev := newMass
		newMass = s.collectDust(newMass, a, e, critMass)
		if newMass-prev < 0.0001*prev {
			break
		}
	}

	total := seedMass + newMass
	s.dustLeft = s.lanes.Update(s.rInner, s.rOuter, total, critMass, bodyInner, bodyOuter)
	return total, nil
}
