package accrete

import (
	"math"
	"slices"
)

// overlaps reports whether a candidate at (a, e, mass) and body b come close
// enough that they would have swept each other up.
func overlaps(a, e, mass float64, b Body) bool {
	diff := b.A - a
	rm := reducedMass(mass)
	rb := reducedMass(b.Mass)

	var dist1, dist2 float64
	if diff > 0 {
		// candidate aphelion against body perihelion
		dist1 = a*(1.0+e)*(1.0+rm) - a
		dist2 = b.A - b.A*(1.0-b.E)*(1.0-rb)
	} else {
		dist1 = a - a*(1.0-e)*(1.0-rm)
		dist2 = b.A*(1.0+b.E)*(1.0+rb) - b.A
	}
	return math.Abs(diff) <= math.Abs(dist1) || math.Abs(diff) <= math.Abs(dist2)
}

// mergeOrbits combines two orbits, conserving the mass-weighted
// m*sqrt(a)*sqrt(1-e^2) term. A result outside [0, 1) collapses to a circular
// orbit.
func mergeOrbits(m1, a1, e1, m2, a2, e2 float64) (float64, float64) {
	a3 := (m1 + m2) / (m1/a1 + m2/a2)

	t := m1*math.Sqrt(a1)*math.Sqrt(1.0-e1*e1) + m2*math.Sqrt(a2)*math.Sqrt(1.0-e2*e2)
	t = t / ((m1 + m2) * math.Sqrt(a3))
	t = 1.0 - t*t
	if !(t >= 0 && t < 1.0) {
		t = 0
	}
	return a3, math.Sqrt(t)
}

// coalesce folds a freshly accreted candidate into the body list. Each
// overlapping body is pulled out and merged with the candidate, which then
// re-accretes at its new orbit; this repeats until the candidate overlaps
// nothing and is inserted in orbital order.
func (s *simulation) coalesce(a, e, mass, critMass, bodyInner, bodyOuter float64) error {
	giant := mass >= critMass
	for {
		idx := slices.IndexFunc(s.bodies, func(b Body) bool {
			return overlaps(a, e, mass, b)
		})
		if idx < 0 {
			break
		}

		b := s.bodies[idx]
		s.bodies = slices.Delete(s.bodies, idx, idx+1)

		a3, e3 := mergeOrbits(b.Mass, b.A, b.E, mass, a, e)
		total, err := s.accreteDust(b.Mass+mass, a3, e3, critMass, bodyInner, bodyOuter)
		if err != nil {
			return err
		}
		s.notifyf("collision: merged bodies at %.3f and %.3f AU", b.A, a)

		a, e, mass = a3, e3, total
		giant = giant || b.GasGiant || mass >= critMass
	}

	pos, _ := slices.BinarySearchFunc(s.bodies, a, func(b Body, target float64) int {
		switch {
		case b.A < target:
			return -1
		case b.A > target:
			return 1
		}
		return 0
	})
	s.bodies = slices.Insert(s.bodies, pos, Body{A: a, E: e, Mass: mass, GasGiant: giant})
	return nil
}
