package accrete

import (
	"errors"
	"math"
	"testing"
)

func newTestSimulation(seed int64) *simulation {
	s := newSimulation(NewSource(seed), nil)
	s.stellarMass = 1
	s.luminosity = 1
	s.rEcosphere = 1
	s.rGreenhouse = GreenhouseEffectConst
	return s
}

// =============================================================================
// ACCRETION
// =============================================================================

func TestCriticalLimit(t *testing.T) {
	if got := criticalLimit(1, 0, 1); got != CritMassCoeff {
		t.Errorf("criticalLimit(1, 0, 1) = %v, want %v", got, CritMassCoeff)
	}
	if near, far := criticalLimit(0.5, 0.1, 1), criticalLimit(5, 0.1, 1); near <= far {
		t.Errorf("critical mass should fall with distance: %v at 0.5 AU, %v at 5 AU", near, far)
	}
}

func TestCollectDust(t *testing.T) {
	t.Run("fresh disk", func(t *testing.T) {
		s := newTestSimulation(1)
		s.resetDisk(disk{centralMass: 1, dustOuter: 200, inner: 0.3, outer: 50})
		s.dustDensity = dustDensity(1, 1)

		got := s.collectDust(ProtoplanetMass, 1, 0.1, 1e-5)
		if got <= 0 {
			t.Errorf("collectDust() = %v, want > 0", got)
		}
		if !(s.rInner < 1 && s.rOuter > 1) {
			t.Errorf("swept annulus [%v, %v] does not contain the orbit", s.rInner, s.rOuter)
		}
	})

	t.Run("swept disk", func(t *testing.T) {
		s := newTestSimulation(1)
		s.resetDisk(disk{centralMass: 1, dustOuter: 200, inner: 0.3, outer: 50})
		s.lanes.Update(0, 200, 0, 1, 0.3, 50)
		s.dustDensity = dustDensity(1, 1)

		if got := s.collectDust(1e-6, 1, 0.1, 1e-5); got != 0 {
			t.Errorf("collectDust() = %v, want 0 with no dust left", got)
		}
	})
}

func TestAccreteDust(t *testing.T) {
	s := newTestSimulation(1)
	s.resetDisk(disk{centralMass: 1, dustOuter: 200, inner: 0.3, outer: 50})
	s.dustDensity = dustDensity(1, 1)

	mass, err := s.accreteDust(ProtoplanetMass, 1, 0.05, criticalLimit(1, 0.05, 1), 0.3, 50)
	if err != nil {
		t.Fatalf("accreteDust() error = %v", err)
	}
	if mass <= ProtoplanetMass {
		t.Errorf("accreteDust() = %v, want more than the seed mass", mass)
	}
	if s.lanes.Available(0.99, 1.01) {
		t.Error("dust still available at the body's orbit")
	}
	if !s.dustLeft {
		t.Error("dustLeft = false after a single accretion")
	}
}

func TestAccreteDust_IterationCap(t *testing.T) {
	limit := accretionIterationLimit
	accretionIterationLimit = 1
	t.Cleanup(func() { accretionIterationLimit = limit })

	s := newTestSimulation(1)
	s.resetDisk(disk{centralMass: 1, dustOuter: 200, inner: 0.3, outer: 50})
	s.dustDensity = dustDensity(1, 1)

	_, err := s.accreteDust(ProtoplanetMass, 1, 0.05, criticalLimit(1, 0.05, 1), 0.3, 50)
	if !errors.Is(err, ErrNonConvergent) {
		t.Fatalf("accreteDust() error = %v, want ErrNonConvergent", err)
	}
	if !s.lanes.Available(0.99, 1.01) {
		t.Error("dust lanes updated by an accretion that did not converge")
	}
}

func TestAccreteDust_NoDustTerminatesImmediately(t *testing.T) {
	s := newTestSimulation(1)
	s.resetDisk(disk{centralMass: 1, dustOuter: 200, inner: 0.3, outer: 50})
	s.lanes.Update(0, 200, 0, 1, 0.3, 50)
	s.dustDensity = dustDensity(1, 1)

	mass, err := s.accreteDust(ProtoplanetMass, 1, 0.05, 1e-5, 0.3, 50)
	if err != nil {
		t.Fatalf("accreteDust() error = %v", err)
	}
	if mass != ProtoplanetMass {
		t.Errorf("accreteDust() = %v, want the seed mass %v", mass, ProtoplanetMass)
	}
}

// =============================================================================
// COALESCENCE
// =============================================================================

func TestMergeOrbits(t *testing.T) {
	t.Run("identical circular orbits", func(t *testing.T) {
		a, e := mergeOrbits(1, 1, 0, 1, 1, 0)
		if a != 1 || e != 0 {
			t.Errorf("mergeOrbits() = (%v, %v), want (1, 0)", a, e)
		}
	})

	t.Run("mass weighted axis", func(t *testing.T) {
		a, _ := mergeOrbits(1, 1, 0, 1, 3, 0)
		if math.Abs(a-1.5) > 1e-12 {
			t.Errorf("a3 = %v, want 1.5", a)
		}
	})

	t.Run("eccentricity stays in range", func(t *testing.T) {
		eccs := []float64{0, 0.3, 0.6, 0.9, 0.999}
		axes := []float64{0.3, 1, 7, 49}
		masses := []float64{1e-15, 1e-9, 1e-5, 1e-3}
		for _, e1 := range eccs {
			for _, e2 := range eccs {
				for _, a1 := range axes {
					for _, a2 := range axes {
						for _, m := range masses {
							_, e := mergeOrbits(m, a1, e1, 1e-6, a2, e2)
							if !(e >= 0 && e < 1) {
								t.Fatalf("mergeOrbits(%v, %v, %v, 1e-6, %v, %v) e = %v", m, a1, e1, a2, e2, e)
							}
						}
					}
				}
			}
		}
	})
}

func sweptSimulation() *simulation {
	s := newTestSimulation(1)
	s.resetDisk(disk{centralMass: 1, dustOuter: 200, inner: 0.3, outer: 50})
	s.lanes.Update(0, 200, 0, 1, 0.3, 50)
	s.dustDensity = dustDensity(1, 1)
	return s
}

func TestCoalesce_Merges(t *testing.T) {
	s := sweptSimulation()
	s.bodies = []Body{{A: 1, E: 0.1, Mass: 1e-6}}

	if err := s.coalesce(1.01, 0.05, 2e-6, 1e-5, 0.3, 50); err != nil {
		t.Fatalf("coalesce() error = %v", err)
	}
	if len(s.bodies) != 1 {
		t.Fatalf("got %d bodies, want 1", len(s.bodies))
	}
	b := s.bodies[0]
	if b.Mass < 2e-6 {
		t.Errorf("merged mass %v below the larger input 2e-6", b.Mass)
	}
	if b.A <= 1 || b.A >= 1.01 {
		t.Errorf("merged a = %v, want between 1 and 1.01", b.A)
	}
	if b.E < 0 || b.E >= 1 {
		t.Errorf("merged e = %v, want [0, 1)", b.E)
	}
	if b.GasGiant {
		t.Error("merged body below critical mass marked as gas giant")
	}
}

func TestCoalesce_InsertsInOrder(t *testing.T) {
	s := sweptSimulation()
	s.bodies = []Body{
		{A: 1, Mass: 1e-12},
		{A: 5, Mass: 1e-12},
	}

	if err := s.coalesce(3, 0, 1e-12, 1e-5, 0.3, 50); err != nil {
		t.Fatalf("coalesce() error = %v", err)
	}
	if err := s.coalesce(0.5, 0, 1e-12, 1e-5, 0.3, 50); err != nil {
		t.Fatalf("coalesce() error = %v", err)
	}

	want := []float64{0.5, 1, 3, 5}
	if len(s.bodies) != len(want) {
		t.Fatalf("got %d bodies, want %d", len(s.bodies), len(want))
	}
	for i, a := range want {
		if s.bodies[i].A != a {
			t.Errorf("body %d at %v, want %v", i, s.bodies[i].A, a)
		}
	}
}

func TestCoalesce_GasGiant(t *testing.T) {
	s := sweptSimulation()
	if err := s.coalesce(5, 0.02, 2e-5, 1e-5, 0.3, 50); err != nil {
		t.Fatalf("coalesce() error = %v", err)
	}
	if !s.bodies[0].GasGiant {
		t.Error("body above critical mass not marked as gas giant")
	}

	// merging a small body into a giant keeps it a giant
	if err := s.coalesce(5.01, 0.02, 1e-9, 1e-3, 0.3, 50); err != nil {
		t.Fatalf("coalesce() error = %v", err)
	}
	if len(s.bodies) != 1 || !s.bodies[0].GasGiant {
		t.Errorf("bodies = %+v, want a single gas giant", s.bodies)
	}
}

// =============================================================================
// FORMATION
// =============================================================================

func TestDistributeMasses_MaxBodies(t *testing.T) {
	s := newTestSimulation(9)
	bodies, err := s.distributeMasses(disk{
		centralMass: 1,
		dustOuter:   stellarDustLimit(1),
		inner:       innermostPlanet(1),
		outer:       outermostPlanet(1),
	}, 3)
	if err != nil {
		t.Fatalf("distributeMasses() error = %v", err)
	}
	if len(bodies) == 0 || len(bodies) > 3 {
		t.Errorf("got %d bodies, want 1..3", len(bodies))
	}
}

func TestDistributeMasses_RetryCap(t *testing.T) {
	s := newTestSimulation(9)
	// the only dust lies far inside the planet-forming zone
	_, err := s.distributeMasses(disk{
		centralMass: 1,
		dustOuter:   0.1,
		inner:       5,
		outer:       6,
	}, 0)
	if !errors.Is(err, ErrNonConvergent) {
		t.Errorf("distributeMasses() error = %v, want ErrNonConvergent", err)
	}
}

func TestDistributeMasses_DropsDebris(t *testing.T) {
	s := newTestSimulation(9)
	bodies, err := s.distributeMasses(disk{
		centralMass: 1,
		dustOuter:   stellarDustLimit(1),
		inner:       innermostPlanet(1),
		outer:       outermostPlanet(1),
		minMass:     1,
	}, 0)
	if err != nil {
		t.Fatalf("distributeMasses() error = %v", err)
	}
	if len(bodies) != 0 {
		t.Errorf("got %d bodies lighter than the floor, want none", len(bodies))
	}
	if s.lanes.Len() < 2 {
		t.Error("dropped candidates left the disk unswept")
	}
}

func TestMoonDisk(t *testing.T) {
	s := newTestSimulation(1)
	host := Body{A: 5.2, E: 0.05, Mass: 9.5e-4, Radius: 71492}

	d, ok := s.moonDisk(host)
	if !ok {
		t.Fatal("moonDisk() found no room around a Jupiter-like host")
	}
	if d.minMass <= ProtoplanetMass {
		t.Errorf("minMass = %g, want above the seed mass %g", d.minMass, ProtoplanetMass)
	}
	if !(d.inner < d.outer && d.outer < d.dustOuter) {
		t.Errorf("formation zone [%v, %v] outside dust disk [0, %v]", d.inner, d.outer, d.dustOuter)
	}
}
