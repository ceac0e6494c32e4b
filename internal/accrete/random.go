package accrete

import (
	"math"
	"math/rand/v2"
)

// Source is a seedable uniform generator returning values in [0, 1).
type Source interface {
	Float64() float64
}

// pcgStream is the fixed PCG stream selector, so that a seed alone
// determines the sequence.
const pcgStream = 0x9e3779b97f4a7c15

// NewSource returns the reference generator for a seed: PCG-DXSM from
// math/rand/v2 keyed by (seed, pcgStream).
func NewSource(seed int64) Source {
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}

// Random derives the distributions the model samples from a uniform source.
type Random struct {
	src Source
}

func NewRandom(src Source) *Random {
	return &Random{src: src}
}

func (r *Random) Uniform() float64 {
	return r.src.Float64()
}

// Range returns a value uniformly distributed between inner and outer,
// whichever order they are given in.
func (r *Random) Range(inner, outer float64) float64 {
	delta := math.Abs(outer - inner)
	if inner < outer {
		return inner + delta*r.Uniform()
	}
	return outer + delta*r.Uniform()
}

// About returns value perturbed uniformly by up to +/- variation.
func (r *Random) About(value, variation float64) float64 {
	return value - variation + 2.0*variation*r.Uniform()
}

// Eccentricity samples 1 - U^EccentricityCoeff. A zero draw would yield
// e = 1, so it is redrawn.
func (r *Random) Eccentricity() float64 {
	u := r.Uniform()
	for u == 0 {
		u = r.Uniform()
	}
	return 1.0 - math.Pow(u, EccentricityCoeff)
}
