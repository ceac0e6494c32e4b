package accrete

import "math"

// StellarType is one row of the built-in spectral classification table.
type StellarType struct {
	Class      string  `json:"class" yaml:"class"`
	Temp       float64 `json:"temp" yaml:"temp"`
	Balmer     string  `json:"balmer" yaml:"balmer"`
	Lines      string  `json:"lines" yaml:"lines"`
	Mass       float64 `json:"mass" yaml:"mass"`
	Size       float64 `json:"size" yaml:"size"`
	Density    float64 `json:"density" yaml:"density"`
	Luminosity float64 `json:"luminosity" yaml:"luminosity"`
	Age        float64 `json:"age" yaml:"age"`
}

// StellarTypes is ordered hottest first.
var StellarTypes = []StellarType{
	{"O0", 1e10, "weak", "He+ O-II He-II", 40, 17.8, 0.01, 405000, 1e6},
	{"B0", 30000, "medium", "He", 18, 7.4, 0.1, 13000, 11e6},
	{"A0", 12000, "strong", "", 3.5, 2.5, 0.3, 80, 440e6},
	{"F0", 7500, "medium", "", 1.7, 1.4, 1.0, 6.4, 3e9},
	{"G0", 6000, "weak", "Ca++ Fe++", 1.1, 1.0, 1.4, 1.4, 8e9},
	{"K0", 5000, "v. weak", "Ca++ Fe++", 0.8, 0.8, 1.8, 0.46, 17e9},
	{"M0", 3500, "v. weak", "Ca++ TiO2", 0.5, 0.6, 2.5, 0.08, 56e9},
	{"D0", 1500, "none", "", 0, 0, 2.5, 0.00, 56e9},
}

// ClassifyByMass returns the coolest type whose mass bound is at least mass.
func ClassifyByMass(mass float64) (StellarType, bool) {
	return lastMatch(func(t StellarType) bool { return mass <= t.Mass })
}

// ClassifyByTemp returns the coolest type whose temperature bound is at
// least temp.
func ClassifyByTemp(temp float64) (StellarType, bool) {
	return lastMatch(func(t StellarType) bool { return temp <= t.Temp })
}

func lastMatch(match func(StellarType) bool) (StellarType, bool) {
	for i := len(StellarTypes) - 1; i >= 0; i-- {
		if match(StellarTypes[i]) {
			return StellarTypes[i], true
		}
	}
	return StellarType{}, false
}

// Star holds the sampled properties of the central star.
type Star struct {
	MassRatio            float64 `json:"mass_ratio" yaml:"mass_ratio"`
	LuminosityRatio      float64 `json:"luminosity_ratio" yaml:"luminosity_ratio"`
	MainSequenceLifetime float64 `json:"main_sequence_lifetime" yaml:"main_sequence_lifetime"`
	Age                  float64 `json:"age" yaml:"age"`
	EcosphereRadius      float64 `json:"ecosphere_radius" yaml:"ecosphere_radius"`
	GreenhouseRadius     float64 `json:"greenhouse_radius" yaml:"greenhouse_radius"`
	SpectralClass        string  `json:"spectral_class" yaml:"spectral_class"`
}

// Luminosity is the mass-luminosity relation, both as ratios to the Sun.
func Luminosity(massRatio float64) float64 {
	var n float64
	if massRatio < 1.0 {
		n = 1.75*(massRatio-0.1) + 3.325
	} else {
		n = 0.5*(2.0-massRatio) + 4.4
	}
	return math.Pow(massRatio, n)
}

func mainSequenceLifetime(massRatio, luminosity float64) float64 {
	return 1.0e10 * (massRatio / luminosity)
}

func (s *simulation) sampleStellarAge(lifetime float64) float64 {
	if lifetime >= 6.0e9 {
		return s.rnd.Range(1.0e9, 6.0e9)
	}
	return s.rnd.Range(1.0e9, lifetime)
}
