package accrete

import "math"

// Physical and model constants. Units follow the Dole/Fogg papers: cgs unless
// the name says otherwise, masses in solar masses, distances in AU.
const (
	EccentricityCoeff       = 0.077
	ProtoplanetMass         = 1.0e-15
	SolarMassInGrams        = 1.989e33
	EarthMassInGrams        = 5.977e27
	EarthRadiusCM           = 6.378e6
	EarthRadiusKM           = 6378.0
	EarthAcceleration       = 981.0
	EarthAxialTilt          = 23.4
	EarthExosphereTemp      = 1273.0
	EarthMassesPerSolarMass = 332775.64
	EarthEffectiveTemp      = 255.0
	EarthAlbedo             = 0.39
	CloudCoverageFactor     = 1.839e-8
	EarthWaterMassPerArea   = 3.83e15
	EarthSurfPresMillibars  = 1000.0
	EarthConvectionFactor   = 0.43
	FreezingPointOfWater    = 273.0
	DaysInAYear             = 365.256
	GasRetentionThreshold   = 5.0
	GasGiantAlbedo          = 0.5
	CloudAlbedo             = 0.52
	AirlessRockyAlbedo      = 0.07
	RockyAlbedo             = 0.15
	WaterAlbedo             = 0.04
	AirlessIceAlbedo        = 0.5
	IceAlbedo               = 0.7
	SecondsPerHour          = 3600.0
	HoursPerDay             = 24.0
	CMPerAU                 = 1.495978707e13
	CMPerKM                 = 1.0e5
	KMPerAU                 = CMPerAU / CMPerKM
	CMPerMeter              = 100.0
	MillibarsPerBar         = 1000.0
	KelvinCelsiusDifference = 273.0
	GravConstant            = 6.672e-8
	GreenhouseEffectConst   = 0.93
	MolarGasConst           = 8314.41
	GasDustRatio            = 50.0 // K
	CritMassCoeff           = 1.2e-5
	DustDensityCoeff        = 2.0e-3
	DensityAlpha            = 5.0
	DensityN                = 3.0
	DayLengthJ              = 1.46e-19
	RadiansPerRotation      = 2.0 * math.Pi

	// IncrediblyLargeNumber is the placeholder reported for surface values
	// that have no meaning on a gas giant.
	IncrediblyLargeNumber = 9.9999e37
)

// Molecular weights, from Dole's "Habitable Planets for Man", p. 38.
const (
	AtomicHydrogen    = 1.0
	MolecularHydrogen = 2.0
	Helium            = 4.0
	AtomicNitrogen    = 14.0
	AtomicOxygen      = 16.0
	Methane           = 16.0
	Ammonia           = 17.0
	WaterVapor        = 18.0
	Neon              = 20.2
	MolecularNitrogen = 28.0
	CarbonMonoxide    = 28.0
	NitricOxide       = 30.0
	MolecularOxygen   = 32.0
	HydrogenSulphide  = 34.1
	Argon             = 39.9
	CarbonDioxide     = 44.0
	NitrousOxide      = 44.0
	NitrogenDioxide   = 46.0
	Ozone             = 48.0
	SulphurDioxide    = 64.1
	SulphurTrioxide   = 80.1
	Krypton           = 83.8
	Xenon             = 131.3
)

// Kothari radius and cloud fraction coefficients.
const (
	kothariA1   = 6.485e12
	kothariA2   = 4.0032e-8
	kothariBeta = 5.71e12
	cloudQ1     = 1.258e19
	cloudQ2     = 0.0698
)

// Iteration caps. None of these loops is expected to get near its cap for
// the parameter ranges the model produces.
const (
	MaxAccretionIterations   = 10000
	MaxTemperatureIterations = 10000
	MaxFormationRetries      = 100000
)

// MinMoonGrowth is how many times its seed mass a moon candidate must reach
// to be kept. The moon disk is thin enough that most candidates barely grow.
const MinMoonGrowth = 10.0

const initialCloudEccentricity = 0.2
