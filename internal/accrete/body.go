package accrete

// Body is a planet or moon. Units: a in AU, mass in solar masses, radius in
// km, density in g/cc, orbital period in days, day length in hours,
// velocities in cm/s, acceleration in cm/s2, gravity in Earth gees, pressure
// in millibars and temperatures in Kelvin.
type Body struct {
	A        float64 `json:"a" yaml:"a"`
	E        float64 `json:"e" yaml:"e"`
	Mass     float64 `json:"mass" yaml:"mass"`
	GasGiant bool    `json:"gas_giant" yaml:"gas_giant"`

	OrbitZone            int     `json:"orbit_zone" yaml:"orbit_zone"`
	Radius               float64 `json:"radius" yaml:"radius"`
	Density              float64 `json:"density" yaml:"density"`
	OrbitalPeriod        float64 `json:"orbital_period" yaml:"orbital_period"`
	DayLength            float64 `json:"day_length" yaml:"day_length"`
	ResonantPeriod       bool    `json:"resonant_period" yaml:"resonant_period"`
	AxialTilt            int     `json:"axial_tilt" yaml:"axial_tilt"`
	EscapeVelocity       float64 `json:"escape_velocity" yaml:"escape_velocity"`
	SurfaceAccel         float64 `json:"surface_accel" yaml:"surface_accel"`
	SurfaceGravity       float64 `json:"surface_gravity" yaml:"surface_gravity"`
	RMSVelocity          float64 `json:"rms_velocity" yaml:"rms_velocity"`
	MoleculeWeight       float64 `json:"molecule_weight" yaml:"molecule_weight"`
	VolatileGasInventory float64 `json:"volatile_gas_inventory" yaml:"volatile_gas_inventory"`
	SurfacePressure      float64 `json:"surface_pressure" yaml:"surface_pressure"`
	GreenhouseEffect     bool    `json:"greenhouse_effect" yaml:"greenhouse_effect"`
	BoilPoint            float64 `json:"boil_point" yaml:"boil_point"`
	Albedo               float64 `json:"albedo" yaml:"albedo"`
	SurfaceTemp          float64 `json:"surface_temp" yaml:"surface_temp"`
	Hydrosphere          float64 `json:"hydrosphere" yaml:"hydrosphere"`
	CloudCover           float64 `json:"cloud_cover" yaml:"cloud_cover"`
	IceCover             float64 `json:"ice_cover" yaml:"ice_cover"`

	Moons []Body `json:"moons,omitempty" yaml:"moons,omitempty"`
}

// EarthMasses returns the body's mass in Earth masses.
func (b Body) EarthMasses() float64 {
	return b.Mass * EarthMassesPerSolarMass
}

var retainedGases = []struct {
	weight float64
	label  string
}{
	{MolecularHydrogen, "H2"},
	{Helium, "He"},
	{Methane, "CH4"},
	{Ammonia, "NH3"},
	{WaterVapor, "H2O"},
	{Neon, "Ne"},
	{MolecularNitrogen, "N2"},
	{CarbonMonoxide, "CO"},
	{NitricOxide, "NO"},
	{MolecularOxygen, "O2"},
	{HydrogenSulphide, "H2S"},
	{Argon, "Ar"},
	{CarbonDioxide, "CO2"},
	{NitrousOxide, "N2O"},
	{NitrogenDioxide, "NO2"},
	{Ozone, "O3"},
	{SulphurDioxide, "SO2"},
	{SulphurTrioxide, "SO3"},
	{Krypton, "Kr"},
	{Xenon, "Xe"},
}

// RetainedGas labels the lightest species heavier than the smallest
// molecular weight the body retains. It is empty past xenon.
func (b Body) RetainedGas() string {
	return RetainedGasLabel(b.MoleculeWeight)
}

func RetainedGasLabel(moleculeWeight float64) string {
	for _, g := range retainedGases {
		if moleculeWeight < g.weight {
			return g.label
		}
	}
	return ""
}
