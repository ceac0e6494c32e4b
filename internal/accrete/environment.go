package accrete

import (
	"fmt"
	"math"
)

// primary is what a body orbits, as far as the environment formulas care.
// For a planet it is the star and the planet's own orbit; a moon borrows its
// host planet's mass and the host's distance from the star.
type primary struct {
	mass     float64
	distance float64
	zone     int
}

// OrbitalZone returns the composition zone (1, 2 or 3) of an orbit at
// radius AU around a star of the given luminosity ratio.
func OrbitalZone(luminosity, radius float64) int {
	switch {
	case radius < 4.0*math.Sqrt(luminosity):
		return 1
	case radius < 15.0*math.Sqrt(luminosity):
		return 2
	}
	return 3
}

func mustZone(zone int) {
	if zone < 1 || zone > 3 {
		panic(fmt.Sprintf("accrete: orbital zone %d outside 1..3", zone))
	}
}

// volumeRadius returns the radius in km of a sphere of mass (solar masses)
// and density (g/cc).
func volumeRadius(mass, density float64) float64 {
	volume := mass * SolarMassInGrams / density
	return math.Cbrt(3.0*volume/(4.0*math.Pi)) / CMPerKM
}

// kothariRadius is Kothari's equation-of-state radius in km, with the mean
// atomic weight and number picked by zone and composition.
func kothariRadius(mass float64, giant bool, zone int) float64 {
	mustZone(zone)
	var weight, num float64
	switch {
	case zone == 1 && giant:
		weight, num = 9.5, 4.5
	case zone == 1:
		weight, num = 15.0, 8.0
	case zone == 2 && giant:
		weight, num = 2.47, 2.0
	case zone == 2:
		weight, num = 10.0, 5.0
	case giant:
		weight, num = 7.0, 4.0
	default:
		weight, num = 10.0, 5.0
	}

	temp := (2.0 * kothariBeta * math.Cbrt(SolarMassInGrams)) / (kothariA1 * math.Cbrt(weight*num))
	temp2 := kothariA2 * math.Pow(weight, 4.0/3.0) * math.Pow(SolarMassInGrams, 2.0/3.0)
	temp2 = temp2 * math.Pow(mass, 2.0/3.0)
	temp2 = temp2 / (kothariA1 * num * num)
	temp2 = 1.0 + temp2
	temp = temp / temp2
	return temp * math.Cbrt(mass) / CMPerKM
}

func empiricalDensity(mass, orbitalRadius, rEcosphere float64, giant bool) float64 {
	temp := math.Pow(mass*EarthMassesPerSolarMass, 1.0/8.0)
	temp = temp * math.Pow(rEcosphere/orbitalRadius, 0.25)
	if giant {
		return temp * 1.2
	}
	return temp * 5.5
}

func volumeDensity(mass, radius float64) float64 {
	grams := mass * SolarMassInGrams
	cm := radius * CMPerKM
	return grams / (4.0 * math.Pi * cm * cm * cm / 3.0)
}

// period returns the orbital period in Earth days.
func period(separation, smallMass, largeMass float64) float64 {
	years := math.Sqrt(math.Pow(separation, 3.0) / (smallMass + largeMass))
	return years * DaysInAYear
}

// dayLength returns the rotation period in hours. A body whose natural spin
// would be slower than its orbit is locked: into the (1-e)/(1+e) spin-orbit
// resonance when its orbit is eccentric, otherwise to the orbital period.
func (s *simulation) dayLength(mass, radius, orbitalPeriod, e float64, giant bool) (float64, bool) {
	k2 := 0.33
	if giant {
		k2 = 0.24
	}
	grams := mass * SolarMassInGrams
	cm := radius * CMPerKM
	angular := math.Sqrt(2.0 * DayLengthJ * grams / (k2 * cm * cm))
	hours := 1.0 / ((angular / RadiansPerRotation) * SecondsPerHour)

	yearHours := orbitalPeriod * HoursPerDay
	if !(hours >= yearHours) {
		return hours, false
	}

	resonance := ((1.0 - e) / (1.0 + e)) * yearHours
	s.notifyf("spin: possible resonance at %.2f hours", resonance)
	if e > 0.01 {
		s.notifyf("spin: resonance locked")
		return resonance, true
	}
	return yearHours, false
}

func (s *simulation) inclination(orbitalRadius float64) int {
	tilt := int(math.Pow(orbitalRadius, 0.2) * s.rnd.About(EarthAxialTilt, 0.4))
	return tilt % 360
}

// escapeVelocity is in cm/s.
func escapeVelocity(mass, radius float64) float64 {
	return math.Sqrt(2.0 * GravConstant * mass * SolarMassInGrams / (radius * CMPerKM))
}

// rmsVelocity is the RMS speed in cm/s of a gas of the given molecular weight
// in the exosphere of a body at orbitalRadius AU.
func rmsVelocity(molecularWeight, orbitalRadius float64) float64 {
	exosphereTemp := EarthExosphereTemp / (orbitalRadius * orbitalRadius)
	return math.Sqrt(3.0*MolarGasConst*exosphereTemp/molecularWeight) * CMPerMeter
}

// moleculeLimit is the smallest molecular weight the body holds on to.
func moleculeLimit(mass, radius float64) float64 {
	v := escapeVelocity(mass, radius)
	return 3.0 * math.Pow(GasRetentionThreshold*CMPerMeter, 2.0) * MolarGasConst * EarthExosphereTemp / (v * v)
}

func acceleration(mass, radius float64) float64 {
	cm := radius * CMPerKM
	return GravConstant * (mass * SolarMassInGrams) / (cm * cm)
}

func gravity(accel float64) float64 {
	return accel / EarthAcceleration
}

// greenhouse reports a runaway greenhouse effect: inside the greenhouse
// radius and in zone 1.
func greenhouse(zone int, orbitalRadius, greenhouseRadius float64) bool {
	return orbitalRadius < greenhouseRadius && zone == 1
}

// volatileInventory is unitless. A body that cannot hold its gases has none.
func (s *simulation) volatileInventory(mass, escapeVel, rmsVel, stellarMass float64, zone int, greenhouse bool) float64 {
	if !(escapeVel/rmsVel >= GasRetentionThreshold) {
		return 0
	}
	mustZone(zone)
	var proportion float64
	switch zone {
	case 1:
		proportion = 100000.0
	case 2:
		proportion = 75000.0
	case 3:
		proportion = 250.0
	}
	inventory := s.rnd.About(proportion*mass*EarthMassesPerSolarMass/stellarMass, 0.2)
	if greenhouse {
		return inventory
	}
	return inventory / 100.0
}

// pressure is in millibars.
func pressure(inventory, radius, gravity float64) float64 {
	r := EarthRadiusKM / radius
	return inventory * gravity / (r * r)
}

// boilingPoint of water in Kelvin at the given surface pressure.
func boilingPoint(surfacePressure float64) float64 {
	bars := surfacePressure / MillibarsPerBar
	return 1.0 / (math.Log(bars)/-5050.5 + 1.0/373.0)
}

func hydrosphereFraction(inventory, radius float64) float64 {
	r := EarthRadiusKM / radius
	return math.Min(1.0, (0.71*inventory/1000.0)*r*r)
}

func cloudFraction(surfaceTemp, moleculeWeight, radius, hydrosphere float64) float64 {
	if moleculeWeight > WaterVapor {
		return 0
	}
	area := 4.0 * math.Pi * radius * radius
	hydroMass := hydrosphere * area * EarthWaterMassPerArea
	vapor := (0.00000001 * hydroMass) * math.Exp(cloudQ2*(surfaceTemp-288.0))
	return math.Min(1.0, CloudCoverageFactor*vapor/area)
}

func iceFraction(hydrosphere, surfaceTemp float64) float64 {
	surfaceTemp = math.Min(surfaceTemp, 328.0)
	ice := math.Pow((328.0-surfaceTemp)/90.0, 5.0)
	ice = math.Min(ice, 1.5*hydrosphere)
	return math.Min(ice, 1.0)
}

func effectiveTemp(rEcosphere, orbitalRadius, albedo float64) float64 {
	return math.Sqrt(rEcosphere/orbitalRadius) * math.Pow((1.0-albedo)/0.7, 0.25) * EarthEffectiveTemp
}

func greenhouseRise(opticalDepth, effTemp, surfacePressure float64) float64 {
	convection := EarthConvectionFactor * math.Pow(surfacePressure/EarthSurfPresMillibars, 0.25)
	return (math.Pow(1.0+0.75*opticalDepth, 0.25) - 1.0) * effTemp * convection
}

// planetAlbedo weighs rock, water and ice by their uncovered fractions plus
// the cloud layer above them.
func (s *simulation) planetAlbedo(water, clouds, ice, surfacePressure float64) float64 {
	rock := 1.0 - water - ice
	components := 0.0
	for _, f := range []float64{water, ice, rock} {
		if f > 0 {
			components++
		}
	}
	adjust := clouds / components

	if rock >= adjust {
		rock -= adjust
	} else {
		rock = 0
	}
	if water > adjust {
		water -= adjust
	} else {
		water = 0
	}
	if ice > adjust {
		ice -= adjust
	} else {
		ice = 0
	}

	airless := surfacePressure == 0
	cloudPart := clouds * s.rnd.About(CloudAlbedo, 0.2)
	var rockPart, icePart float64
	if airless {
		rockPart = rock * s.rnd.About(AirlessRockyAlbedo, 0.3)
	} else {
		rockPart = rock * s.rnd.About(RockyAlbedo, 0.1)
	}
	waterPart := water * s.rnd.About(WaterAlbedo, 0.2)
	if airless {
		icePart = ice * s.rnd.About(AirlessIceAlbedo, 0.4)
	} else {
		icePart = ice * s.rnd.About(IceAlbedo, 0.1)
	}
	return cloudPart + rockPart + waterPart + icePart
}

// opacity is the optical depth of the atmosphere.
func opacity(moleculeWeight, surfacePressure float64) float64 {
	var depth float64
	switch {
	case moleculeWeight >= 0 && moleculeWeight < 10:
		depth = 3.0
	case moleculeWeight >= 10 && moleculeWeight < 20:
		depth = 2.34
	case moleculeWeight >= 20 && moleculeWeight < 30:
		depth = 1.0
	case moleculeWeight >= 30 && moleculeWeight < 45:
		depth = 0.15
	case moleculeWeight >= 45 && moleculeWeight < 100:
		depth = 0.05
	}

	switch {
	case surfacePressure >= 70.0*EarthSurfPresMillibars:
		depth *= 8.333
	case surfacePressure >= 50.0*EarthSurfPresMillibars:
		depth *= 6.666
	case surfacePressure >= 30.0*EarthSurfPresMillibars:
		depth *= 3.333
	case surfacePressure >= 10.0*EarthSurfPresMillibars:
		depth *= 2.0
	case surfacePressure >= 5.0*EarthSurfPresMillibars:
		depth *= 1.5
	}
	return depth
}

// iterateSurfaceTemp solves for the surface temperature of a rocky body at
// distance AU from the star. Albedo depends on the water, cloud and ice cover,
// which depend on temperature; the loop runs until two estimates are within
// one Kelvin.
func (s *simulation) iterateSurfaceTemp(b *Body, distance float64) error {
	depth := opacity(b.MoleculeWeight, b.SurfacePressure)
	eff := effectiveTemp(s.rEcosphere, distance, EarthAlbedo)
	temp := eff + greenhouseRise(depth, eff, b.SurfacePressure)
	prev := temp - 5.0

	var albedo, water, clouds, ice float64
	for i := 0; math.Abs(temp-prev) > 1.0; i++ {
		if i >= MaxTemperatureIterations {
			return fmt.Errorf("surface temperature at %.4f AU: no convergence after %d iterations: %w", b.A, i, ErrNonConvergent)
		}
		prev = temp
		water = hydrosphereFraction(b.VolatileGasInventory, b.Radius)
		clouds = cloudFraction(temp, b.MoleculeWeight, b.Radius, water)
		ice = iceFraction(water, temp)
		if temp >= b.BoilPoint || temp <= FreezingPointOfWater {
			water = 0
		}
		albedo = s.planetAlbedo(water, clouds, ice, b.SurfacePressure)
		depth = opacity(b.MoleculeWeight, b.SurfacePressure)
		eff = effectiveTemp(s.rEcosphere, distance, albedo)
		temp = eff + greenhouseRise(depth, eff, b.SurfacePressure)
	}

	b.Hydrosphere = water
	b.CloudCover = clouds
	b.IceCover = ice
	b.Albedo = albedo
	b.SurfaceTemp = temp
	return nil
}

// deriveEnvironment fills in every physical property of b from its orbit,
// mass and gas giant flag.
func (s *simulation) deriveEnvironment(b *Body, p primary) error {
	if !(b.Mass > 0) {
		panic(fmt.Sprintf("accrete: body at %.4f AU has mass %g", b.A, b.Mass))
	}

	b.OrbitZone = p.zone
	if b.GasGiant {
		b.Density = empiricalDensity(b.Mass, p.distance, s.rEcosphere, true)
		b.Radius = volumeRadius(b.Mass, b.Density)
	} else {
		b.Radius = kothariRadius(b.Mass, false, b.OrbitZone)
		b.Density = volumeDensity(b.Mass, b.Radius)
	}
	if !(b.Radius > 0) {
		panic(fmt.Sprintf("accrete: body at %.4f AU has radius %g", b.A, b.Radius))
	}

	b.OrbitalPeriod = period(b.A, b.Mass, p.mass)
	b.DayLength, b.ResonantPeriod = s.dayLength(b.Mass, b.Radius, b.OrbitalPeriod, b.E, b.GasGiant)
	b.AxialTilt = s.inclination(p.distance)
	b.EscapeVelocity = escapeVelocity(b.Mass, b.Radius)
	b.SurfaceAccel = acceleration(b.Mass, b.Radius)
	b.RMSVelocity = rmsVelocity(MolecularNitrogen, p.distance)
	b.MoleculeWeight = moleculeLimit(b.Mass, b.Radius)

	if b.GasGiant {
		b.SurfaceGravity = IncrediblyLargeNumber
		b.GreenhouseEffect = false
		b.VolatileGasInventory = IncrediblyLargeNumber
		b.SurfacePressure = IncrediblyLargeNumber
		b.BoilPoint = IncrediblyLargeNumber
		b.Hydrosphere = IncrediblyLargeNumber
		b.SurfaceTemp = IncrediblyLargeNumber
		b.Albedo = s.rnd.About(GasGiantAlbedo, 0.1)
		return nil
	}

	b.SurfaceGravity = gravity(b.SurfaceAccel)
	b.GreenhouseEffect = greenhouse(b.OrbitZone, p.distance, s.rGreenhouse)
	b.VolatileGasInventory = s.volatileInventory(b.Mass, b.EscapeVelocity, b.RMSVelocity, s.stellarMass, b.OrbitZone, b.GreenhouseEffect)
	b.SurfacePressure = pressure(b.VolatileGasInventory, b.Radius, b.SurfaceGravity)
	if b.SurfacePressure == 0 {
		b.BoilPoint = 0
	} else {
		b.BoilPoint = boilingPoint(b.SurfacePressure)
	}
	return s.iterateSurfaceTemp(b, p.distance)
}
