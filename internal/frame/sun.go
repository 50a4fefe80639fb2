package frame

import "math"

// FindSun returns an approximate ECEF Sun position (metres) for the given
// Year/DoY/SOD (spec §4.4 "findSun", described there as an external
// collaborator whose output the core only consumes). The formula is the
// standard low-precision solar ephemeris from the Astronomical Almanac
// (mean longitude + equation-of-center, corrected to the ecliptic, one
// astronomical unit scaled to metres), rotated into ECEF with the same
// GST convention as the rest of the correction engine.
func FindSun(year, doy int, sod float64) Vec3 {
	const julianEpoch2000 = 2451545.0
	const auMetres = 1.495978707e11

	jd := ConvertYearDoy2JulianDay(year, doy, sod)
	n := jd - julianEpoch2000

	meanLongitude := Modulo(280.460+0.9856474*n, 360) * math.Pi / 180
	meanAnomaly := Modulo(357.528+0.9856003*n, 360) * math.Pi / 180

	eclipticLongitude := meanLongitude +
		(1.915*math.Pi/180)*math.Sin(meanAnomaly) +
		(0.020*math.Pi/180)*math.Sin(2*meanAnomaly)
	obliquity := (23.439 - 0.0000004*n) * math.Pi / 180

	distanceAU := 1.00014 - 0.01671*math.Cos(meanAnomaly) - 0.00014*math.Cos(2*meanAnomaly)
	distance := distanceAU * auMetres

	sunECI := Vec3{
		X: distance * math.Cos(eclipticLongitude),
		Y: distance * math.Cos(obliquity) * math.Sin(eclipticLongitude),
		Z: distance * math.Sin(obliquity) * math.Sin(eclipticLongitude),
	}

	return ECIToECEF(year, doy, sod).MulVec(sunECI)
}
