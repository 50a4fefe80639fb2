package frame

import "math"

// QuaternionToRotation builds the body(SRF)-to-inertial(ECI) rotation
// matrix from a unit attitude quaternion (q0 scalar part, q1..q3 vector
// part), per spec §4.2 step 2.
//
// Sign convention: this is the passive rotation that carries the
// coordinates of a vector fixed in the satellite reference frame into its
// ECI coordinates — the same convention used for the GST rotation below,
// so the two compose without an extra transpose. See DESIGN.md Open
// Question #2.
func QuaternionToRotation(q0, q1, q2, q3 float64) Mat3 {
	return Mat3{
		{1 - 2*q2*q2 - 2*q3*q3, 2 * (q1*q2 - q0*q3), 2 * (q0*q2 + q1*q3)},
		{2 * (q1*q2 + q0*q3), 1 - 2*q1*q1 - 2*q3*q3, 2 * (q2*q3 - q0*q1)},
		{2 * (q1*q3 - q0*q2), 2 * (q0*q1 + q2*q3), 1 - 2*q1*q1 - 2*q2*q2},
	}
}

// GST returns the Greenwich Sidereal Time in radians for the given
// Year/DoY/SOD, per spec §4.2 step 4.
func GST(year, doy int, sod float64) float64 {
	jdn := ConvertYearDoy2JulianDay(year, doy, sod) - 2415020
	f := sod / SecondsPerDayF
	degrees := Modulo(279.690983+0.9856473354*jdn+360*f+180, 360)
	return degrees * math.Pi / 180
}

// RotationZ returns the right-handed rotation about the Z axis by angle
// (radians), in the same sign convention as the GST rotation (spec §4.2
// step 4 / Sagnac correction).
func RotationZ(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

// ECIToECEF returns the rotation matrix that carries ECI coordinates into
// ECEF coordinates for the given epoch, built from Greenwich Sidereal Time
// (spec §4.2 step 4).
func ECIToECEF(year, doy int, sod float64) Mat3 {
	return RotationZ(GST(year, doy, sod))
}
