// Package frame implements the time and reference-frame transforms shared
// by the preprocessor and the correction engine: Julian day conversions,
// Greenwich Sidereal Time, quaternion-based body-to-inertial rotation and
// the ECI<->ECEF transform (spec §4.4).
package frame

import "math"

// Modulo returns the positive-remainder modulo of x by m, matching the
// mathematical convention (unlike Go's %, which preserves the sign of x).
func Modulo(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// ConvertYearMonthDay2JulianDay returns the Julian day number for a
// Gregorian calendar date, using the standard Fliegel-Van Flandern
// algorithm extended with a fractional day from sod.
func ConvertYearMonthDay2JulianDay(year, month, day int, sod float64) float64 {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3

	jdn := float64(day) + float64((153*m+2)/5) + float64(365*y) +
		float64(y/4) - float64(y/100) + float64(y/400) - 32045

	return jdn + (sod-43200)/SecondsPerDayF
}

// SecondsPerDayF is a local copy of gnssconst.SecondsPerDay so that frame
// stays a leaf package with no internal imports (spec §2 dependency
// ordering).
const SecondsPerDayF = 86400.0

// ConvertYearDoy2JulianDay returns the Julian day for a year/day-of-year/
// second-of-day triple, by converting DoY to a calendar month/day first.
func ConvertYearDoy2JulianDay(year, doy int, sod float64) float64 {
	month, day := doyToMonthDay(year, doy)
	return ConvertYearMonthDay2JulianDay(year, month, day, sod)
}

func isLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

var daysInMonthNonLeap = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func doyToMonthDay(year, doy int) (month, day int) {
	remaining := doy
	for m := 0; m < 12; m++ {
		dim := daysInMonthNonLeap[m]
		if m == 1 && isLeap(year) {
			dim = 29
		}
		if remaining <= dim {
			return m + 1, remaining
		}
		remaining -= dim
	}
	// DoY beyond the year's length: clamp to Dec 31, callers pass valid DoY.
	return 12, 31
}
