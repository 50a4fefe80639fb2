// Package numeric holds the small numerical kernels the correction
// engine, ephemeris accessors and preprocessor need: Lagrange
// interpolation over a handful of precise-orbit samples, two-point linear
// interpolation for clock bias, and a least-squares polynomial fit over a
// geometry-free phase buffer for cycle-slip detection (spec §4.1, §4.2).
package numeric

import "github.com/de-bkg/pppcorr/internal/frame"

// LagrangeInterpolateVec3 interpolates a 3-vector quantity sampled at xs
// (e.g. seconds-of-day) at the target abscissa x, using the standard
// product-form Lagrange basis polynomials (spec §4.2, satellite CoM
// position at transmission time). len(xs) must equal len(ys); a 10-point
// window is typical but any length works.
func LagrangeInterpolateVec3(xs []float64, ys []frame.Vec3, x float64) frame.Vec3 {
	n := len(xs)
	var out frame.Vec3
	for i := 0; i < n; i++ {
		li := 1.0
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			li *= (x - xs[j]) / (xs[i] - xs[j])
		}
		out = out.Add(ys[i].Scale(li))
	}
	return out
}

// LagrangeInterpolate1 is the scalar counterpart of
// LagrangeInterpolateVec3, used nowhere in this module today but kept
// alongside it since both are instances of the same basis computation.
func LagrangeInterpolate1(xs, ys []float64, x float64) float64 {
	n := len(xs)
	var out float64
	for i := 0; i < n; i++ {
		li := 1.0
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			li *= (x - xs[j]) / (xs[i] - xs[j])
		}
		out += ys[i] * li
	}
	return out
}

// LinearInterpolate linearly interpolates y at x given two bracketing
// samples (x0,y0) and (x1,y1), per spec §4.2's satellite clock bias
// interpolation. Degenerates to y0 when x0 == x1.
func LinearInterpolate(x0, y0, x1, y1, x float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)/(x1-x0)*(x-x0)
}
