package numeric

import "gonum.org/v1/gonum/mat"

// PolyFit fits a polynomial of the given degree to (xs, ys) by ordinary
// least squares and returns its coefficients, lowest order first
// (coeffs[0] + coeffs[1]*x + ... + coeffs[degree]*x^degree). Used by the
// cycle-slip detector to predict the next geometry-free phase sample from
// the buffered history (spec §4.1).
//
// len(xs) must be > degree; degenerate windows are the caller's concern
// (the preprocessor only calls this once its buffer is full).
func PolyFit(xs, ys []float64, degree int) []float64 {
	n := len(xs)
	design := mat.NewDense(n, degree+1, nil)
	for i, x := range xs {
		p := 1.0
		for j := 0; j <= degree; j++ {
			design.Set(i, j, p)
			p *= x
		}
	}
	obs := mat.NewVecDense(n, ys)

	var qr mat.QR
	qr.Factorize(design)

	var coeffs mat.VecDense
	_ = qr.SolveVecTo(&coeffs, false, obs)

	out := make([]float64, degree+1)
	for i := range out {
		out[i] = coeffs.AtVec(i)
	}
	return out
}

// PolyEval evaluates the polynomial with the given lowest-order-first
// coefficients at x.
func PolyEval(coeffs []float64, x float64) float64 {
	var out, p float64
	p = 1
	for _, c := range coeffs {
		out += c * p
		p *= x
	}
	return out
}
