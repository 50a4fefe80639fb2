package numeric

import (
	"testing"

	"github.com/de-bkg/pppcorr/internal/frame"
	"github.com/stretchr/testify/assert"
)

func TestLagrangeInterpolate1_reproducesLinear(t *testing.T) {
	assert := assert.New(t)
	xs := []float64{0, 1, 2, 3}
	ys := []float64{10, 12, 14, 16} // y = 10 + 2x
	got := LagrangeInterpolate1(xs, ys, 1.5)
	assert.InDelta(13.0, got, 1e-9)
}

func TestLagrangeInterpolateVec3_exactAtSample(t *testing.T) {
	assert := assert.New(t)
	xs := []float64{100, 200, 300, 400, 500}
	ys := []frame.Vec3{
		{X: 1, Y: 2, Z: 3},
		{X: 2, Y: 4, Z: 6},
		{X: 3, Y: 6, Z: 9},
		{X: 4, Y: 8, Z: 12},
		{X: 5, Y: 10, Z: 15},
	}
	got := LagrangeInterpolateVec3(xs, ys, 300)
	assert.InDelta(3.0, got.X, 1e-6)
	assert.InDelta(6.0, got.Y, 1e-6)
	assert.InDelta(9.0, got.Z, 1e-6)
}

func TestLinearInterpolate_roundTripAtSamples(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(5.0, LinearInterpolate(0, 5, 30, 8, 0))
	assert.InDelta(8.0, LinearInterpolate(0, 5, 30, 8, 30), 1e-12)
	assert.InDelta(6.5, LinearInterpolate(0, 5, 30, 8, 15), 1e-12)
}

func TestPolyFit_recoversExactPolynomial(t *testing.T) {
	assert := assert.New(t)
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2 + 3*x - 0.5*x*x
	}
	coeffs := PolyFit(xs, ys, 2)
	assert.InDelta(2.0, coeffs[0], 1e-6)
	assert.InDelta(3.0, coeffs[1], 1e-6)
	assert.InDelta(-0.5, coeffs[2], 1e-6)
	assert.InDelta(ys[4], PolyEval(coeffs, xs[4]), 1e-6)
}
