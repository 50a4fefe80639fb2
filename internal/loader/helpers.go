package loader

import (
	"sort"

	"github.com/de-bkg/pppcorr/internal/frame"
)

func vec3(x, y, z float64) frame.Vec3 {
	return frame.Vec3{X: x, Y: y, Z: z}
}

func sortFloat64s(xs []float64) {
	sort.Float64s(xs)
}
