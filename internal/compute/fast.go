package compute

import (
	"math"

	"github.com/san-kum/gravsim/internal/galaxy"
)

const lanes = 4

// Fast replaces the square root and division with an approximate
// reciprocal square root and splits the sum over four accumulators.
// Low-order bits differ from Precise; relative error stays well under 1e-3.
type Fast struct{}

func (Fast) Name() string { return "fast" }

func (Fast) Accumulate(pos []galaxy.Pos, masses []float32, j int, g, softening float32) Force {
	masses = masses[:len(pos)]
	pj := pos[j]
	gm := g * masses[j]

	var ax, ay, az [lanes]float32
	n := len(pos)
	i := 0
	for ; i+lanes <= n; i += lanes {
		for k := 0; k < lanes; k++ {
			x, y, z := fastPair(pj, pos[i+k], gm*masses[i+k], softening)
			ax[k] += x
			ay[k] += y
			az[k] += z
		}
	}
	for ; i < n; i++ {
		x, y, z := fastPair(pj, pos[i], gm*masses[i], softening)
		ax[0] += x
		ay[0] += y
		az[0] += z
	}

	return Force{
		X: (ax[0] + ax[1]) + (ax[2] + ax[3]),
		Y: (ay[0] + ay[1]) + (ay[2] + ay[3]),
		Z: (az[0] + az[1]) + (az[2] + az[3]),
	}
}

func fastPair(pj, pi galaxy.Pos, f, softening float32) (float32, float32, float32) {
	dx := pi.X - pj.X
	dy := pi.Y - pj.Y
	dz := pi.Z - pj.Z
	d2 := dx*dx + dy*dy + dz*dz + softening

	r := rsqrt(d2)
	inv3 := r * r * r
	return f * (dx * inv3), f * (dy * inv3), f * (dz * inv3)
}

// rsqrt approximates 1/sqrt(x) from a bit-level seed refined by two Newton
// steps.
func rsqrt(x float32) float32 {
	half := 0.5 * x
	y := math.Float32frombits(0x5f375a86 - math.Float32bits(x)>>1)
	y *= 1.5 - half*y*y
	y *= 1.5 - half*y*y
	return y
}
