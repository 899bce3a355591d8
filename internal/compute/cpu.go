package compute

import (
	"math"

	"github.com/san-kum/gravsim/internal/galaxy"
)

// Precise evaluates 1/sqrt(d²)³ with a correctly rounded square root and
// sums contributions in index order.
type Precise struct{}

func (Precise) Name() string { return "precise" }

func (Precise) Accumulate(pos []galaxy.Pos, masses []float32, j int, g, softening float32) Force {
	masses = masses[:len(pos)]
	pj := pos[j]
	gm := g * masses[j]

	var fx, fy, fz float32
	for i, pi := range pos {
		dx := pi.X - pj.X
		dy := pi.Y - pj.Y
		dz := pi.Z - pj.Z
		d2 := dx*dx + dy*dy + dz*dz + softening

		d := float32(math.Sqrt(float64(d2)))
		inv3 := 1 / (d * d * d)

		f := gm * masses[i]
		fx += f * (dx * inv3)
		fy += f * (dy * inv3)
		fz += f * (dz * inv3)
	}
	return Force{fx, fy, fz}
}
