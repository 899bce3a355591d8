package galaxy

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// GridSide returns the smallest s with s*s >= n.
func GridSide(n int) int {
	if n <= 0 {
		return 0
	}
	s := int(math.Sqrt(float64(n)))
	for s*s < n {
		s++
	}
	for s > 1 && (s-1)*(s-1) >= n {
		s--
	}
	return s
}

// Load overwrites every body: body i sits at ((i mod s)*Dist, i*Dist, Z0)
// with s = GridSide(n), mass p.Mass and zero velocity.
func Load(g *Galaxy, p dynamo.Params) {
	s := GridSide(g.Size())
	for i := range g.poses {
		g.poses[i] = Pos{
			X: float32(i%s) * p.Dist,
			Y: p.Dist * float32(i),
			Z: p.Z0,
		}
		g.bodies[i] = Body{}
		g.masses[i] = p.Mass
	}
}

// Initialize allocates and loads a galaxy of n bodies.
func Initialize(n int, p dynamo.Params) (*Galaxy, error) {
	g, err := New(n)
	if err != nil {
		return nil, err
	}
	Load(g, p)
	return g, nil
}
