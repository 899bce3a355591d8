package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/galaxy"
)

// NetMomentum tracks |Σ m·v| relative to Σ |m·v|. Pairwise forces cancel,
// so the ratio stays near zero; only float32 rounding moves it.
type NetMomentum struct {
	maxRatio float64
}

func NewNetMomentum() *NetMomentum { return &NetMomentum{} }

func (n *NetMomentum) Name() string { return "net_momentum" }

func (n *NetMomentum) Observe(step int, g *galaxy.Galaxy) {
	px, py, pz := Momentum(g)

	scale := 0.0
	for i, b := range g.Bodies() {
		vx, vy, vz := float64(b.VX), float64(b.VY), float64(b.VZ)
		scale += float64(g.Mass(i)) * math.Sqrt(vx*vx+vy*vy+vz*vz)
	}
	if scale == 0 {
		return
	}
	n.maxRatio = math.Max(n.maxRatio, math.Sqrt(px*px+py*py+pz*pz)/scale)
}

func (n *NetMomentum) Value() float64 { return n.maxRatio }

func (n *NetMomentum) Reset() { n.maxRatio = 0 }

// CentroidShift is the largest distance the center of mass has moved
// from where it was at the first observed step.
type CentroidShift struct {
	x0, y0, z0 float64
	maxShift   float64
	samples    int
}

func NewCentroidShift() *CentroidShift { return &CentroidShift{} }

func (c *CentroidShift) Name() string { return "centroid_shift" }

func (c *CentroidShift) Observe(step int, g *galaxy.Galaxy) {
	x, y, z := Centroid(g)
	if c.samples == 0 {
		c.x0, c.y0, c.z0 = x, y, z
	}
	c.samples++

	dx, dy, dz := x-c.x0, y-c.y0, z-c.z0
	c.maxShift = math.Max(c.maxShift, math.Sqrt(dx*dx+dy*dy+dz*dz))
}

func (c *CentroidShift) Value() float64 { return c.maxShift }

func (c *CentroidShift) Reset() {
	*c = CentroidShift{}
}
