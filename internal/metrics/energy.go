package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/galaxy"
)

// Kinetic returns Σ ½·m·|v|² in float64.
func Kinetic(g *galaxy.Galaxy) float64 {
	n := g.Size()
	if n == 0 {
		return 0
	}
	masses := make([]float64, n)
	speeds := make([]float64, n)
	for i, b := range g.Bodies() {
		vx, vy, vz := float64(b.VX), float64(b.VY), float64(b.VZ)
		masses[i] = float64(g.Mass(i))
		speeds[i] = vx*vx + vy*vy + vz*vz
	}
	return 0.5 * floats.Dot(masses, speeds)
}

// Potential returns the softened pairwise potential energy. It is O(n²).
func Potential(g *galaxy.Galaxy, p dynamo.Params) float64 {
	pos, masses := g.Positions(), g.Masses()
	gc, soft := float64(p.G), float64(p.Softening)

	pe := 0.0
	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			dx := float64(pos[j].X) - float64(pos[i].X)
			dy := float64(pos[j].Y) - float64(pos[i].Y)
			dz := float64(pos[j].Z) - float64(pos[i].Z)
			r := math.Sqrt(dx*dx + dy*dy + dz*dz + soft)
			pe -= gc * float64(masses[i]) * float64(masses[j]) / r
		}
	}
	return pe
}

func Momentum(g *galaxy.Galaxy) (px, py, pz float64) {
	for i, b := range g.Bodies() {
		m := float64(g.Mass(i))
		px += m * float64(b.VX)
		py += m * float64(b.VY)
		pz += m * float64(b.VZ)
	}
	return
}

// Centroid returns the center of mass. An empty or massless galaxy has
// its centroid at the origin.
func Centroid(g *galaxy.Galaxy) (cx, cy, cz float64) {
	total := 0.0
	for i, p := range g.Positions() {
		m := float64(g.Mass(i))
		cx += m * float64(p.X)
		cy += m * float64(p.Y)
		cz += m * float64(p.Z)
		total += m
	}
	if total == 0 {
		return 0, 0, 0
	}
	return cx / total, cy / total, cz / total
}

// KineticEnergy records the kinetic energy after every step.
type KineticEnergy struct {
	series []float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(step int, g *galaxy.Galaxy) {
	k.series = append(k.series, Kinetic(g))
}

func (k *KineticEnergy) Value() float64 {
	if len(k.series) == 0 {
		return 0
	}
	return k.series[len(k.series)-1]
}

func (k *KineticEnergy) Series() []float64 { return k.series }

func (k *KineticEnergy) Reset() { k.series = k.series[:0] }

// EnergyDrift tracks the largest relative change in total energy against
// the first observed step. Each observation costs O(n²).
type EnergyDrift struct {
	params   dynamo.Params
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(p dynamo.Params) *EnergyDrift {
	return &EnergyDrift{params: p}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(step int, g *galaxy.Galaxy) {
	energy := Kinetic(g) + Potential(g, e.params)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
