// Package galaxy holds the body state of an N-body run as three parallel
// slices (positions, kinematic states, masses) sharing one body index.
package galaxy

import (
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

type Pos struct {
	X, Y, Z float32
}

// Body is the kinematic state of one body: the running velocity and the
// displacement applied at the end of the current step.
type Body struct {
	VX, VY, VZ float32
	DX, DY, DZ float32
}

type Galaxy struct {
	poses  []Pos
	bodies []Body
	masses []float32
}

// New allocates a zeroed galaxy of n bodies. Every field starts at zero,
// so a galaxy that is never loaded still behaves deterministically.
func New(n int) (*Galaxy, error) {
	if n < 0 {
		return nil, fmt.Errorf("galaxy: %w, got %d", dynamo.ErrInvalidBodyCount, n)
	}
	return &Galaxy{
		poses:  make([]Pos, n),
		bodies: make([]Body, n),
		masses: make([]float32, n),
	}, nil
}

func (g *Galaxy) Size() int { return len(g.poses) }

func (g *Galaxy) Position(i int) Pos       { return g.poses[i] }
func (g *Galaxy) SetPosition(i int, p Pos) { g.poses[i] = p }
func (g *Galaxy) Body(i int) Body          { return g.bodies[i] }
func (g *Galaxy) SetBody(i int, b Body)    { g.bodies[i] = b }
func (g *Galaxy) Mass(i int) float32       { return g.masses[i] }
func (g *Galaxy) SetMass(i int, m float32) { g.masses[i] = m }
func (g *Galaxy) Positions() []Pos         { return g.poses }
func (g *Galaxy) Bodies() []Body           { return g.bodies }
func (g *Galaxy) Masses() []float32        { return g.masses }

func (g *Galaxy) Clone() *Galaxy {
	c := &Galaxy{
		poses:  make([]Pos, len(g.poses)),
		bodies: make([]Body, len(g.bodies)),
		masses: make([]float32, len(g.masses)),
	}
	copy(c.poses, g.poses)
	copy(c.bodies, g.bodies)
	copy(c.masses, g.masses)
	return c
}

// Equal reports whether both galaxies hold bit-identical state.
func (g *Galaxy) Equal(o *Galaxy) bool {
	if g.Size() != o.Size() {
		return false
	}
	for i := range g.poses {
		if !sameBits(g.poses[i].X, o.poses[i].X) ||
			!sameBits(g.poses[i].Y, o.poses[i].Y) ||
			!sameBits(g.poses[i].Z, o.poses[i].Z) {
			return false
		}
		a, b := g.bodies[i], o.bodies[i]
		if !sameBits(a.VX, b.VX) || !sameBits(a.VY, b.VY) || !sameBits(a.VZ, b.VZ) ||
			!sameBits(a.DX, b.DX) || !sameBits(a.DY, b.DY) || !sameBits(a.DZ, b.DZ) {
			return false
		}
		if !sameBits(g.masses[i], o.masses[i]) {
			return false
		}
	}
	return true
}

func sameBits(a, b float32) bool {
	return math.Float32bits(a) == math.Float32bits(b)
}

// FirstInvalid returns the index of the first body with a NaN or Inf
// position or velocity, or -1.
func (g *Galaxy) FirstInvalid() int {
	for i := range g.poses {
		p, b := g.poses[i], g.bodies[i]
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) ||
			!finite(b.VX) || !finite(b.VY) || !finite(b.VZ) {
			return i
		}
	}
	return -1
}

func (g *Galaxy) IsValid() bool { return g.FirstInvalid() < 0 }

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MaxRelativeError compares two galaxies body by body and returns the
// largest position or velocity difference, each scaled by the largest
// magnitude of that quantity in a. Scaling by the global magnitude keeps
// bodies whose net force nearly cancels from dominating the result.
// Galaxies of different size compare as +Inf.
func MaxRelativeError(a, b *Galaxy) float64 {
	if a.Size() != b.Size() {
		return math.Inf(1)
	}

	var posScale, velScale, posDiff, velDiff float64
	for i := range a.poses {
		pa, pb := a.poses[i], b.poses[i]
		ba, bb := a.bodies[i], b.bodies[i]

		posScale = math.Max(posScale, norm(pa.X, pa.Y, pa.Z))
		velScale = math.Max(velScale, norm(ba.VX, ba.VY, ba.VZ))
		posDiff = math.Max(posDiff, norm(pa.X-pb.X, pa.Y-pb.Y, pa.Z-pb.Z))
		velDiff = math.Max(velDiff, norm(ba.VX-bb.VX, ba.VY-bb.VY, ba.VZ-bb.VZ))
	}
	return math.Max(scaled(posDiff, posScale), scaled(velDiff, velScale))
}

func norm(x, y, z float32) float64 {
	fx, fy, fz := float64(x), float64(y), float64(z)
	return math.Sqrt(fx*fx + fy*fy + fz*fz)
}

func scaled(diff, scale float64) float64 {
	switch {
	case diff == 0:
		return 0
	case scale == 0:
		return math.Inf(1)
	}
	return diff / scale
}
