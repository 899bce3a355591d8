package sim

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/galaxy"
)

// Engine advances a galaxy with the direct all-pairs method. Each step has
// three phases separated by a pool barrier:
//
//  1. force evaluation from the positions of the previous step
//  2. velocity and displacement update
//  3. position integration
//
// The half-step scaling 0.5·Δt is applied to the acceleration and the
// result is added to the running velocity every step. This is neither
// leapfrog nor plain Euler, and it is kept that way so trajectories match
// the reference benchmark.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	cfg       dynamo.Config
	kernel    compute.Kernel
	pool      *Pool
	observers []Observer

	// per-step scratch, owned by index range during a phase
	half   []compute.Force
	cur    *galaxy.Galaxy
	phases [3]func(lo, hi int)
}

func New(cfg dynamo.Config) *Engine {
	e := &Engine{
		cfg:    cfg,
		kernel: compute.Select(cfg.FastMath),
	}
	e.phases = [3]func(lo, hi int){e.evalForces, e.kick, e.drift}
	return e
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Kernel() compute.Kernel { return e.kernel }

// Workers returns the number of workers the last Run used, or the
// resolved configured count before the first Run.
func (e *Engine) Workers() int {
	if e.pool != nil {
		return e.pool.Workers()
	}
	return dynamo.ResolveWorkers(e.cfg.Workers)
}

// Run advances g by steps steps in place. steps == 0 leaves g untouched.
// Run only returns an error for a negative step count or, with
// ValidateState set, when a body turns NaN or Inf.
func (e *Engine) Run(g *galaxy.Galaxy, steps int) error {
	if steps < 0 {
		return fmt.Errorf("sim: %w, got %d", dynamo.ErrNegativeSteps, steps)
	}
	if steps == 0 {
		return nil
	}

	e.prepare(g.Size())
	e.cur = g
	defer func() { e.cur = nil }()

	for s := 0; s < steps; s++ {
		for _, phase := range e.phases {
			e.pool.Do(phase)
		}

		if e.cfg.ValidateState {
			if i := g.FirstInvalid(); i >= 0 {
				return &dynamo.SimulationError{Step: s, Body: i, Wrapped: dynamo.ErrInvalidState}
			}
		}

		for _, obs := range e.observers {
			obs.OnStep(s, g)
		}
	}
	return nil
}

// Close releases the worker goroutines.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Close()
		e.pool = nil
	}
}

func (e *Engine) prepare(n int) {
	if e.pool != nil && len(e.half) == n {
		return
	}
	e.Close()
	e.pool = NewPool(n, e.cfg.Workers)
	e.half = make([]compute.Force, n)
}

func (e *Engine) evalForces(lo, hi int) {
	pos, masses := e.cur.Positions(), e.cur.Masses()
	p := e.cfg.Params

	for j := lo; j < hi; j++ {
		f := e.kernel.Accumulate(pos, masses, j, p.G, p.Softening)
		m := masses[j]
		e.half[j] = compute.Force{
			X: f.X / m * 0.5 * p.Dt,
			Y: f.Y / m * 0.5 * p.Dt,
			Z: f.Z / m * 0.5 * p.Dt,
		}
	}
}

func (e *Engine) kick(lo, hi int) {
	bodies := e.cur.Bodies()
	dt := e.cfg.Params.Dt

	for j := lo; j < hi; j++ {
		b := &bodies[j]
		h := e.half[j]
		b.VX += h.X
		b.VY += h.Y
		b.VZ += h.Z
		b.DX = b.VX * dt
		b.DY = b.VY * dt
		b.DZ = b.VZ * dt
	}
}

func (e *Engine) drift(lo, hi int) {
	pos, bodies := e.cur.Positions(), e.cur.Bodies()

	for j := lo; j < hi; j++ {
		b := bodies[j]
		pos[j].X += b.DX
		pos[j].Y += b.DY
		pos[j].Z += b.DZ
	}
}
