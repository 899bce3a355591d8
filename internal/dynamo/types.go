package dynamo

import (
	"fmt"
	"runtime"
)

// Reference constants of the 65536-body benchmark.
const (
	DefaultG         = 6.674e-11
	DefaultMass      = 5.97e20
	DefaultDist      = 100000.0
	DefaultZ0        = 5000.0
	DefaultSoftening = 1e-20
	DefaultDt        = 1.0
)

// Params holds the physical constants of a run. All arithmetic is float32.
type Params struct {
	G         float32
	Mass      float32
	Dist      float32
	Z0        float32
	Softening float32
	Dt        float32
}

func DefaultParams() Params {
	return Params{
		G:         DefaultG,
		Mass:      DefaultMass,
		Dist:      DefaultDist,
		Z0:        DefaultZ0,
		Softening: DefaultSoftening,
		Dt:        DefaultDt,
	}
}

// Validate rejects parameters the initializer would turn into degenerate
// states. The engine itself never validates.
func (p Params) Validate() error {
	if p.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %g", ErrParameterBounds, p.Mass)
	}
	if p.Softening < 0 {
		return fmt.Errorf("%w: softening must be non-negative, got %g", ErrParameterBounds, p.Softening)
	}
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrParameterBounds, p.Dt)
	}
	return nil
}

type Config struct {
	Params Params
	// Workers <= 0 selects runtime.NumCPU().
	Workers int
	// FastMath trades bit reproducibility across modes for throughput.
	FastMath bool
	// ValidateState checks every body for NaN/Inf after each step.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Params:  DefaultParams(),
		Workers: 0,
	}
}

// ResolveWorkers maps a requested worker count to the effective one.
func ResolveWorkers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
