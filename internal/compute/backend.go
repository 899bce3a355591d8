package compute

import "github.com/san-kum/gravsim/internal/galaxy"

// Force is the net gravitational force on one body, alive for one step.
type Force struct {
	X, Y, Z float32
}

type Kernel interface {
	Name() string
	// Accumulate returns the net force on body j from every body in pos.
	// It only reads pos and masses.
	Accumulate(pos []galaxy.Pos, masses []float32, j int, g, softening float32) Force
}

func Select(fast bool) Kernel {
	if fast {
		return Fast{}
	}
	return Precise{}
}
