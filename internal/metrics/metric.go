package metrics

import "github.com/san-kum/gravsim/internal/galaxy"

// Metric accumulates a diagnostic over the steps of a run.
type Metric interface {
	Name() string
	Observe(step int, g *galaxy.Galaxy)
	Value() float64
	Reset()
}

// Set feeds every metric on each step. It satisfies sim.Observer.
type Set []Metric

func (s Set) OnStep(step int, g *galaxy.Galaxy) {
	for _, m := range s {
		m.Observe(step, g)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}
