package metrics

import "github.com/san-kum/gravsim/internal/galaxy"

// Stability is the fraction of observed steps on which every body was
// finite. Unlike the engine's ValidateState it never stops a run.
type Stability struct {
	violations int
	samples    int
	firstBad   int
}

func NewStability() *Stability {
	return &Stability{firstBad: -1}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(step int, g *galaxy.Galaxy) {
	s.samples++
	if g.FirstInvalid() >= 0 {
		s.violations++
		if s.firstBad < 0 {
			s.firstBad = step
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

// FirstInvalidStep returns the first step with a NaN or Inf body, or -1.
func (s *Stability) FirstInvalidStep() int { return s.firstBad }

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.firstBad = -1
}
