package sim

import "github.com/san-kum/gravsim/internal/galaxy"

// Observer is notified after every completed step, on the goroutine that
// called Run. Observers must not modify g.
type Observer interface {
	OnStep(step int, g *galaxy.Galaxy)
}

type ObserverFunc func(step int, g *galaxy.Galaxy)

func (f ObserverFunc) OnStep(step int, g *galaxy.Galaxy) { f(step, g) }
