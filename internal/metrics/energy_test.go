package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/galaxy"
	"github.com/san-kum/gravsim/internal/sim"
)

func pair(t *testing.T) *galaxy.Galaxy {
	t.Helper()
	g, err := galaxy.New(2)
	if err != nil {
		t.Fatal(err)
	}
	g.SetPosition(0, galaxy.Pos{X: -1})
	g.SetPosition(1, galaxy.Pos{X: 1})
	g.SetMass(0, 2)
	g.SetMass(1, 2)
	return g
}

func TestKinetic(t *testing.T) {
	g := pair(t)
	g.SetBody(0, galaxy.Body{VX: 3, VY: 4})

	if got := Kinetic(g); math.Abs(got-25) > 1e-12 {
		t.Errorf("expected kinetic energy 25, got %f", got)
	}
}

func TestPotential(t *testing.T) {
	g := pair(t)
	p := dynamo.Params{G: 1, Softening: 0}

	if got := Potential(g, p); math.Abs(got-(-2)) > 1e-12 {
		t.Errorf("expected potential -2, got %f", got)
	}
}

func TestCentroid(t *testing.T) {
	g := pair(t)
	g.SetMass(1, 6)

	cx, cy, cz := Centroid(g)
	if math.Abs(cx-0.5) > 1e-12 || cy != 0 || cz != 0 {
		t.Errorf("expected centroid (0.5,0,0), got (%f,%f,%f)", cx, cy, cz)
	}

	empty, _ := galaxy.New(0)
	if x, y, z := Centroid(empty); x != 0 || y != 0 || z != 0 {
		t.Error("expected origin for empty galaxy")
	}
}

func TestMomentumConserved(t *testing.T) {
	g, _ := galaxy.Initialize(16, dynamo.DefaultParams())
	e := sim.New(dynamo.Config{Params: dynamo.DefaultParams(), Workers: 2})
	defer e.Close()

	if err := e.Run(g, 5); err != nil {
		t.Fatal(err)
	}

	px, py, pz := Momentum(g)
	scale := 0.0
	for i, b := range g.Bodies() {
		m := float64(g.Mass(i))
		scale += m * math.Sqrt(float64(b.VX)*float64(b.VX)+float64(b.VY)*float64(b.VY))
	}
	if net := math.Sqrt(px*px + py*py + pz*pz); net/scale > 1e-4 {
		t.Errorf("net momentum %g is not small against %g", net, scale)
	}
}

func TestKineticEnergySeries(t *testing.T) {
	g, _ := galaxy.Initialize(4, dynamo.DefaultParams())
	ke := NewKineticEnergy()

	e := sim.New(dynamo.Config{Params: dynamo.DefaultParams(), Workers: 1})
	defer e.Close()
	e.AddObserver(Set{ke})

	if err := e.Run(g, 3); err != nil {
		t.Fatal(err)
	}

	series := ke.Series()
	if len(series) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(series))
	}
	if !(series[0] > 0 && series[1] > series[0] && series[2] > series[1]) {
		t.Errorf("expected kinetic energy to grow as the grid collapses, got %v", series)
	}
	if ke.Value() != series[2] {
		t.Error("Value should report the last sample")
	}

	ke.Reset()
	if ke.Value() != 0 || len(ke.Series()) != 0 {
		t.Error("expected empty series after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	p := dynamo.DefaultParams()
	g, _ := galaxy.Initialize(4, p)
	drift := NewEnergyDrift(p)

	drift.Observe(0, g)
	if drift.Value() != 0 {
		t.Errorf("expected zero drift after one sample, got %g", drift.Value())
	}

	b := g.Body(0)
	b.VX = 1000
	g.SetBody(0, b)
	drift.Observe(1, g)
	if drift.Value() <= 0 {
		t.Error("expected positive drift after injecting energy")
	}

	drift.Reset()
	if drift.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}
