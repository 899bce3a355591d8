package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/galaxy"
	"github.com/san-kum/gravsim/internal/sim"
)

func run(g *galaxy.Galaxy, steps, workers int, fast bool) {
	cfg := dynamo.DefaultConfig()
	cfg.Workers = workers
	cfg.FastMath = fast
	e := sim.New(cfg)
	defer e.Close()
	Expect(e.Run(g, steps)).To(Succeed())
}

var _ = Describe("Engine", func() {
	var params dynamo.Params

	BeforeEach(func() {
		params = dynamo.DefaultParams()
	})

	DescribeTable("a single body feels no force",
		func(steps int, fast bool) {
			g, err := galaxy.Initialize(1, params)
			Expect(err).NotTo(HaveOccurred())
			start := g.Position(0)

			run(g, steps, 4, fast)

			Expect(g.Body(0)).To(Equal(galaxy.Body{}))
			Expect(g.Position(0)).To(Equal(start))
		},
		Entry("one step", 1, false),
		Entry("many steps", 50, false),
		Entry("many steps, fast math", 50, true),
	)

	It("gives a pair equal and opposite velocities after one step", func() {
		g, err := galaxy.Initialize(2, params)
		Expect(err).NotTo(HaveOccurred())

		run(g, 1, 2, false)

		a, b := g.Body(0), g.Body(1)
		Expect(a.VX).To(Equal(-b.VX))
		Expect(a.VY).To(Equal(-b.VY))
		Expect(a.VZ).To(Equal(-b.VZ))
		Expect(a.VX).To(BeNumerically(">", 0))
		Expect(a.VY).To(BeNumerically(">", 0))
	})

	Describe("the four-body grid", func() {
		var g *galaxy.Galaxy

		BeforeEach(func() {
			var err error
			g, err = galaxy.Initialize(4, params)
			Expect(err).NotTo(HaveOccurred())
		})

		It("starts on the documented grid at rest", func() {
			d, z := params.Dist, params.Z0
			Expect(g.Positions()).To(Equal([]galaxy.Pos{
				{X: 0, Y: 0, Z: z},
				{X: d, Y: d, Z: z},
				{X: 0, Y: 2 * d, Z: z},
				{X: d, Y: 3 * d, Z: z},
			}))
			for i := 0; i < 4; i++ {
				Expect(g.Mass(i)).To(Equal(params.Mass))
				Expect(g.Body(i)).To(Equal(galaxy.Body{}))
			}
		})

		It("moves every body toward the centroid in one step", func() {
			before := g.Clone()
			var cx, cy, cz float64
			for _, p := range before.Positions() {
				cx += float64(p.X) / 4
				cy += float64(p.Y) / 4
				cz += float64(p.Z) / 4
			}

			run(g, 1, 4, false)

			for i := 0; i < 4; i++ {
				p0, p1 := before.Position(i), g.Position(i)
				dx := float64(p1.X) - float64(p0.X)
				dy := float64(p1.Y) - float64(p0.Y)
				dz := float64(p1.Z) - float64(p0.Z)
				Expect(math.Sqrt(dx*dx+dy*dy+dz*dz)).To(BeNumerically(">", 0), "body %d did not move", i)

				toward := dx*(cx-float64(p0.X)) + dy*(cy-float64(p0.Y)) + dz*(cz-float64(p0.Z))
				Expect(toward).To(BeNumerically(">", 0), "body %d moved away from the centroid", i)

				b := g.Body(i)
				Expect(b.DX).To(Equal(b.VX * params.Dt))
				Expect(b.DY).To(Equal(b.VY * params.Dt))
			}
		})
	})

	DescribeTable("a mirrored pair stays mirrored",
		func(fast bool, workers int) {
			g, err := galaxy.New(2)
			Expect(err).NotTo(HaveOccurred())
			g.SetPosition(0, galaxy.Pos{X: -params.Dist})
			g.SetPosition(1, galaxy.Pos{X: params.Dist})
			g.SetMass(0, params.Mass)
			g.SetMass(1, params.Mass)

			cfg := dynamo.DefaultConfig()
			cfg.FastMath = fast
			cfg.Workers = workers
			e := sim.New(cfg)
			defer e.Close()

			steps := 0
			e.AddObserver(sim.ObserverFunc(func(step int, g *galaxy.Galaxy) {
				a, b := g.Position(0), g.Position(1)
				Expect(a.X).To(Equal(-b.X), "step %d", step)
				Expect(a.Y).To(BeZero())
				Expect(b.Y).To(BeZero())
				steps++
			}))

			Expect(e.Run(g, 40)).To(Succeed())
			Expect(steps).To(Equal(40))
			Expect(g.Position(0).X).To(BeNumerically(">", -params.Dist))
		},
		Entry("precise, sequential", false, 1),
		Entry("precise, parallel", false, 2),
		Entry("fast, parallel", true, 2),
	)

	It("accumulates velocity instead of recomputing it", func() {
		g, err := galaxy.Initialize(2, params)
		Expect(err).NotTo(HaveOccurred())

		cfg := dynamo.DefaultConfig()
		cfg.Workers = 1
		e := sim.New(cfg)
		defer e.Close()

		Expect(e.Run(g, 1)).To(Succeed())
		first := g.Body(0).VY
		Expect(e.Run(g, 1)).To(Succeed())
		second := g.Body(0).VY

		// the pull barely changes over one step at this separation, so the
		// running velocity roughly doubles
		Expect(float64(second / first)).To(BeNumerically("~", 2, 1e-3))
	})
})
