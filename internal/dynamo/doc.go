// Package dynamo provides the core primitives shared by the gravitational
// N-body kernel.
//
// The package defines the parameters and plumbing every other package
// builds on:
//
//   - [Params]: physical constants (G, body mass, grid spacing, softening, Δt)
//   - [Config]: engine configuration (worker count, numeric mode, debug checks)
//   - [Partition]: disjoint index-range split of [0, n) across workers
//
// # Example
//
//	g, _ := galaxy.Initialize(1024, dynamo.DefaultParams())
//	eng := sim.New(dynamo.DefaultConfig())
//	defer eng.Close()
//	_ = eng.Run(g, 10)
//
// # Thread Safety
//
// Params and Config are plain values and safe to copy. Ranges returned by
// [Partition] never overlap, which is the only synchronization the engine
// relies on within a phase.
package dynamo
