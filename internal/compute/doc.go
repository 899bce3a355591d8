// Package compute provides the all-pairs force kernels.
//
// Two numeric modes share one contract:
//
//   - [Precise]: correctly rounded float32 square root, sequential sum
//   - [Fast]: approximate reciprocal square root and four independent
//     partial sums (relaxed evaluation order)
//
// Select a kernel with [Select]:
//
//	k := compute.Select(cfg.FastMath)
//	f := k.Accumulate(positions, masses, j, g, softening)
//
// Both kernels visit every body, including j itself. The self pair has a
// zero separation, so with positive softening it contributes exactly zero.
//
// For a fixed mode the result for body j depends only on the positions and
// masses, never on how the caller splits j across workers.
package compute
