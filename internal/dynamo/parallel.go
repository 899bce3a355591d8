package dynamo

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

func (r Range) Len() int { return r.Hi - r.Lo }

// Partition splits [0, n) into at most workers contiguous ranges whose
// lengths differ by at most one. The result is a disjoint cover of [0, n):
// every index belongs to exactly one range. It never returns more ranges
// than n, and returns a single empty range for n == 0.
func Partition(n, workers int) []Range {
	if workers < 1 {
		workers = 1
	}
	if n < workers {
		workers = n
	}
	if workers < 1 {
		return []Range{{0, 0}}
	}

	base := n / workers
	rem := n % workers

	ranges := make([]Range, workers)
	lo := 0
	for w := 0; w < workers; w++ {
		size := base
		if w < rem {
			size++
		}
		ranges[w] = Range{Lo: lo, Hi: lo + size}
		lo += size
	}
	return ranges
}

// EffectiveWorkers is the number of workers that will actually run for n
// bodies: the resolved count capped at n, and at least one.
func EffectiveWorkers(n, workers int) int {
	return len(Partition(n, ResolveWorkers(workers)))
}
