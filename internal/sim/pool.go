package sim

import (
	"sync"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Pool is a fixed set of worker goroutines, each owning one index range
// of a Partition. Do is a fork-join: it returns once every worker has
// finished its range, which is the barrier between phases.
type Pool struct {
	ranges []dynamo.Range
	jobs   []chan func(lo, hi int)
	wg     sync.WaitGroup
	once   sync.Once
}

// NewPool starts workers for n indices. workers <= 0 uses every CPU. A
// single range runs inline on the calling goroutine.
func NewPool(n, workers int) *Pool {
	p := &Pool{ranges: dynamo.Partition(n, dynamo.ResolveWorkers(workers))}
	if len(p.ranges) < 2 {
		return p
	}

	p.jobs = make([]chan func(lo, hi int), len(p.ranges))
	for w, r := range p.ranges {
		ch := make(chan func(lo, hi int))
		p.jobs[w] = ch
		go p.work(r, ch)
	}
	return p
}

func (p *Pool) work(r dynamo.Range, jobs <-chan func(lo, hi int)) {
	for fn := range jobs {
		fn(r.Lo, r.Hi)
		p.wg.Done()
	}
}

func (p *Pool) Do(fn func(lo, hi int)) {
	if p.jobs == nil {
		r := p.ranges[0]
		fn(r.Lo, r.Hi)
		return
	}

	p.wg.Add(len(p.jobs))
	for _, ch := range p.jobs {
		ch <- fn
	}
	p.wg.Wait()
}

func (p *Pool) Workers() int { return len(p.ranges) }

// Close stops the workers. Do must not be called afterwards.
func (p *Pool) Close() {
	p.once.Do(func() {
		for _, ch := range p.jobs {
			close(ch)
		}
	})
}
