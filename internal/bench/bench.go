// Package bench times the engine across worker counts and checks that
// every parallel run reproduces the sequential result.
package bench

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/galaxy"
	"github.com/san-kum/gravsim/internal/sim"
)

type Options struct {
	Bodies  int
	Steps   int
	Params  dynamo.Params
	Fast    bool
	Workers []int
	Repeat  int
	Logger  zerolog.Logger
}

type Result struct {
	Workers int
	Runs    []time.Duration
	Mean    time.Duration
	StdDev  time.Duration
	// Speedup is relative to the first entry of Options.Workers.
	Speedup float64
	// MaxRelErr is the deviation of the final state from a sequential run.
	MaxRelErr float64
}

// Run times opts.Repeat runs per worker count. Each run starts from a
// freshly initialized galaxy; only the engine's Run call is timed.
func Run(opts Options) ([]Result, error) {
	if len(opts.Workers) == 0 {
		return nil, fmt.Errorf("bench: no worker counts given")
	}
	if opts.Repeat < 1 {
		opts.Repeat = 1
	}
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}

	reference, err := sequential(opts)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(opts.Workers))
	for _, w := range opts.Workers {
		res := Result{Workers: w}
		samples := make([]float64, 0, opts.Repeat)

		for r := 0; r < opts.Repeat; r++ {
			g, elapsed, err := timedRun(opts, w)
			if err != nil {
				return nil, err
			}
			if r == 0 {
				res.MaxRelErr = galaxy.MaxRelativeError(reference, g)
			}
			res.Runs = append(res.Runs, elapsed)
			samples = append(samples, float64(elapsed))

			opts.Logger.Debug().
				Int("workers", w).
				Int("repeat", r).
				Dur("elapsed", elapsed).
				Msg("bench run")
		}

		mean, std := stat.MeanStdDev(samples, nil)
		if len(samples) < 2 {
			std = 0
		}
		res.Mean = time.Duration(mean)
		res.StdDev = time.Duration(std)
		results = append(results, res)
	}

	base := float64(results[0].Mean)
	for i := range results {
		if results[i].Mean > 0 {
			results[i].Speedup = base / float64(results[i].Mean)
		}
	}
	return results, nil
}

func sequential(opts Options) (*galaxy.Galaxy, error) {
	g, err := galaxy.Initialize(opts.Bodies, opts.Params)
	if err != nil {
		return nil, err
	}
	e := sim.New(dynamo.Config{Params: opts.Params, Workers: 1, FastMath: opts.Fast})
	defer e.Close()
	if err := e.Run(g, opts.Steps); err != nil {
		return nil, err
	}
	return g, nil
}

func timedRun(opts Options, workers int) (*galaxy.Galaxy, time.Duration, error) {
	g, err := galaxy.Initialize(opts.Bodies, opts.Params)
	if err != nil {
		return nil, 0, err
	}
	e := sim.New(dynamo.Config{Params: opts.Params, Workers: workers, FastMath: opts.Fast})
	defer e.Close()

	start := time.Now()
	err = e.Run(g, opts.Steps)
	elapsed := time.Since(start)
	return g, elapsed, err
}

// ParseWorkers parses a comma-separated list such as "1,2,4,8". Zero
// stands for every CPU.
func ParseWorkers(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bench: bad worker count %q: %w", p, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("bench: %w: worker count %d", dynamo.ErrParameterBounds, n)
		}
		out = append(out, dynamo.ResolveWorkers(n))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("bench: no worker counts in %q", s)
	}
	return out, nil
}
