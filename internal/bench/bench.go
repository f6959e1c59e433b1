// Package bench measures trace generation across algorithms and input
// sizes.
package bench

import (
	"context"
	"math/rand"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/errors"
	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/config"
	"github.com/san-kum/sortsim/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// Generation latencies are recorded in nanoseconds up to 10s.
const (
	minLatency = 1
	maxLatency = int64(10 * time.Second)
	sigFigs    = 3
)

type Options struct {
	Algorithms []algorithm.ID
	Sizes      []int
	Runs       int
	Seed       int64
	MinValue   int
	MaxValue   int
}

type Result struct {
	Algorithm algorithm.ID
	Size      int
	Runs      int
	MeanSteps float64
	MeanSwaps float64
	P50       time.Duration
	P99       time.Duration
	Max       time.Duration
}

// Run benchmarks every algorithm on every size. Each algorithm runs on its
// own goroutine with its own rng seeded Seed+index, so results do not
// depend on scheduling. Results are ordered by algorithm, then size.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Runs <= 0 {
		return nil, errors.Newf("bench: runs must be positive, got %d", opts.Runs)
	}
	if err := config.CheckRange(opts.MinValue, opts.MaxValue); err != nil {
		return nil, errors.Wrap(err, "bench")
	}
	for _, size := range opts.Sizes {
		if size < 0 || size > config.MaxSize {
			return nil, errors.Newf("bench: size %d out of range [0, %d]", size, config.MaxSize)
		}
	}

	for _, id := range opts.Algorithms {
		if _, err := algorithm.Lookup(id); err != nil {
			return nil, err
		}
	}

	results := make([][]Result, len(opts.Algorithms))
	g, ctx := errgroup.WithContext(ctx)
	for idx, id := range opts.Algorithms {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(opts.Seed + int64(idx)))
			for _, size := range opts.Sizes {
				res, err := measure(ctx, rng, id, size, opts)
				if err != nil {
					return err
				}
				results[idx] = append(results[idx], res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Result
	for _, rs := range results {
		out = append(out, rs...)
	}
	return out, nil
}

func measure(ctx context.Context, rng *rand.Rand, id algorithm.ID, size int, opts Options) (Result, error) {
	hist := hdrhistogram.New(minLatency, maxLatency, sigFigs)
	swaps := metrics.NewSwaps()
	var steps int

	for range opts.Runs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		input := config.RandomSequence(rng, size, opts.MinValue, opts.MaxValue)

		start := time.Now()
		tr, err := algorithm.Generate(id, input)
		elapsed := time.Since(start)
		if err != nil {
			return Result{}, err
		}
		if err := hist.RecordValue(max(int64(elapsed), minLatency)); err != nil {
			return Result{}, errors.Wrapf(err, "recording %s latency", id)
		}

		steps += tr.Len()
		for _, s := range tr.All() {
			swaps.Observe(s)
		}
	}

	return Result{
		Algorithm: id,
		Size:      size,
		Runs:      opts.Runs,
		MeanSteps: float64(steps) / float64(opts.Runs),
		MeanSwaps: swaps.Value() / float64(opts.Runs),
		P50:       time.Duration(hist.ValueAtQuantile(50)),
		P99:       time.Duration(hist.ValueAtQuantile(99)),
		Max:       time.Duration(hist.Max()),
	}, nil
}
