// Package parallel runs fold/reduce computations over an index space on a
// fixed number of goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Range is a half-open interval [Lo, Hi) of work indices
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in the range
func (r Range) Len() int { return r.Hi - r.Lo }

// DefaultWorkers returns the worker count used when the caller asks for 0
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Split divides [0,n) into at most workers contiguous ranges of near-equal size.
// Earlier ranges receive the remainder. An empty space yields no ranges.
func Split(n, workers int) []Range {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > n {
		workers = n
	}

	ranges := make([]Range, workers)
	size, rem := n/workers, n%workers
	lo := 0
	for i := range ranges {
		hi := lo + size
		if i < rem {
			hi++
		}
		ranges[i] = Range{Lo: lo, Hi: hi}
		lo = hi
	}
	return ranges
}

// FoldFunc folds the indices of one range into a fresh accumulator
type FoldFunc[A any] func(ctx context.Context, r Range) (A, error)

// MergeFunc combines two partial accumulators; dst precedes src in index order
type MergeFunc[A any] func(dst, src A) A

// FoldReduce splits [0,n) into contiguous ranges, folds each on its own
// goroutine and merges the partials in range order. The first fold error
// cancels ctx for the remaining folds and is returned.
//
// With n == 0 the zero accumulator from empty is returned.
func FoldReduce[A any](ctx context.Context, n, workers int, empty func() A, fold FoldFunc[A], merge MergeFunc[A]) (A, error) {
	ranges := Split(n, workers)
	if len(ranges) == 0 {
		return empty(), nil
	}

	partials := make([]A, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		g.Go(func() error {
			acc, err := fold(gctx, r)
			if err != nil {
				return err
			}
			partials[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var zero A
		return zero, err
	}

	acc := partials[0]
	for _, p := range partials[1:] {
		acc = merge(acc, p)
	}
	return acc, nil
}
