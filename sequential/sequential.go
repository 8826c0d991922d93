// Package sequential provides sequential implementations of the reductions
// provided by the parallel package. This is useful for testing and debugging.
//
// It is not recommended to use the implementations of this package for any
// other purpose, because they are almost certainly too inefficient for
// regular sequential programs.
package sequential

import (
	"github.com/exascience/reducesum"
	"github.com/exascience/reducesum/internal"
)

/*
Reduce reduces seq with r on the current goroutine, passing args unchanged
to every evaluation of r.Evaluate.

The range from 0 to len(seq) is split exactly as parallel.Reduce splits it
for the same effective grain size, and partial results are combined in the
same order. For a given grain size, the result is therefore identical to the
result of parallel.Reduce, even if r.Combine is not associative. A grain
size of reducesum.AutoGrainsize is resolved by
reducesum.DefaultGrainStrategy for a single worker.

If seq is empty, Reduce returns the identity of r without calling
r.Evaluate, or reducesum.ErrEmptyInputWithNoIdentity if r has no identity.
If r.Evaluate fails, Reduce returns a *reducesum.EvaluatorError for the
left-most failing slice and does not evaluate any later slices.

Reduce returns an error wrapping reducesum.ErrInvalidGrainsize if grainsize
is negative.
*/
func Reduce[T, A, R any](
	seq []T,
	grainsize int,
	r reducesum.Reducer[T, A, R],
	args A,
) (result R, err error) {
	n := len(seq)
	g, err := reducesum.EffectiveGrainsize(n, grainsize, 1, nil)
	if err != nil {
		return
	}
	if n == 0 {
		return r.Empty()
	}
	var recur func(int, int) (R, error)
	recur = func(low, high int) (result R, err error) {
		mid, leaf := internal.Split(low, high, g)
		if leaf {
			result, err = r.Evaluate(seq[low:high], low, high, args)
			if err != nil {
				err = &reducesum.EvaluatorError{Start: low, End: high, Err: err}
			}
			return
		}
		left, err := recur(low, mid)
		if err != nil {
			return
		}
		right, err := recur(mid, high)
		if err != nil {
			return
		}
		return r.Combine(left, right), nil
	}
	return recur(0, n)
}

// Direct evaluates seq as a single slice, without partitioning. If seq is
// empty, Direct returns the identity of r, like Reduce.
func Direct[T, A, R any](seq []T, r reducesum.Reducer[T, A, R], args A) (result R, err error) {
	if len(seq) == 0 {
		return r.Empty()
	}
	result, err = r.Evaluate(seq, 0, len(seq), args)
	if err != nil {
		err = &reducesum.EvaluatorError{Start: 0, End: len(seq), Err: err}
	}
	return
}
