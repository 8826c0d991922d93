package reducesum

type (
	// An Evaluator computes the partial result for the slice of a sequence
	// that covers the half-open range from start to end, with 0 <= start <=
	// end. The slice parameter is exactly sequence[start:end].
	//
	// An Evaluator must only depend on its parameters. It must not modify
	// the slice or the shared arguments, because it may be invoked
	// concurrently for different slices of the same sequence.
	Evaluator[T, A, R any] func(slice []T, start, end int, args A) (R, error)

	// A Combiner merges the partial results of two adjacent ranges, where
	// left covers the range immediately before the range of right.
	//
	// A Combiner should be associative. This is not checked: a
	// non-associative Combiner still yields deterministic results, but the
	// results then depend on the grain size.
	Combiner[R any] func(left, right R) R

	// A Reducer bundles the operations of a reduction.
	//
	// Identity returns the identity value of Combine, which is the result
	// of reducing an empty sequence. A nil Identity means that Combine has
	// no identity, in which case reducing an empty sequence fails with
	// ErrEmptyInputWithNoIdentity.
	Reducer[T, A, R any] struct {
		Evaluate Evaluator[T, A, R]
		Combine  Combiner[R]
		Identity func() R
	}

	// A Slice is a half-open range from Start to End, including Start but
	// excluding End.
	Slice struct {
		Start, End int
	}
)

// Len returns the number of elements covered by s.
func (s Slice) Len() int {
	return s.End - s.Start
}

// Empty returns a Reducer's result for empty input, or
// ErrEmptyInputWithNoIdentity.
func (r Reducer[T, A, R]) Empty() (result R, err error) {
	if r.Identity == nil {
		err = ErrEmptyInputWithNoIdentity
		return
	}
	return r.Identity(), nil
}
