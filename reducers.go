package reducesum

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Number is the set of element types supported by Sum.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Sum returns a Reducer that adds up all elements of a sequence, with 0 as
// identity. The shared arguments are ignored.
func Sum[N Number, A any]() Reducer[N, A, N] {
	return Reducer[N, A, N]{
		Evaluate: func(slice []N, _, _ int, _ A) (result N, _ error) {
			for _, x := range slice {
				result += x
			}
			return
		},
		Combine:  func(x, y N) N { return x + y },
		Identity: func() N { return 0 },
	}
}

// Float64Sum returns a Reducer that adds up all elements of a float64
// sequence. Results are reproducible across runs and pool sizes for a given
// grain size, but may differ in rounding between grain sizes.
func Float64Sum[A any]() Reducer[float64, A, float64] {
	return Reducer[float64, A, float64]{
		Evaluate: func(slice []float64, _, _ int, _ A) (float64, error) {
			return floats.Sum(slice), nil
		},
		Combine:  func(x, y float64) float64 { return x + y },
		Identity: func() float64 { return 0 },
	}
}

// Float64Max returns a Reducer that determines the maximum element of a
// float64 sequence, with negative infinity as identity.
func Float64Max[A any]() Reducer[float64, A, float64] {
	return Reducer[float64, A, float64]{
		Evaluate: func(slice []float64, _, _ int, _ A) (float64, error) {
			if len(slice) == 0 {
				return math.Inf(-1), nil
			}
			return floats.Max(slice), nil
		},
		Combine:  math.Max,
		Identity: func() float64 { return math.Inf(-1) },
	}
}

// Count returns a Reducer that counts the elements of a sequence for which
// the predicate passed as shared argument returns true.
func Count[T any]() Reducer[T, func(T) bool, int] {
	return Reducer[T, func(T) bool, int]{
		Evaluate: func(slice []T, _, _ int, pred func(T) bool) (result int, _ error) {
			for _, x := range slice {
				if pred(x) {
					result++
				}
			}
			return
		},
		Combine:  func(x, y int) int { return x + y },
		Identity: func() int { return 0 },
	}
}
