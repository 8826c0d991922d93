package reducesum

import "fmt"

// AutoGrainsize requests that the effective grain size is chosen by a
// GrainStrategy.
const AutoGrainsize = 0

// DefaultOversubscription is the factor used by DefaultGrainStrategy.
const DefaultOversubscription = 4

// A GrainStrategy chooses a grain size for a sequence of n > 0 elements that
// is reduced by the given number of workers.
type GrainStrategy interface {
	Grainsize(n, workers int) int
}

// GrainStrategyFunc adapts an ordinary function to a GrainStrategy.
type GrainStrategyFunc func(n, workers int) int

// Grainsize implements GrainStrategy by calling f(n, workers).
func (f GrainStrategyFunc) Grainsize(n, workers int) int {
	return f(n, workers)
}

/*
Oversubscribe returns a GrainStrategy that divides a sequence into roughly
factor slices per worker.

Use 1 if you expect no load imbalance between slices, between 2 and 10 if you
expect some load imbalance, or 10 or more if you expect even more load
imbalance. Fine-grained parallelism only pays off if the work per slice is
sufficiently large to compensate for the scheduling overhead.

More specifically, the returned strategy computes ceiling(n / (workers *
factor)), as ceiling(ceiling(n / workers) / factor) so that the product
cannot overflow. Factors and worker counts below 1 are treated as 1.
*/
func Oversubscribe(factor int) GrainStrategy {
	if factor < 1 {
		factor = 1
	}
	return GrainStrategyFunc(func(n, workers int) int {
		if workers < 1 {
			workers = 1
		}
		if n <= 0 {
			return 1
		}
		perWorker := ((n - 1) / workers) + 1
		return ((perWorker - 1) / factor) + 1
	})
}

// DefaultGrainStrategy is used by engines that are not configured with a
// different GrainStrategy.
var DefaultGrainStrategy = Oversubscribe(DefaultOversubscription)

/*
EffectiveGrainsize determines the grain size for reducing a sequence of n
elements with the given number of workers.

If grainsize is AutoGrainsize, the grain size is chosen by strategy, or by
DefaultGrainStrategy if strategy is nil. If grainsize is positive, it is
used directly. The result is always at least 1.

EffectiveGrainsize returns an error wrapping ErrInvalidGrainsize if grainsize
is negative.
*/
func EffectiveGrainsize(n, grainsize, workers int, strategy GrainStrategy) (int, error) {
	switch {
	case grainsize < 0:
		return 0, fmt.Errorf("%w: %v", ErrInvalidGrainsize, grainsize)
	case grainsize == AutoGrainsize:
		if strategy == nil {
			strategy = DefaultGrainStrategy
		}
		grainsize = strategy.Grainsize(n, workers)
	}
	if grainsize < 1 {
		grainsize = 1
	}
	return grainsize, nil
}
