package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/exascience/reducesum"
	"github.com/exascience/reducesum/config"
	"github.com/exascience/reducesum/parallel"
)

func grainStrategy(cfg *config.Config) reducesum.GrainStrategy {
	return reducesum.Oversubscribe(cfg.Oversubscription)
}

// An op reduces numbers on an engine and reports the number of evaluated
// slices.
type op func(ctx context.Context, e *parallel.Engine, data []float64, grainsize int) (result float64, slices int64, err error)

// counted wraps the evaluator of r so that every evaluated slice increments
// n.
func counted[T, A, R any](r reducesum.Reducer[T, A, R], n *int64) reducesum.Reducer[T, A, R] {
	evaluate := r.Evaluate
	r.Evaluate = func(slice []T, start, end int, args A) (R, error) {
		atomic.AddInt64(n, 1)
		return evaluate(slice, start, end, args)
	}
	return r
}

var ops = map[string]op{
	"sum": func(ctx context.Context, e *parallel.Engine, data []float64, grainsize int) (float64, int64, error) {
		var n int64
		result, err := parallel.Reduce(ctx, e, data, grainsize, counted(reducesum.Float64Sum[struct{}](), &n), struct{}{})
		return result, n, err
	},
	"max": func(ctx context.Context, e *parallel.Engine, data []float64, grainsize int) (float64, int64, error) {
		var n int64
		result, err := parallel.Reduce(ctx, e, data, grainsize, counted(reducesum.Float64Max[struct{}](), &n), struct{}{})
		return result, n, err
	},
	"count-positive": func(ctx context.Context, e *parallel.Engine, data []float64, grainsize int) (float64, int64, error) {
		var n int64
		positive := func(x float64) bool { return x > 0 }
		result, err := parallel.Reduce(ctx, e, data, grainsize, counted(reducesum.Count[float64](), &n), positive)
		return float64(result), n, err
	},
}

func lookupOp(name string) (op, error) {
	if f, ok := ops[name]; ok {
		return f, nil
	}
	names := make([]string, 0, len(ops))
	for k := range ops {
		names = append(names, k)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown operation %q (one of %s)", name, strings.Join(names, ", "))
}
