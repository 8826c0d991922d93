package reducesum

import (
	"fmt"

	"github.com/exascience/reducesum/internal"
)

/*
Partition returns the slices that a reduction of n elements with the given
effective grain size evaluates, in range order.

The range from 0 to n is split at its midpoint until each subrange has at most
grainsize elements. The result covers the range from 0 to n exactly: the
slices are adjacent, non-empty, and do not overlap. For n == 0, Partition
returns no slices.

Partition returns an error if n < 0, or an error wrapping ErrInvalidGrainsize
if grainsize < 1.
*/
func Partition(n, grainsize int) ([]Slice, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid sequence length: %v", n)
	}
	if grainsize < 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrainsize, grainsize)
	}
	if n == 0 {
		return nil, nil
	}
	var slices []Slice
	var recur func(low, high int)
	recur = func(low, high int) {
		mid, leaf := internal.Split(low, high, grainsize)
		if leaf {
			slices = append(slices, Slice{low, high})
			return
		}
		recur(low, mid)
		recur(mid, high)
	}
	recur(0, n)
	return slices, nil
}
