// Package reducesum provides the building blocks for parallel reductions over
// sequences of independent terms. A reduction partitions a sequence into
// contiguous slices, evaluates each slice, possibly on a separate worker, and
// combines the partial results into one final value.
//
// The combine tree only depends on the length of the sequence and on the
// effective grain size, and partial results are always combined left before
// right. For an associative combine operation, the result is therefore
// independent of the grain size, and it is always independent of the order in
// which workers finish, which makes floating-point sums reproducible.
//
// Reducesum provides the following subpackages:
//
// reducesum/parallel provides the reduction engine that executes reductions
// on a shared, fixed-size worker pool.
//
// reducesum/sequential provides sequential implementations of the reductions
// from reducesum/parallel, for testing and debugging purposes.
//
// reducesum/pool provides the fixed-size worker pool shared by all reductions
// in a process.
//
// reducesum/config and reducesum/logger provide configuration and logging for
// programs that drive reductions, such as cmd/reducesum.
//
// The engine uses the same divide-and-conquer scheme as Cilk and Threading
// Building Blocks: each split forks the right half and evaluates the left half
// inline, and a join combines both results. See
// http://supertech.csail.mit.edu/papers/steal.pdf for some theoretical
// background.
package reducesum
