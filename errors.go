package reducesum

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrainsize is returned for a negative grain size.
	ErrInvalidGrainsize = errors.New("invalid grain size")

	// ErrEmptyInputWithNoIdentity is returned when an empty sequence is
	// reduced with a Reducer that has no Identity.
	ErrEmptyInputWithNoIdentity = errors.New("empty input and no identity for combine")

	// ErrEvaluatorFailure matches every *EvaluatorError with errors.Is.
	ErrEvaluatorFailure = errors.New("evaluator failure")
)

// An EvaluatorError records the failure of an Evaluator for the slice from
// Start to End.
type EvaluatorError struct {
	Start, End int
	Err        error
}

func (e *EvaluatorError) Error() string {
	return fmt.Sprintf("evaluator failed for slice %v:%v: %v", e.Start, e.End, e.Err)
}

func (e *EvaluatorError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrEvaluatorFailure.
func (e *EvaluatorError) Is(target error) bool {
	return target == ErrEvaluatorFailure
}

// Slice returns the range of the failing slice.
func (e *EvaluatorError) Slice() Slice {
	return Slice{e.Start, e.End}
}
