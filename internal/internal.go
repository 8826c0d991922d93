package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// Split decides how the range from low to high is divided for the given grain
// size. If the size of the range (high - low) is at most grainsize, leaf is
// true and the range is evaluated as a single slice. Otherwise the range is
// split at mid, the midpoint rounded down.
//
// Split panics if high < low or if grainsize < 1.
func Split(low, high, grainsize int) (mid int, leaf bool) {
	switch size := high - low; {
	case size < 0:
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	case grainsize < 1:
		panic(fmt.Sprintf("invalid grain size: %v", grainsize))
	case size <= grainsize:
		return high, true
	default:
		return low + size/2, false
	}
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
		if _, isError := p.(error); isError {
			r := errors.New(s)
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return s
	}
	return nil
}
