package sequential

import (
	"errors"
	"testing"

	"github.com/exascience/reducesum"
)

func TestReduce(t *testing.T) {
	seq := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	for _, g := range []int{reducesum.AutoGrainsize, 1, 3, 10, 100} {
		result, err := Reduce(seq, g, reducesum.Sum[int, struct{}](), struct{}{})
		if err != nil {
			t.Fatal(err)
		}
		if result != 55 {
			t.Errorf("grain size %v: got %v, want 55", g, result)
		}
	}
}

func TestReduceOrder(t *testing.T) {
	var slices []reducesum.Slice
	r := reducesum.Reducer[int, struct{}, int]{
		Evaluate: func(_ []int, start, end int, _ struct{}) (int, error) {
			slices = append(slices, reducesum.Slice{Start: start, End: end})
			return 0, nil
		},
		Combine:  func(x, y int) int { return x + y },
		Identity: func() int { return 0 },
	}
	if _, err := Reduce(make([]int, 23), 4, r, struct{}{}); err != nil {
		t.Fatal(err)
	}
	want, err := reducesum.Partition(23, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(slices) != len(want) {
		t.Fatalf("got %v slices, want %v", len(slices), len(want))
	}
	for i := range want {
		if slices[i] != want[i] {
			t.Errorf("slice %v: got %v, want %v", i, slices[i], want[i])
		}
	}
}

func TestReduceFailure(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	r := reducesum.Reducer[int, struct{}, int]{
		Evaluate: func(_ []int, start, _ int, _ struct{}) (int, error) {
			calls++
			if start >= 4 {
				return 0, boom
			}
			return 1, nil
		},
		Combine:  func(x, y int) int { return x + y },
		Identity: func() int { return 0 },
	}
	_, err := Reduce(make([]int, 16), 2, r, struct{}{})
	var evalErr *reducesum.EvaluatorError
	if !errors.As(err, &evalErr) || !errors.Is(err, boom) {
		t.Fatalf("unexpected error %v", err)
	}
	if evalErr.Start != 4 || evalErr.End != 6 {
		t.Errorf("wrong slice %v:%v", evalErr.Start, evalErr.End)
	}
	if calls != 3 {
		t.Errorf("evaluator called %v times, want 3", calls)
	}
}

func TestDirect(t *testing.T) {
	r := reducesum.Sum[int, struct{}]()
	if result, err := Direct([]int{4, 5, 6}, r, struct{}{}); err != nil || result != 15 {
		t.Errorf("got %v, %v; want 15, nil", result, err)
	}
	if result, err := Direct(nil, r, struct{}{}); err != nil || result != 0 {
		t.Errorf("got %v, %v; want 0, nil", result, err)
	}
	r.Identity = nil
	if _, err := Direct(nil, r, struct{}{}); !errors.Is(err, reducesum.ErrEmptyInputWithNoIdentity) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestInvalidGrainsize(t *testing.T) {
	if _, err := Reduce([]int{1}, -1, reducesum.Sum[int, struct{}](), struct{}{}); !errors.Is(err, reducesum.ErrInvalidGrainsize) {
		t.Errorf("unexpected error %v", err)
	}
}
