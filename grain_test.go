package reducesum

import (
	"errors"
	"testing"
)

func TestOversubscribe(t *testing.T) {
	for _, c := range []struct{ factor, n, workers, want int }{
		{4, 1000, 8, 32},
		{4, 1024, 8, 32},
		{4, 1025, 8, 33},
		{1, 10, 4, 3},
		{4, 3, 8, 1},
		{0, 10, 0, 10},
		{2, 0, 2, 1},
		{1 << 62, 10, 4, 1},
		{1 << 62, 1 << 62, 1 << 62, 1},
		{3, 1 << 62, 1, 1<<62/3 + 1},
	} {
		if got := Oversubscribe(c.factor).Grainsize(c.n, c.workers); got != c.want {
			t.Errorf("Oversubscribe(%v).Grainsize(%v, %v): got %v, want %v", c.factor, c.n, c.workers, got, c.want)
		}
	}
}

func TestEffectiveGrainsize(t *testing.T) {
	half := GrainStrategyFunc(func(n, _ int) int { return n / 2 })
	for _, c := range []struct {
		n, grainsize, workers int
		strategy              GrainStrategy
		want                  int
	}{
		{100, 10, 4, nil, 10},
		{100, 1000, 4, nil, 1000},
		{100, AutoGrainsize, 4, half, 50},
		{1, AutoGrainsize, 4, half, 1},
		{100, AutoGrainsize, 5, nil, 5},
	} {
		got, err := EffectiveGrainsize(c.n, c.grainsize, c.workers, c.strategy)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("EffectiveGrainsize(%v, %v, %v): got %v, want %v", c.n, c.grainsize, c.workers, got, c.want)
		}
	}

	if _, err := EffectiveGrainsize(10, -1, 1, nil); !errors.Is(err, ErrInvalidGrainsize) {
		t.Errorf("unexpected error %v", err)
	}
}
