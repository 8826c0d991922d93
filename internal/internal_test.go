package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	for _, c := range []struct {
		low, high, grainsize, mid int
		leaf                      bool
	}{
		{0, 10, 3, 5, false},
		{5, 10, 3, 7, false},
		{7, 10, 3, 10, true},
		{0, 0, 1, 0, true},
		{4, 5, 1, 5, true},
		{0, 7, 100, 7, true},
	} {
		mid, leaf := Split(c.low, c.high, c.grainsize)
		if mid != c.mid || leaf != c.leaf {
			t.Errorf("Split(%v, %v, %v): got %v, %v; want %v, %v", c.low, c.high, c.grainsize, mid, leaf, c.mid, c.leaf)
		}
	}
}

func TestSplitPanics(t *testing.T) {
	for _, args := range [][3]int{{5, 4, 1}, {0, 4, 0}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Split%v did not panic", args)
				}
			}()
			Split(args[0], args[1], args[2])
		}()
	}
}

func TestWrapPanic(t *testing.T) {
	if WrapPanic(nil) != nil {
		t.Error("nil panic wrapped")
	}
	if s, ok := WrapPanic("boom").(string); !ok || !strings.HasPrefix(s, "boom\n") {
		t.Errorf("string panic: got %v", s)
	}
	err, ok := WrapPanic(errors.New("bad")).(error)
	if !ok || !strings.Contains(err.Error(), "rethrown at") {
		t.Errorf("error panic: got %v", err)
	}
}
