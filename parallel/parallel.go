// Package parallel provides the reduction engine that evaluates the slices of
// a sequence in parallel on a shared worker pool.
package parallel

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/exascience/reducesum"
	"github.com/exascience/reducesum/internal"
	"github.com/exascience/reducesum/logger"
	"github.com/exascience/reducesum/pool"
)

/*
An Engine executes reductions on a worker pool.

An Engine holds no per-reduction state, and can be used by any number of
concurrent Reduce calls.
*/
type Engine struct {
	pool     *pool.Pool
	strategy reducesum.GrainStrategy
	logger   logrus.FieldLogger
}

// An Option configures an Engine.
type Option func(*Engine)

// WithPool sets the worker pool of an Engine. The Engine does not take
// ownership of the pool: closing it remains the responsibility of the caller.
func WithPool(p *pool.Pool) Option {
	return func(e *Engine) { e.pool = p }
}

// WithGrainStrategy sets the strategy that chooses the grain size for
// reductions with reducesum.AutoGrainsize.
func WithGrainStrategy(s reducesum.GrainStrategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithLogger sets the logger of an Engine.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine returns an Engine. Without options, it uses pool.Default,
// reducesum.DefaultGrainStrategy, and discards all log entries.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.pool == nil {
		e.pool = pool.Default()
	}
	if e.strategy == nil {
		e.strategy = reducesum.DefaultGrainStrategy
	}
	if e.logger == nil {
		e.logger = logger.Discard()
	}
	return e
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns an Engine on pool.Default, with the oversubscription
// factor taken from pool.ConfigFromEnv.
func Default() *Engine {
	defaultOnce.Do(func() {
		factor := pool.ConfigFromEnv(logrus.StandardLogger()).Oversubscription
		defaultEngine = NewEngine(WithGrainStrategy(reducesum.Oversubscribe(factor)))
	})
	return defaultEngine
}

// Workers returns the number of goroutines that can evaluate slices of a
// single reduction: the workers of the pool plus the calling goroutine.
func (e *Engine) Workers() int {
	return e.pool.Workers() + 1
}

// Grainsize returns the effective grain size for reducing n elements.
func (e *Engine) Grainsize(n, grainsize int) (int, error) {
	return reducesum.EffectiveGrainsize(n, grainsize, e.Workers(), e.strategy)
}

// fork executes left on the current goroutine and right on an idle worker of
// p. If no worker is idle, right is executed after left on the current
// goroutine. A panic in right is re-raised on the current goroutine after
// left has returned.
func fork(p *pool.Pool, left, right func()) {
	var pnc interface{}
	done := make(chan struct{})
	forked := p.TrySubmit(func() {
		defer func() {
			pnc = internal.WrapPanic(recover())
			close(done)
		}()
		right()
	})
	left()
	if !forked {
		right()
		return
	}
	<-done
	if pnc != nil {
		panic(pnc)
	}
}

/*
Do receives zero or more thunks and executes them in parallel on p.

The thunks are split in halves recursively; at each split the right half is
offered to an idle worker of p and the left half is executed on the current
goroutine. Do returns only when all thunks have terminated, returning the
left-most error value that is different from nil.

If one or more thunks panic, the corresponding goroutines recover the
panics, and Do eventually panics with the left-most recovered panic value.
*/
func Do(p *pool.Pool, thunks ...func() error) error {
	switch len(thunks) {
	case 0:
		return nil
	case 1:
		return thunks[0]()
	}
	half := len(thunks) / 2
	var err0, err1 error
	fork(p,
		func() { err0 = Do(p, thunks[:half]...) },
		func() { err1 = Do(p, thunks[half:]...) },
	)
	if err0 != nil {
		return err0
	}
	return err1
}

// A call holds the state of one Reduce invocation.
type call struct {
	ctx    context.Context
	cancel context.CancelFunc
	mutex  sync.Mutex
	err    error
}

func newCall(ctx context.Context) *call {
	c := &call{}
	c.ctx, c.cancel = context.WithCancel(ctx)
	return c
}

// fail records err unless an earlier failure was already recorded, and
// cancels the call so that slices that have not started yet are skipped.
func (c *call) fail(err error) error {
	c.mutex.Lock()
	first := c.err == nil
	if first {
		c.err = err
	}
	c.mutex.Unlock()
	if first {
		c.cancel()
	}
	return err
}

func (c *call) firstErr() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.err
}

/*
Reduce reduces seq with r on the worker pool of e, passing args unchanged to
every evaluation of r.Evaluate, and returns the combined result.

If seq is empty, Reduce returns the identity of r without calling
r.Evaluate, or reducesum.ErrEmptyInputWithNoIdentity if r has no identity.

Otherwise, the range from 0 to len(seq) is split at its midpoint until each
subrange has at most the effective grain size elements (see
Engine.Grainsize). At each split, the right half is offered to an idle
worker, and the left half is reduced on the current goroutine. The results
of both halves are combined with r.Combine, left before right, after both
halves are done. The calling goroutine blocks until the result is
available.

If r.Evaluate fails for some slice, Reduce returns a
*reducesum.EvaluatorError that wraps the first such failure and identifies
the slice. Slices that have not started yet are skipped, slices that are
already running are allowed to finish, and no partial result is returned.
If ctx is canceled before the reduction completes, Reduce returns
ctx.Err().

Reduce returns an error wrapping reducesum.ErrInvalidGrainsize if grainsize
is negative. If e is nil, Default() is used.

If r.Evaluate or r.Combine panic, the corresponding goroutines recover the
panics, and Reduce eventually panics with the left-most recovered panic
value.
*/
func Reduce[T, A, R any](
	ctx context.Context,
	e *Engine,
	seq []T,
	grainsize int,
	r reducesum.Reducer[T, A, R],
	args A,
) (result R, err error) {
	if e == nil {
		e = Default()
	}
	n := len(seq)
	g, err := e.Grainsize(n, grainsize)
	if err != nil {
		return
	}
	if n == 0 {
		return r.Empty()
	}
	if err = ctx.Err(); err != nil {
		return
	}

	c := newCall(ctx)
	defer c.cancel()

	log := e.logger.WithFields(logrus.Fields{
		"call":      uuid.NewString(),
		"n":         n,
		"grainsize": g,
	})
	log.Debug("reduce started")
	start := time.Now()

	var recur func(int, int) (R, error)
	recur = func(low, high int) (result R, err error) {
		if err = c.ctx.Err(); err != nil {
			return
		}
		mid, leaf := internal.Split(low, high, g)
		if leaf {
			result, err = r.Evaluate(seq[low:high], low, high, args)
			if err != nil {
				err = c.fail(&reducesum.EvaluatorError{Start: low, End: high, Err: err})
			}
			return
		}
		var left, right R
		var err0, err1 error
		fork(e.pool,
			func() { left, err0 = recur(low, mid) },
			func() { right, err1 = recur(mid, high) },
		)
		if err0 != nil {
			err = err0
		} else if err1 != nil {
			err = err1
		} else {
			result = r.Combine(left, right)
		}
		return
	}

	result, err = recur(0, n)
	if err != nil {
		if first := c.firstErr(); first != nil {
			err = first
		}
		log.WithError(err).WithField("duration", time.Since(start)).Warn("reduce failed")
		var zero R
		return zero, err
	}
	log.WithField("duration", time.Since(start)).Debug("reduce finished")
	return
}
