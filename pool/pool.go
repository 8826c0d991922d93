/*
Package pool provides a fixed-size pool of worker goroutines that is shared
by all reductions in a process.

Work is handed off with TrySubmit, which never blocks: a task is only
accepted if a worker is idle at that moment. Fork/join algorithms offer one
half of their work to the pool and execute it inline if the offer is
declined. This keeps all workers busy without ever letting a worker wait for
a task that is queued behind it.
*/
package pool

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/exascience/reducesum/config"
	"github.com/exascience/reducesum/logger"
)

// A Task is a unit of work executed by a worker.
type Task func()

/*
A Pool is a fixed number of worker goroutines that execute submitted tasks.

The zero Pool is not valid. A Pool must not be copied after first use.
*/
type Pool struct {
	mutex   sync.RWMutex
	closed  bool
	tasks   chan Task
	workers int
	wg      sync.WaitGroup
	logger  logrus.FieldLogger
}

// New starts a pool with the given number of workers. A pool with 0 workers
// declines every task. If log is nil, nothing is logged.
//
// New panics if workers < 0.
func New(workers int, log logrus.FieldLogger) *Pool {
	if workers < 0 {
		panic(fmt.Sprintf("invalid number of workers: %v", workers))
	}
	if log == nil {
		log = logger.Discard()
	}
	p := &Pool{
		tasks:   make(chan Task),
		workers: workers,
		logger:  log,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	log.WithField("workers", workers).Debug("worker pool started")
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(id, task)
	}
}

func (p *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithFields(logrus.Fields{
				"worker":      id,
				"panic":       r,
				"stack_trace": string(debug.Stack()),
			}).Error("task panicked")
		}
	}()
	task()
}

// Workers returns the number of workers of p.
func (p *Pool) Workers() int {
	return p.workers
}

// TrySubmit hands task to an idle worker and returns true, or returns false
// without blocking if no worker is idle or p is closed.
func (p *Pool) TrySubmit(task Task) bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	default:
		return false
	}
}

// Close stops the workers after they have finished their current tasks, and
// waits for them to terminate. Close is idempotent.
func (p *Pool) Close() {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mutex.Unlock()
	p.wg.Wait()
	p.logger.Debug("worker pool stopped")
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the process-wide pool. It is created on first use and is
// never closed. Together with the goroutine that starts a reduction, it
// provides the number of workers taken from config.FromEnv. An invalid
// environment is reported on the standard logrus logger, and the defaults of
// config.Default are used instead.
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = New(ConfigFromEnv(logrus.StandardLogger()).PoolWorkers(), nil)
	})
	return defaultPool
}

// ConfigFromEnv returns config.FromEnv, or config.Default after logging a
// warning on log if the environment is invalid.
func ConfigFromEnv(log logrus.FieldLogger) *config.Config {
	cfg, err := config.FromEnv()
	if err != nil {
		log.WithError(err).Warn("invalid configuration in environment, using defaults")
		d := config.Default()
		return &d
	}
	return cfg
}
