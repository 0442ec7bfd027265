// Package async schedules container operations onto worker goroutines.
// Submit returns a Task future whose result is read with Wait; Generate
// turns a push-style producer into a pull-based iterator whose errors
// surface at the point of read.
//
// Cancellation is best-effort throughout: containers expose no cancellation
// hook, so a cancelled task's underlying operation still runs to
// completion; only the waiter stops waiting.
package async

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/carton-io/carton/lib/logging"
)

// moduleTag is the module identifier carried by all errors of this package.
const moduleTag = "async"

// Pool runs submitted jobs on a fixed number of worker goroutines.
//
// Thread-safety: Submit may be called from any goroutine until Close.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
	log  zerolog.Logger

	closeOnce sync.Once
}

// NewPool starts a pool with the given worker count; values below one are
// raised to one.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		jobs: make(chan func(), workers*2),
		log:  logging.Component(moduleTag),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	p.log.Debug().Int("workers", workers).Msg("worker pool started")
	return p
}

// Close stops accepting jobs and blocks until queued jobs finish.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}

// Task is a future for one submitted operation. The zero value is not
// usable; tasks come from Submit.
type Task[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Done is closed when the result is available.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait blocks until the result is available or ctx is done. A context
// cancellation abandons the wait but never the operation; a later Wait can
// still collect the result.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit schedules fn on the pool and returns its future. If ctx is done
// before a worker picks the job up, the job is skipped and the task fails
// with the context's error; once started, fn always runs to completion.
func Submit[T any](ctx context.Context, p *Pool, fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	p.jobs <- func() {
		defer close(t.done)
		if err := ctx.Err(); err != nil {
			t.err = err
			return
		}
		t.val, t.err = fn()
	}
	return t
}
