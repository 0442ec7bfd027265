package async

import (
	"sync"

	"github.com/carton-io/carton/lib/value"
)

// Generator is a pull-based iterator over values fed by a producer
// goroutine. Consumers call Next until it reports exhaustion, then check
// Err for a producer failure; abandoning a generator early requires Close
// so the producer can stop.
//
// Thread-safety: one consumer goroutine at a time.
type Generator struct {
	ch   chan value.Value
	stop chan struct{}

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

// Generate starts a producer goroutine running produce. The producer pushes
// values through yield, which reports false when the consumer has closed
// the generator; a non-nil return from produce is surfaced by Err after the
// stream ends.
func Generate(produce func(yield func(v value.Value) bool) error) *Generator {
	g := &Generator{
		ch:   make(chan value.Value),
		stop: make(chan struct{}),
	}
	go func() {
		defer close(g.ch)
		err := produce(func(v value.Value) bool {
			select {
			case g.ch <- v:
				return true
			case <-g.stop:
				return false
			}
		})
		if err != nil {
			g.mu.Lock()
			g.err = err
			g.mu.Unlock()
		}
	}()
	return g
}

// Values iterates a container's value set in its native order. The source
// must not be mutated while the generator is drained; iterate a Snapshot
// when reading from a shared container.
func Values(src interface{ Values() []value.Value }) *Generator {
	vals := src.Values()
	return Generate(func(yield func(v value.Value) bool) error {
		for _, v := range vals {
			if !yield(v) {
				return nil
			}
		}
		return nil
	})
}

// Next returns the next value. ok is false once the stream is exhausted or
// the producer failed; Err distinguishes the two.
func (g *Generator) Next() (v value.Value, ok bool) {
	v, ok = <-g.ch
	return v, ok
}

// Err reports the producer's failure, if any. Only meaningful after Next
// has returned false.
func (g *Generator) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Close releases the producer. Safe to call multiple times and after
// exhaustion.
func (g *Generator) Close() {
	g.closeOnce.Do(func() {
		close(g.stop)
	})
	// Drain so the producer's final sends never block.
	for range g.ch {
	}
}
