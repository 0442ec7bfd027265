package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/result"
	"github.com/carton-io/carton/lib/value"
)

func TestSubmitAndWait(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	c := container.New(container.DefaultOptions())
	task := Submit(context.Background(), p, func() (int, error) {
		c.Set(value.NewInt("n", 7))
		return c.Size(), nil
	})

	size, err := task.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if size != 1 {
		t.Errorf("size = %d", size)
	}
	if v, _ := c.Get("n"); v.Int() != 7 {
		t.Error("operation result not visible")
	}
}

func TestTaskError(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	boom := result.New(result.CodeKeyNotFound, "async", "missing")
	task := Submit(context.Background(), p, func() (value.Value, error) {
		return value.Value{}, boom
	})

	_, err := task.Wait(context.Background())
	if !result.IsCode(err, result.CodeKeyNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestWaitCancellationIsBestEffort(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	var completed atomic.Bool

	task := Submit(context.Background(), p, func() (int, error) {
		close(started)
		<-release
		completed.Store(true)
		return 42, nil
	})

	<-started
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := task.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled Wait err = %v", err)
	}

	// The operation still runs to completion and a later Wait collects it.
	close(release)
	got, err := task.Wait(context.Background())
	if err != nil || got != 42 {
		t.Errorf("late Wait = %d, %v", got, err)
	}
	if !completed.Load() {
		t.Error("operation did not complete")
	}
}

func TestSubmitSkipsWhenCancelledBeforeStart(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	task := Submit(ctx, p, func() (int, error) {
		ran = true
		return 0, nil
	})

	if _, err := task.Wait(context.Background()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
	if ran {
		t.Error("job ran despite pre-start cancellation")
	}
}

func TestPoolCloseDrainsQueue(t *testing.T) {
	p := NewPool(2)
	var done atomic.Int32
	for i := 0; i < 16; i++ {
		Submit(context.Background(), p, func() (int, error) {
			done.Add(1)
			return 0, nil
		})
	}
	p.Close()
	if done.Load() != 16 {
		t.Errorf("completed %d of 16 before Close returned", done.Load())
	}
}

func TestGeneratorDrainsContainer(t *testing.T) {
	c := container.New(container.DefaultOptions())
	c.Set(value.NewInt("a", 1)).
		Set(value.NewInt("b", 2)).
		Set(value.NewInt("c", 3))

	g := Values(c)
	var names []string
	for {
		v, ok := g.Next()
		if !ok {
			break
		}
		names = append(names, v.Name())
	}
	if g.Err() != nil {
		t.Fatalf("Err: %v", g.Err())
	}
	// Dynamic policy iterates in insertion order.
	want := []string{"a", "b", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v", names)
		}
	}
}

func TestGeneratorSurfacesProducerError(t *testing.T) {
	boom := result.New(result.CodeDeserializationFailed, "async", "bad input")
	g := Generate(func(yield func(v value.Value) bool) error {
		if !yield(value.NewInt("first", 1)) {
			return nil
		}
		return boom
	})

	if _, ok := g.Next(); !ok {
		t.Fatal("first value missing")
	}
	if _, ok := g.Next(); ok {
		t.Fatal("stream did not end after producer error")
	}
	if !result.IsCode(g.Err(), result.CodeDeserializationFailed) {
		t.Errorf("Err = %v", g.Err())
	}
}

func TestGeneratorCloseStopsProducer(t *testing.T) {
	stopped := make(chan struct{})
	g := Generate(func(yield func(v value.Value) bool) error {
		defer close(stopped)
		for i := int32(0); ; i++ {
			if !yield(value.NewInt("n", i)) {
				return nil
			}
		}
	})

	if _, ok := g.Next(); !ok {
		t.Fatal("no first value")
	}
	g.Close()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("producer still running after Close")
	}
}
