// Package containertest provides a reusable conformance suite for the
// container contract. Every storage policy and every wrapper layered on a
// container must pass it unchanged; policy-specific behavior (iteration
// order, kind validation, chaining forms) is tested next to the policy
// itself.
package containertest

import (
	"fmt"
	"testing"

	"github.com/carton-io/carton/lib/result"
	"github.com/carton-io/carton/lib/value"
)

// Container is the subset of the container contract the suite exercises.
// Both *container.Container and the safe wrappers satisfy it.
type Container interface {
	SetResult(v value.Value) error
	Get(name string) (value.Value, bool)
	GetResult(name string) (value.Value, error)
	Contains(name string) bool
	Remove(name string) bool
	RemoveResult(name string) error
	SetAllResult(vals []value.Value) error
	GetBatch(names []string) []value.Value
	ContainsBatch(names []string) []bool
	RemoveBatch(names []string) int
	Size() int
	Empty() bool
	Clear()
	Values() []value.Value
}

// Factory creates a fresh, empty container for one subtest.
type Factory func() Container

// Run runs the conformance suite against containers built by factory.
func Run(t *testing.T, name string, factory Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})
		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory())
		})
		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory())
		})
		t.Run("EmptyName", func(t *testing.T) {
			testEmptyName(t, factory())
		})
		t.Run("Batch", func(t *testing.T) {
			testBatch(t, factory())
		})
		t.Run("BulkDuplicates", func(t *testing.T) {
			testBulkDuplicates(t, factory())
		})
		t.Run("ClearAndSize", func(t *testing.T) {
			testClearAndSize(t, factory())
		})
		t.Run("ManyKeys", func(t *testing.T) {
			testManyKeys(t, factory())
		})
	})
}

func mustSet(t *testing.T, c Container, v value.Value) {
	t.Helper()
	if err := c.SetResult(v); err != nil {
		t.Fatalf("SetResult(%s): %v", v.Name(), err)
	}
}

func testSetGet(t *testing.T, c Container) {
	mustSet(t, c, value.NewInt("answer", 42))
	mustSet(t, c, value.NewString("greeting", "hello"))

	v, ok := c.Get("answer")
	if !ok || v.Int() != 42 {
		t.Fatalf("Get(answer) = %v, %v", v, ok)
	}
	v, err := c.GetResult("greeting")
	if err != nil || v.Text() != "hello" {
		t.Fatalf("GetResult(greeting) = %v, %v", v, err)
	}

	if _, ok := c.Get("absent"); ok {
		t.Error("Get(absent) found a value")
	}
	if _, err := c.GetResult("absent"); !result.IsCode(err, result.CodeKeyNotFound) {
		t.Errorf("GetResult(absent) error = %v, want KeyNotFound", err)
	}
	if !c.Contains("answer") || c.Contains("absent") {
		t.Error("Contains gave wrong answer")
	}
}

func testOverwrite(t *testing.T, c Container) {
	mustSet(t, c, value.NewInt("n", 1))
	mustSet(t, c, value.NewInt("n", 2))

	if c.Size() != 1 {
		t.Fatalf("second set duplicated: size = %d", c.Size())
	}
	if v, _ := c.Get("n"); v.Int() != 2 {
		t.Errorf("overwrite lost: %v", v)
	}

	// Overwriting may also change the kind.
	mustSet(t, c, value.NewString("n", "two"))
	if v, _ := c.Get("n"); v.Kind() != value.KindString {
		t.Errorf("kind change lost: %v", v.Kind())
	}
}

func testRemove(t *testing.T, c Container) {
	mustSet(t, c, value.NewInt("keep", 1))
	mustSet(t, c, value.NewInt("drop", 2))

	if !c.Remove("drop") {
		t.Fatal("Remove(drop) reported failure")
	}
	if c.Contains("drop") || !c.Contains("keep") {
		t.Error("Remove removed the wrong entry")
	}

	if c.Remove("drop") {
		t.Error("second Remove reported success")
	}
	if err := c.RemoveResult("drop"); !result.IsCode(err, result.CodeKeyNotFound) {
		t.Errorf("RemoveResult(absent) error = %v, want KeyNotFound", err)
	}
}

func testEmptyName(t *testing.T, c Container) {
	if err := c.SetResult(value.NewInt("", 1)); !result.IsCode(err, result.CodeEmptyKey) {
		t.Errorf("SetResult(nameless) error = %v, want EmptyKey", err)
	}
	if c.Size() != 0 {
		t.Error("nameless value was stored")
	}
	if _, err := c.GetResult(""); !result.IsCode(err, result.CodeEmptyKey) {
		t.Errorf("GetResult(empty) error = %v, want EmptyKey", err)
	}
	if err := c.RemoveResult(""); !result.IsCode(err, result.CodeEmptyKey) {
		t.Errorf("RemoveResult(empty) error = %v, want EmptyKey", err)
	}
}

func testBatch(t *testing.T, c Container) {
	err := c.SetAllResult([]value.Value{
		value.NewInt("a", 1),
		value.NewInt("b", 2),
		value.NewInt("c", 3),
	})
	if err != nil {
		t.Fatalf("SetAllResult: %v", err)
	}

	got := c.GetBatch([]string{"a", "missing", "c"})
	if len(got) != 2 || got[0].Int() != 1 || got[1].Int() != 3 {
		t.Errorf("GetBatch = %v", got)
	}

	present := c.ContainsBatch([]string{"a", "missing", "c"})
	want := []bool{true, false, true}
	for i := range want {
		if present[i] != want[i] {
			t.Errorf("ContainsBatch[%d] = %v", i, present[i])
		}
	}

	if n := c.RemoveBatch([]string{"a", "missing", "b"}); n != 2 {
		t.Errorf("RemoveBatch removed %d, want 2", n)
	}
	if c.Size() != 1 || !c.Contains("c") {
		t.Errorf("wrong survivors: size %d", c.Size())
	}
}

func testBulkDuplicates(t *testing.T, c Container) {
	// Bulk insertion appends; it never replaces like a singular set does.
	err := c.SetAllResult([]value.Value{
		value.NewInt("dup", 1),
		value.NewInt("dup", 2),
	})
	if err != nil {
		t.Fatalf("SetAllResult: %v", err)
	}
	if c.Size() != 2 {
		t.Fatalf("bulk duplicates collapsed: size = %d", c.Size())
	}

	// Lookup returns the first occurrence.
	if v, _ := c.Get("dup"); v.Int() != 1 {
		t.Errorf("Get(dup) = %v, want first occurrence", v)
	}

	// A singular set collapses all duplicates into one entry.
	mustSet(t, c, value.NewInt("dup", 9))
	if c.Size() != 1 {
		t.Errorf("set left duplicates: size = %d", c.Size())
	}

	// Remove takes out every entry sharing the name.
	c.SetAllResult([]value.Value{
		value.NewInt("dup", 1),
		value.NewInt("dup", 2),
	})
	c.Remove("dup")
	if c.Contains("dup") {
		t.Error("Remove left a duplicate behind")
	}

	// A mid-batch failure commits the prior items.
	c.Clear()
	err = c.SetAllResult([]value.Value{
		value.NewInt("ok", 1),
		value.NewInt("", 2),
		value.NewInt("never", 3),
	})
	if !result.IsCode(err, result.CodeEmptyKey) {
		t.Errorf("mid-batch error = %v, want EmptyKey", err)
	}
	if !c.Contains("ok") || c.Contains("never") {
		t.Error("non-transactional batch semantics violated")
	}
}

func testClearAndSize(t *testing.T, c Container) {
	if !c.Empty() {
		t.Fatal("fresh container not empty")
	}
	mustSet(t, c, value.NewInt("a", 1))
	mustSet(t, c, value.NewInt("b", 2))
	if c.Size() != 2 || c.Empty() {
		t.Errorf("size = %d", c.Size())
	}
	c.Clear()
	if !c.Empty() {
		t.Error("Clear left entries")
	}
	if len(c.Values()) != 0 {
		t.Error("Values after Clear not empty")
	}
}

func testManyKeys(t *testing.T, c Container) {
	const n = 10000
	for i := 0; i < n; i++ {
		mustSet(t, c, value.NewInt(fmt.Sprintf("key-%d", i), int32(i)))
	}
	if c.Size() != n {
		t.Fatalf("size = %d, want %d", c.Size(), n)
	}
	for _, i := range []int{0, 1, n / 2, n - 1} {
		v, ok := c.Get(fmt.Sprintf("key-%d", i))
		if !ok || v.Int() != int32(i) {
			t.Errorf("key-%d: %v, %v", i, v, ok)
		}
	}
	if c.Contains(fmt.Sprintf("key-%d", n)) {
		t.Error("absent key reported present")
	}
}
