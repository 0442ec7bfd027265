package container_test

import (
	"testing"

	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/container/containertest"
	"github.com/carton-io/carton/lib/result"
	"github.com/carton-io/carton/lib/value"
)

func newWith(policy container.Policy) *container.Container {
	opts := container.DefaultOptions()
	opts.Policy = policy
	return container.New(opts)
}

func TestContractAllPolicies(t *testing.T) {
	containertest.Run(t, "Dynamic", func() containertest.Container {
		return newWith(container.NewDynamic())
	})
	containertest.Run(t, "Indexed", func() containertest.Container {
		return newWith(container.NewIndexed())
	})
	containertest.Run(t, "Typed", func() containertest.Container {
		return newWith(container.NewTyped(
			value.KindInt, value.KindString, value.KindNull,
		))
	})
}

func TestSetChaining(t *testing.T) {
	c := container.New(container.DefaultOptions())
	c.Set(value.NewInt("a", 1)).
		Set(value.NewInt("b", 2)).
		SetAll([]value.Value{value.NewInt("c", 3)})
	if c.Size() != 3 {
		t.Errorf("size = %d, want 3", c.Size())
	}

	// Silent set ignores nameless values instead of failing.
	c.Set(value.NewInt("", 9))
	if c.Size() != 3 {
		t.Error("nameless value stored by silent set")
	}
}

func TestDynamicIterationOrder(t *testing.T) {
	c := newWith(container.NewDynamic())
	names := []string{"z", "a", "m", "b"}
	for i, n := range names {
		c.Set(value.NewInt(n, int32(i)))
	}

	got := c.Values()
	for i, n := range names {
		if got[i].Name() != n {
			t.Fatalf("position %d = %q, want %q (insertion order)", i, got[i].Name(), n)
		}
	}

	// Overwriting keeps the original position.
	c.Set(value.NewInt("a", 99))
	got = c.Values()
	if got[1].Name() != "a" || got[1].Int() != 99 {
		t.Errorf("overwrite moved the entry: %v", got)
	}
}

func TestIndexedIterationStable(t *testing.T) {
	c := newWith(container.NewIndexed())
	for _, n := range []string{"x", "y", "z"} {
		c.Set(value.NewString(n, n))
	}

	first := c.Values()
	second := c.Values()
	for i := range first {
		if first[i].Name() != second[i].Name() {
			t.Fatal("iteration order changed between walks")
		}
	}
}

func TestTypedKindValidation(t *testing.T) {
	c := newWith(container.NewTyped(value.KindInt, value.KindString))

	if err := c.SetResult(value.NewInt("n", 1)); err != nil {
		t.Fatalf("allowed kind rejected: %v", err)
	}
	err := c.SetResult(value.NewDouble("d", 1.5))
	if !result.IsCode(err, result.CodeTypeMismatch) {
		t.Errorf("disallowed kind error = %v, want TypeMismatch", err)
	}
	if c.Contains("d") {
		t.Error("disallowed kind was stored")
	}
}

func TestTypedIterationByDeclaredKind(t *testing.T) {
	// Declared order: string before int. Iteration must group by that
	// order regardless of insertion order.
	c := newWith(container.NewTyped(value.KindString, value.KindInt))
	c.Set(value.NewInt("i1", 1))
	c.Set(value.NewString("s1", "a"))
	c.Set(value.NewInt("i2", 2))
	c.Set(value.NewString("s2", "b"))

	got := c.Values()
	wantNames := []string{"s1", "s2", "i1", "i2"}
	for i, n := range wantNames {
		if got[i].Name() != n {
			t.Fatalf("position %d = %q, want %q", i, got[i].Name(), n)
		}
	}
}

func TestSwapHeader(t *testing.T) {
	c := container.New(container.Options{
		SourceID: "A", SourceSubID: "a",
		TargetID: "B", TargetSubID: "b",
	})
	c.SwapHeader()
	if c.SourceID() != "B" || c.SourceSubID() != "b" {
		t.Errorf("source = %q/%q", c.SourceID(), c.SourceSubID())
	}
	if c.TargetID() != "A" || c.TargetSubID() != "a" {
		t.Errorf("target = %q/%q", c.TargetID(), c.TargetSubID())
	}
}

func TestHeaderSetters(t *testing.T) {
	c := container.New(container.DefaultOptions())
	c.SetSource("src", "s1").SetTarget("dst", "d1").SetMessageType("ping")
	if c.SourceID() != "src" || c.TargetSubID() != "d1" || c.MessageType() != "ping" {
		t.Error("header setters lost a field")
	}
	if c.Version() != container.DefaultVersion {
		t.Errorf("version = %q", c.Version())
	}
}

func TestCopyIsDeep(t *testing.T) {
	c := container.New(container.DefaultOptions())
	c.Set(value.NewInt("n", 1))

	cp := c.Copy()
	cp.Set(value.NewInt("n", 2))
	cp.Set(value.NewInt("extra", 3))
	cp.SetSource("other", "")

	if v, _ := c.Get("n"); v.Int() != 1 {
		t.Error("copy mutation leaked into original")
	}
	if c.Contains("extra") {
		t.Error("copy insert leaked into original")
	}
	if c.SourceID() == "other" {
		t.Error("copy header leaked into original")
	}
}

func TestCollectStats(t *testing.T) {
	c := container.New(container.DefaultOptions())
	c.Set(value.NewInt("a", 1))
	c.Set(value.NewInt("b", 2))
	c.Set(value.NewString("s", "x"))

	st := c.CollectStats()
	if st.Values != 3 {
		t.Errorf("Values = %d", st.Values)
	}
	if st.PerKind[value.KindInt] != 2 || st.PerKind[value.KindString] != 1 {
		t.Errorf("PerKind = %v", st.PerKind)
	}
	if st.PayloadBytes == 0 {
		t.Error("PayloadBytes = 0")
	}
}

func TestPolicyKindNames(t *testing.T) {
	if container.NewDynamic().Kind().String() != "dynamic" ||
		container.NewIndexed().Kind().String() != "indexed" ||
		container.NewTyped().Kind().String() != "typed" {
		t.Error("policy kind names wrong")
	}
}
