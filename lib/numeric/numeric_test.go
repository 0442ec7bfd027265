package numeric

import (
	"math"
	"testing"

	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/value"
)

func TestSum(t *testing.T) {
	cases := []struct {
		xs   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{1.5}, 1.5},
		{[]float64{1, 2, 3, 4}, 10},
		{[]float64{1, 2, 3, 4, 5, 6, 7}, 28}, // exercises the unrolled tail
		{[]float64{-1, 1, -2, 2}, 0},
	}
	for _, c := range cases {
		if got := Sum(c.xs); got != c.want {
			t.Errorf("Sum(%v) = %g, want %g", c.xs, got, c.want)
		}
	}
}

func TestSumLargeMatchesNaive(t *testing.T) {
	xs := make([]float64, 1001)
	naive := 0.0
	for i := range xs {
		xs[i] = float64(i) * 0.25
		naive += xs[i]
	}
	if got := Sum(xs); math.Abs(got-naive) > 1e-6 {
		t.Errorf("Sum = %g, naive = %g", got, naive)
	}
}

func TestMinMax(t *testing.T) {
	xs := []float64{3, -7, 12, 0.5}
	if m, ok := Min(xs); !ok || m != -7 {
		t.Errorf("Min = %g, %v", m, ok)
	}
	if m, ok := Max(xs); !ok || m != 12 {
		t.Errorf("Max = %g, %v", m, ok)
	}
	if _, ok := Min(nil); ok {
		t.Error("Min(nil) reported ok")
	}
	if _, ok := Max(nil); ok {
		t.Error("Max(nil) reported ok")
	}
}

func TestContainerReductions(t *testing.T) {
	c := container.New(container.DefaultOptions())
	c.Set(value.NewFloat("f1", 1.5)).
		Set(value.NewDouble("d1", 2.5)).
		Set(value.NewInt("ignored", 100)).
		Set(value.NewString("also_ignored", "x")).
		Set(value.NewDouble("d2", -4))

	if got := SumValues(c); got != 0 {
		t.Errorf("SumValues = %g, want 0", got)
	}
	if m, ok := MinValues(c); !ok || m != -4 {
		t.Errorf("MinValues = %g, %v", m, ok)
	}
	if m, ok := MaxValues(c); !ok || m != 2.5 {
		t.Errorf("MaxValues = %g, %v", m, ok)
	}
}

func TestEmptyContainerReductions(t *testing.T) {
	c := container.New(container.DefaultOptions())
	if got := SumValues(c); got != 0 {
		t.Errorf("SumValues = %g", got)
	}
	if _, ok := MinValues(c); ok {
		t.Error("MinValues on empty container reported ok")
	}
}

func BenchmarkSum(b *testing.B) {
	xs := make([]float64, 4096)
	for i := range xs {
		xs[i] = float64(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sum(xs)
	}
}
