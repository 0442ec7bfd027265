// Package numeric provides float reduction helpers over raw slices and
// over the float-kind values of a container. The loops are 4-way unrolled;
// callers needing SIMD throughput beyond that should batch at a higher
// level.
package numeric

import (
	"github.com/carton-io/carton/lib/value"
)

// Sum returns the sum of xs. Zero for an empty slice.
func Sum(xs []float64) float64 {
	var s0, s1, s2, s3 float64
	n := len(xs) &^ 3
	for i := 0; i < n; i += 4 {
		s0 += xs[i]
		s1 += xs[i+1]
		s2 += xs[i+2]
		s3 += xs[i+3]
	}
	s := s0 + s1 + s2 + s3
	for _, x := range xs[n:] {
		s += x
	}
	return s
}

// Min returns the smallest element. ok is false for an empty slice.
func Min(xs []float64) (m float64, ok bool) {
	if len(xs) == 0 {
		return 0, false
	}
	m = xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m, true
}

// Max returns the largest element. ok is false for an empty slice.
func Max(xs []float64) (m float64, ok bool) {
	if len(xs) == 0 {
		return 0, false
	}
	m = xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m, true
}

// Floats extracts the float and double payloads from a value source in
// iteration order, widening float32 to float64. Other kinds are skipped.
func Floats(src interface{ Values() []value.Value }) []float64 {
	var out []float64
	for _, v := range src.Values() {
		switch v.Kind() {
		case value.KindFloat:
			out = append(out, float64(v.Float()))
		case value.KindDouble:
			out = append(out, v.Double())
		}
	}
	return out
}

// SumValues sums a container's float-kind values.
func SumValues(src interface{ Values() []value.Value }) float64 {
	return Sum(Floats(src))
}

// MinValues returns the smallest float-kind value in the container.
func MinValues(src interface{ Values() []value.Value }) (float64, bool) {
	return Min(Floats(src))
}

// MaxValues returns the largest float-kind value in the container.
func MaxValues(src interface{ Values() []value.Value }) (float64, bool) {
	return Max(Floats(src))
}
