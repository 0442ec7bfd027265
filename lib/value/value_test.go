package value

import (
	"math"
	"testing"

	"github.com/carton-io/carton/lib/result"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindNull:      "null",
		KindBool:      "bool",
		KindLong:      "long",
		KindDouble:    "double",
		KindBytes:     "bytes",
		KindString:    "string",
		KindContainer: "container",
		KindArray:     "array",
		Kind(99):      "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestNumericConstructorsRoundTrip(t *testing.T) {
	if v := NewShort("s", -123); v.Short() != -123 || v.Kind() != KindShort {
		t.Errorf("short: got %d kind %v", v.Short(), v.Kind())
	}
	if v := NewUShort("us", 65535); v.UShort() != 65535 {
		t.Errorf("ushort: got %d", v.UShort())
	}
	if v := NewInt("i", math.MinInt32); v.Int() != math.MinInt32 {
		t.Errorf("int: got %d", v.Int())
	}
	if v := NewUInt("ui", math.MaxUint32); v.UInt() != math.MaxUint32 {
		t.Errorf("uint: got %d", v.UInt())
	}
	if v := NewLLong("ll", math.MinInt64); v.LLong() != math.MinInt64 {
		t.Errorf("llong: got %d", v.LLong())
	}
	if v := NewULLong("ull", math.MaxUint64); v.ULLong() != math.MaxUint64 {
		t.Errorf("ullong: got %d", v.ULLong())
	}
	if v := NewFloat("f", 3.5); v.Float() != 3.5 {
		t.Errorf("float: got %g", v.Float())
	}
	if v := NewDouble("d", -2.25); v.Double() != -2.25 {
		t.Errorf("double: got %g", v.Double())
	}
}

func TestLongRangeEnforcement(t *testing.T) {
	// In range, including both 32-bit boundaries.
	for _, n := range []int64{0, -1, math.MinInt32, math.MaxInt32} {
		v, err := NewLong("n", n)
		if err != nil {
			t.Fatalf("NewLong(%d) unexpected error: %v", n, err)
		}
		if v.Long() != n {
			t.Errorf("NewLong(%d).Long() = %d", n, v.Long())
		}
	}

	// Out of range.
	for _, n := range []int64{math.MaxInt32 + 1, math.MinInt32 - 1, math.MaxInt64} {
		_, err := NewLong("n", n)
		if err == nil {
			t.Fatalf("NewLong(%d) expected error", n)
		}
		if !result.IsCode(err, result.CodeValueOutOfRange) {
			t.Errorf("NewLong(%d) error = %v, want ValueOutOfRange", n, err)
		}
	}
}

func TestULongRangeEnforcement(t *testing.T) {
	v, err := NewULong("n", math.MaxUint32)
	if err != nil {
		t.Fatalf("NewULong(max): %v", err)
	}
	if v.ULong() != math.MaxUint32 {
		t.Errorf("ULong() = %d", v.ULong())
	}

	if _, err := NewULong("n", math.MaxUint32+1); !result.IsCode(err, result.CodeValueOutOfRange) {
		t.Errorf("NewULong(overflow) error = %v, want ValueOutOfRange", err)
	}
}

func TestFloatSpecialValues(t *testing.T) {
	if v := NewDouble("inf", math.Inf(1)); !math.IsInf(v.Double(), 1) {
		t.Errorf("+Inf not preserved: %g", v.Double())
	}
	if v := NewDouble("nan", math.NaN()); !math.IsNaN(v.Double()) {
		t.Errorf("NaN not preserved: %g", v.Double())
	}
	if v := NewFloat("ninf", float32(math.Inf(-1))); !math.IsInf(float64(v.Float()), -1) {
		t.Errorf("-Inf not preserved: %g", v.Float())
	}
}

func TestBytesOwnership(t *testing.T) {
	src := []byte{1, 2, 3}
	v := NewBytes("b", src)
	src[0] = 99
	if got := v.Bytes(); got[0] != 1 {
		t.Errorf("constructor aliased caller slice: %v", got)
	}

	out := v.Bytes()
	out[1] = 99
	if again := v.Bytes(); again[1] != 2 {
		t.Errorf("accessor aliased internal slice: %v", again)
	}
}

func TestAccessorsOnWrongKind(t *testing.T) {
	s := NewString("s", "hello")
	if s.Bytes() != nil {
		t.Error("Bytes() on string kind should be nil")
	}
	if s.Array() != nil {
		t.Error("Array() on string kind should be nil")
	}
	if s.Bool() {
		t.Error("Bool() on string kind should be false")
	}

	b := NewBytes("b", []byte("raw"))
	if b.Text() != "" {
		t.Error("Text() on bytes kind should be empty")
	}
}

func TestEqual(t *testing.T) {
	a := NewArray("arr", []Value{
		NewInt("x", 1),
		NewString("y", "two"),
	})
	b := NewArray("arr", []Value{
		NewInt("x", 1),
		NewString("y", "two"),
	})
	if !a.Equal(b) {
		t.Error("identical arrays not equal")
	}

	c := NewArray("arr", []Value{
		NewInt("x", 1),
		NewString("y", "three"),
	})
	if a.Equal(c) {
		t.Error("differing arrays reported equal")
	}

	if NewInt("n", 5).Equal(NewUInt("n", 5)) {
		t.Error("kind mismatch reported equal")
	}
	if NewInt("a", 5).Equal(NewInt("b", 5)) {
		t.Error("name mismatch reported equal")
	}
	if !NewNull("n").Equal(NewNull("n")) {
		t.Error("nulls with same name not equal")
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{NewNull("n"), "null"},
		{NewBool("b", true), "true"},
		{NewInt("i", -42), "-42"},
		{NewString("s", "hi"), "hi"},
		{NewBytes("raw", []byte{0xde, 0xad}), "dead"},
		{NewArray("a", []Value{NewInt("x", 1), NewInt("y", 2)}), "[1,2]"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
