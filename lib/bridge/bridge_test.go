package bridge

import (
	"bytes"
	"testing"

	"github.com/carton-io/carton/lib/metrics"
	"github.com/carton-io/carton/lib/value"
)

func legacySamples(t *testing.T) []Legacy {
	t.Helper()
	long, err := NewLongValue("lg", -99)
	if err != nil {
		t.Fatalf("NewLongValue: %v", err)
	}
	ulong, err := NewULongValue("ulg", 99)
	if err != nil {
		t.Fatalf("NewULongValue: %v", err)
	}
	return []Legacy{
		NewNullValue("n"),
		NewBoolValue("b", true),
		NewShortValue("sh", -2),
		NewUShortValue("ush", 2),
		NewIntValue("i", -40000),
		NewUIntValue("ui", 40000),
		long,
		ulong,
		NewLLongValue("ll", -1 << 40),
		NewULLongValue("ull", 1<<63),
		NewFloatValue("f", 0.5),
		NewDoubleValue("d", -100.25),
		NewBytesValue("raw", []byte{9, 8, 7}),
		NewStringValue("s", "legacy"),
		NewContainerValue("c", []byte{1, 2, 3}),
		NewArrayValue("arr", []Legacy{
			NewIntValue("x", 1),
			NewArrayValue("inner", []Legacy{NewStringValue("y", "deep")}),
		}),
	}
}

func TestRoundTripEveryKind(t *testing.T) {
	for _, l := range legacySamples(t) {
		t.Run(l.Kind().String(), func(t *testing.T) {
			if err := VerifyRoundTrip(l); err != nil {
				t.Fatalf("VerifyRoundTrip: %v", err)
			}
		})
	}
}

func TestLegacyAndModernEncodeIdentically(t *testing.T) {
	for _, l := range legacySamples(t) {
		modern := ToModern(l)
		if !bytes.Equal(l.Encode(), value.Encode(modern)) {
			t.Errorf("%s %q: legacy and modern wire forms differ", l.Kind(), l.Name())
		}
	}
}

func TestToLegacyPreservesPayload(t *testing.T) {
	v := value.NewInt("n", 123)
	l, err := ToLegacy(v)
	if err != nil {
		t.Fatalf("ToLegacy: %v", err)
	}
	iv, ok := l.(*IntValue)
	if !ok {
		t.Fatalf("ToLegacy returned %T", l)
	}
	if iv.Data() != 123 || iv.Name() != "n" {
		t.Errorf("payload lost: %d %q", iv.Data(), iv.Name())
	}
}

func TestArrayConvertsElementWise(t *testing.T) {
	arr := NewArrayValue("arr", []Legacy{
		NewIntValue("a", 1),
		NewStringValue("b", "two"),
	})

	modern := ToModern(arr)
	if modern.Kind() != value.KindArray || modern.Len() != 2 {
		t.Fatalf("modern = %v", modern)
	}
	elems := modern.Array()
	if elems[0].Int() != 1 || elems[1].Text() != "two" {
		t.Errorf("element order or payload lost: %v", elems)
	}

	back, err := ToLegacy(modern)
	if err != nil {
		t.Fatalf("ToLegacy: %v", err)
	}
	children := back.(*ArrayValue).Elems()
	if len(children) != 2 || children[0].Name() != "a" || children[1].Name() != "b" {
		t.Errorf("legacy children wrong: %v", children)
	}
}

func TestLongValueRangeEnforced(t *testing.T) {
	if _, err := NewLongValue("n", 1<<40); err == nil {
		t.Error("out-of-range long accepted")
	}
	if _, err := NewULongValue("n", 1<<40); err == nil {
		t.Error("out-of-range ulong accepted")
	}
}

func TestDecodedBytesSatisfyLegacy(t *testing.T) {
	// Wire bytes from a modern encode convert into legacy objects.
	wire := value.Encode(value.NewDouble("ratio", 2.5))
	v, err := value.Decode(wire)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	l, err := ToLegacy(v)
	if err != nil {
		t.Fatalf("ToLegacy: %v", err)
	}
	if !bytes.Equal(l.Encode(), wire) {
		t.Error("legacy re-encode not byte-identical to original wire")
	}
}

func TestConversionCounters(t *testing.T) {
	reg := metrics.New()
	b := New(reg)

	b.ToModern(NewIntValue("n", 1))
	b.ToModern(NewIntValue("n", 2))
	if _, err := b.ToLegacy(value.NewInt("n", 3)); err != nil {
		t.Fatalf("ToLegacy: %v", err)
	}

	if reg.ToModern.Get() != 2 {
		t.Errorf("ToModern counter = %d", reg.ToModern.Get())
	}
	if reg.ToLegacy.Get() != 1 {
		t.Errorf("ToLegacy counter = %d", reg.ToLegacy.Get())
	}

	reg.Reset()
	if reg.ToModern.Get() != 0 {
		t.Error("Reset did not zero counters")
	}
}
