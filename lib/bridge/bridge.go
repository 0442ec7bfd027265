// Package bridge converts between the legacy per-kind value objects and
// the modern tagged-union value without loss. Both representations share
// one codec underneath, so the conversion's controlling property is easy
// to state: a legacy value and its modern counterpart are byte-identical
// on the wire, and ToModern/ToLegacy are mutual inverses for every kind,
// including element-wise over arrays.
//
// Conversions are counted in a metrics registry for observability; inject
// one per Bridge or share the process default.
package bridge

import (
	"bytes"

	"github.com/carton-io/carton/lib/metrics"
	"github.com/carton-io/carton/lib/result"
	"github.com/carton-io/carton/lib/value"
)

// moduleTag is the module identifier carried by all errors of this package.
const moduleTag = "bridge"

// Bridge performs legacy/modern conversions, counting them in reg.
type Bridge struct {
	reg *metrics.Registry
}

// New creates a bridge counting into reg; nil means the process default.
func New(reg *metrics.Registry) *Bridge {
	if reg == nil {
		reg = metrics.Default()
	}
	return &Bridge{reg: reg}
}

// ToModern unwraps a legacy value into the modern union. Arrays convert
// element-wise, preserving order.
func (b *Bridge) ToModern(l Legacy) value.Value {
	b.reg.ToModern.Inc()
	return l.modern()
}

// ToLegacy wraps a modern value in its legacy counterpart. Arrays convert
// element-wise, preserving order.
func (b *Bridge) ToLegacy(v value.Value) (Legacy, error) {
	b.reg.ToLegacy.Inc()
	switch v.Kind() {
	case value.KindNull:
		return &NullValue{base{v}}, nil
	case value.KindBool:
		return &BoolValue{base{v}}, nil
	case value.KindShort:
		return &ShortValue{base{v}}, nil
	case value.KindUShort:
		return &UShortValue{base{v}}, nil
	case value.KindInt:
		return &IntValue{base{v}}, nil
	case value.KindUInt:
		return &UIntValue{base{v}}, nil
	case value.KindLong:
		return &LongValue{base{v}}, nil
	case value.KindULong:
		return &ULongValue{base{v}}, nil
	case value.KindLLong:
		return &LLongValue{base{v}}, nil
	case value.KindULLong:
		return &ULLongValue{base{v}}, nil
	case value.KindFloat:
		return &FloatValue{base{v}}, nil
	case value.KindDouble:
		return &DoubleValue{base{v}}, nil
	case value.KindBytes:
		return &BytesValue{base{v}}, nil
	case value.KindString:
		return &StringValue{base{v}}, nil
	case value.KindContainer:
		return &ContainerValue{base{v}}, nil
	case value.KindArray:
		elems := v.Array()
		legacy := make([]Legacy, len(elems))
		for i, e := range elems {
			le, err := b.ToLegacy(e)
			if err != nil {
				return nil, err
			}
			legacy[i] = le
		}
		return &ArrayValue{name: v.Name(), elems: legacy}, nil
	default:
		return nil, result.Newf(result.CodeInvalidValue, moduleTag,
			"kind %s has no legacy counterpart", v.Kind())
	}
}

// VerifyRoundTrip composes both directions and checks that the starting
// legacy value and its round-tripped twin are byte-identical on the wire.
// The bridge's primary correctness gate; failures are counted.
func (b *Bridge) VerifyRoundTrip(l Legacy) error {
	back, err := b.ToLegacy(b.ToModern(l))
	if err != nil {
		b.reg.RoundTripFailures.Inc()
		return err
	}
	if !bytes.Equal(l.Encode(), back.Encode()) {
		b.reg.RoundTripFailures.Inc()
		return result.Newf(result.CodeInvalidValue, moduleTag,
			"round trip of %q (%s) is not byte-identical", l.Name(), l.Kind())
	}
	return nil
}

// ----------------------------------------------------------------------
// Package-level forms using the default registry
// ----------------------------------------------------------------------

var defaultBridge = New(nil)

// ToModern converts using the default bridge.
func ToModern(l Legacy) value.Value { return defaultBridge.ToModern(l) }

// ToLegacy converts using the default bridge.
func ToLegacy(v value.Value) (Legacy, error) { return defaultBridge.ToLegacy(v) }

// VerifyRoundTrip checks using the default bridge.
func VerifyRoundTrip(l Legacy) error { return defaultBridge.VerifyRoundTrip(l) }
