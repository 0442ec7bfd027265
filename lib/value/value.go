package value

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/carton-io/carton/lib/result"
)

// moduleTag is the module identifier carried by all errors of this package.
const moduleTag = "value"

// --------------------------------------------------------------------------
// Kind Tags
// --------------------------------------------------------------------------

// Kind identifies the payload shape of a Value. The numeric tags are part of
// the wire format and must never change.
type Kind uint8

const (
	KindNull      Kind = iota // 0: no payload
	KindBool                  // 1: 1 byte
	KindShort                 // 2: int16, 2 bytes
	KindUShort                // 3: uint16, 2 bytes
	KindInt                   // 4: int32, 4 bytes
	KindUInt                  // 5: uint32, 4 bytes
	KindLong                  // 6: 32-bit-ranged signed, 4 bytes
	KindULong                 // 7: 32-bit-ranged unsigned, 4 bytes
	KindLLong                 // 8: int64, 8 bytes
	KindULLong                // 9: uint64, 8 bytes
	KindFloat                 // 10: float32, 4 bytes
	KindDouble                // 11: float64, 8 bytes
	KindBytes                 // 12: length-prefixed raw bytes
	KindString                // 13: length-prefixed UTF-8
	KindContainer             // 14: length-prefixed encoded container
	KindArray                 // 15: count-prefixed child values
)

// kindNames is indexed by Kind.
var kindNames = [...]string{
	"null", "bool", "short", "ushort", "int", "uint",
	"long", "ulong", "llong", "ullong", "float", "double",
	"bytes", "string", "container", "array",
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the sixteen wire tags.
func (k Kind) Valid() bool {
	return k <= KindArray
}

// Numeric reports whether k carries a fixed-width numeric payload
// (everything from bool through double).
func (k Kind) Numeric() bool {
	return k >= KindBool && k <= KindDouble
}

// Kinds returns all sixteen kinds in wire-tag order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindNull; k <= KindArray; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// --------------------------------------------------------------------------
// 32-bit range policy for long/ulong
// --------------------------------------------------------------------------

// The long family is stored in 64-bit words in memory but is capped to the
// 32-bit range: constructors reject out-of-range magnitudes and the wire
// encoding is 4 bytes. Callers needing the full 64-bit range use llong/ullong.
const (
	longMin  = math.MinInt32
	longMax  = math.MaxInt32
	ulongMax = math.MaxUint32
)

// --------------------------------------------------------------------------
// Value Type
// --------------------------------------------------------------------------

// Value is a single named, typed datum. It is a closed tagged union over the
// sixteen kinds; the payload shape always matches the kind and the kind is
// immutable after construction.
//
// A Value owns its payload: constructors and accessors copy byte slices so
// no caller can alias the internal state.
type Value struct {
	name string
	kind Kind

	// Exactly one of the following holds the payload, selected by kind.
	num uint64  // bool and all numeric kinds (bit pattern)
	str string  // string kind
	buf []byte  // bytes and container kinds
	arr []Value // array kind
}

// Name returns the value's name.
func (v Value) Name() string { return v.name }

// Kind returns the value's kind tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is of the null kind.
func (v Value) IsNull() bool { return v.kind == KindNull }

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// NewNull creates a value of the null kind.
func NewNull(name string) Value {
	return Value{name: name, kind: KindNull}
}

// NewBool creates a bool value.
func NewBool(name string, b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{name: name, kind: KindBool, num: n}
}

// NewShort creates an int16 value.
func NewShort(name string, n int16) Value {
	return Value{name: name, kind: KindShort, num: uint64(uint16(n))}
}

// NewUShort creates a uint16 value.
func NewUShort(name string, n uint16) Value {
	return Value{name: name, kind: KindUShort, num: uint64(n)}
}

// NewInt creates an int32 value.
func NewInt(name string, n int32) Value {
	return Value{name: name, kind: KindInt, num: uint64(uint32(n))}
}

// NewUInt creates a uint32 value.
func NewUInt(name string, n uint32) Value {
	return Value{name: name, kind: KindUInt, num: uint64(n)}
}

// NewLong creates a long value. The long kind is capped to the 32-bit signed
// range; out-of-range magnitudes fail with a ValueOutOfRange error.
func NewLong(name string, n int64) (Value, error) {
	if n < longMin || n > longMax {
		return Value{}, result.Newf(result.CodeValueOutOfRange, moduleTag,
			"long value %d exceeds 32-bit signed range", n)
	}
	return Value{name: name, kind: KindLong, num: uint64(uint32(int32(n)))}, nil
}

// NewULong creates a ulong value. The ulong kind is capped to the 32-bit
// unsigned range; out-of-range magnitudes fail with a ValueOutOfRange error.
func NewULong(name string, n uint64) (Value, error) {
	if n > ulongMax {
		return Value{}, result.Newf(result.CodeValueOutOfRange, moduleTag,
			"ulong value %d exceeds 32-bit unsigned range", n)
	}
	return Value{name: name, kind: KindULong, num: n}, nil
}

// NewLLong creates an int64 value.
func NewLLong(name string, n int64) Value {
	return Value{name: name, kind: KindLLong, num: uint64(n)}
}

// NewULLong creates a uint64 value.
func NewULLong(name string, n uint64) Value {
	return Value{name: name, kind: KindULLong, num: n}
}

// NewFloat creates a float32 value.
func NewFloat(name string, f float32) Value {
	return Value{name: name, kind: KindFloat, num: uint64(math.Float32bits(f))}
}

// NewDouble creates a float64 value.
func NewDouble(name string, f float64) Value {
	return Value{name: name, kind: KindDouble, num: math.Float64bits(f)}
}

// NewBytes creates a bytes value. The input slice is copied.
func NewBytes(name string, b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{name: name, kind: KindBytes, buf: cp}
}

// NewString creates a string value. The bytes are stored as-is (UTF-8,
// unnormalized).
func NewString(name string, s string) Value {
	return Value{name: name, kind: KindString, str: s}
}

// NewContainer creates a container value from the fully-encoded byte form of
// a container. The input slice is copied. The payload is opaque at this
// level: it is bytes that happen to decode as a container.
func NewContainer(name string, encoded []byte) Value {
	cp := make([]byte, len(encoded))
	copy(cp, encoded)
	return Value{name: name, kind: KindContainer, buf: cp}
}

// NewArray creates an array value from an ordered list of child values. The
// slice is copied; children may be of heterogeneous kinds, including nested
// arrays and containers.
func NewArray(name string, elems []Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{name: name, kind: KindArray, arr: cp}
}

// --------------------------------------------------------------------------
// Payload Accessors
// --------------------------------------------------------------------------

// Bool returns the bool payload. Zero value for non-bool kinds.
func (v Value) Bool() bool { return v.kind == KindBool && v.num != 0 }

// Short returns the int16 payload.
func (v Value) Short() int16 { return int16(uint16(v.num)) }

// UShort returns the uint16 payload.
func (v Value) UShort() uint16 { return uint16(v.num) }

// Int returns the int32 payload.
func (v Value) Int() int32 { return int32(uint32(v.num)) }

// UInt returns the uint32 payload.
func (v Value) UInt() uint32 { return uint32(v.num) }

// Long returns the long payload, sign-extended to int64.
func (v Value) Long() int64 { return int64(int32(uint32(v.num))) }

// ULong returns the ulong payload.
func (v Value) ULong() uint64 { return v.num & ulongMax }

// LLong returns the int64 payload.
func (v Value) LLong() int64 { return int64(v.num) }

// ULLong returns the uint64 payload.
func (v Value) ULLong() uint64 { return v.num }

// Float returns the float32 payload.
func (v Value) Float() float32 { return math.Float32frombits(uint32(v.num)) }

// Double returns the float64 payload.
func (v Value) Double() float64 { return math.Float64frombits(v.num) }

// Bytes returns a copy of the bytes payload. Nil for other kinds.
func (v Value) Bytes() []byte {
	if v.kind != KindBytes {
		return nil
	}
	cp := make([]byte, len(v.buf))
	copy(cp, v.buf)
	return cp
}

// Text returns the string payload. Empty for other kinds.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// ContainerBytes returns a copy of the encoded container payload. Nil for
// other kinds.
func (v Value) ContainerBytes() []byte {
	if v.kind != KindContainer {
		return nil
	}
	cp := make([]byte, len(v.buf))
	copy(cp, v.buf)
	return cp
}

// Array returns a copy of the child value list. Nil for other kinds.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	cp := make([]Value, len(v.arr))
	copy(cp, v.arr)
	return cp
}

// Len returns the element count for array values, the byte length for
// bytes/string/container values, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindBytes, KindContainer:
		return len(v.buf)
	case KindString:
		return len(v.str)
	default:
		return 0
	}
}

// --------------------------------------------------------------------------
// Comparison and Formatting
// --------------------------------------------------------------------------

// Equal reports whether two values have the same name, kind and payload.
// Array values compare element-wise in order.
func (v Value) Equal(other Value) bool {
	if v.name != other.name || v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindBytes, KindContainer:
		return bytes.Equal(v.buf, other.buf)
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	default:
		return v.num == other.num
	}
}

// String returns a human-readable rendering of the payload.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindShort:
		return strconv.FormatInt(int64(v.Short()), 10)
	case KindUShort:
		return strconv.FormatUint(uint64(v.UShort()), 10)
	case KindInt:
		return strconv.FormatInt(int64(v.Int()), 10)
	case KindUInt:
		return strconv.FormatUint(uint64(v.UInt()), 10)
	case KindLong:
		return strconv.FormatInt(v.Long(), 10)
	case KindULong:
		return strconv.FormatUint(v.ULong(), 10)
	case KindLLong:
		return strconv.FormatInt(v.LLong(), 10)
	case KindULLong:
		return strconv.FormatUint(v.ULLong(), 10)
	case KindFloat:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case KindBytes, KindContainer:
		return fmt.Sprintf("%x", v.buf)
	case KindString:
		return v.str
	case KindArray:
		var sb bytes.Buffer
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(e.String())
		}
		sb.WriteByte(']')
		return sb.String()
	default:
		return ""
	}
}
