package bridge

import (
	"github.com/carton-io/carton/lib/value"
)

// Legacy is the old per-kind value surface. Each concrete type is a thin
// wrapper over the modern tagged union, so legacy values encode through the
// same codec and are byte-identical to their modern counterparts on the
// wire.
type Legacy interface {
	Name() string
	Kind() value.Kind
	Encode() []byte

	// modern unwraps the underlying union value. Array values rebuild it
	// from their children.
	modern() value.Value
}

// base carries the wrapped union for all scalar legacy kinds.
type base struct {
	v value.Value
}

func (b base) Name() string        { return b.v.Name() }
func (b base) Kind() value.Kind    { return b.v.Kind() }
func (b base) Encode() []byte      { return value.Encode(b.v) }
func (b base) modern() value.Value { return b.v }

// ----------------------------------------------------------------------
// Per-kind wrappers
// ----------------------------------------------------------------------

type NullValue struct{ base }

func NewNullValue(name string) *NullValue {
	return &NullValue{base{value.NewNull(name)}}
}

type BoolValue struct{ base }

func NewBoolValue(name string, data bool) *BoolValue {
	return &BoolValue{base{value.NewBool(name, data)}}
}

func (x *BoolValue) Data() bool { return x.v.Bool() }

type ShortValue struct{ base }

func NewShortValue(name string, data int16) *ShortValue {
	return &ShortValue{base{value.NewShort(name, data)}}
}

func (x *ShortValue) Data() int16 { return x.v.Short() }

type UShortValue struct{ base }

func NewUShortValue(name string, data uint16) *UShortValue {
	return &UShortValue{base{value.NewUShort(name, data)}}
}

func (x *UShortValue) Data() uint16 { return x.v.UShort() }

type IntValue struct{ base }

func NewIntValue(name string, data int32) *IntValue {
	return &IntValue{base{value.NewInt(name, data)}}
}

func (x *IntValue) Data() int32 { return x.v.Int() }

type UIntValue struct{ base }

func NewUIntValue(name string, data uint32) *UIntValue {
	return &UIntValue{base{value.NewUInt(name, data)}}
}

func (x *UIntValue) Data() uint32 { return x.v.UInt() }

type LongValue struct{ base }

// NewLongValue enforces the same 32-bit range as the modern constructor.
func NewLongValue(name string, data int64) (*LongValue, error) {
	v, err := value.NewLong(name, data)
	if err != nil {
		return nil, err
	}
	return &LongValue{base{v}}, nil
}

func (x *LongValue) Data() int64 { return x.v.Long() }

type ULongValue struct{ base }

func NewULongValue(name string, data uint64) (*ULongValue, error) {
	v, err := value.NewULong(name, data)
	if err != nil {
		return nil, err
	}
	return &ULongValue{base{v}}, nil
}

func (x *ULongValue) Data() uint64 { return x.v.ULong() }

type LLongValue struct{ base }

func NewLLongValue(name string, data int64) *LLongValue {
	return &LLongValue{base{value.NewLLong(name, data)}}
}

func (x *LLongValue) Data() int64 { return x.v.LLong() }

type ULLongValue struct{ base }

func NewULLongValue(name string, data uint64) *ULLongValue {
	return &ULLongValue{base{value.NewULLong(name, data)}}
}

func (x *ULLongValue) Data() uint64 { return x.v.ULLong() }

type FloatValue struct{ base }

func NewFloatValue(name string, data float32) *FloatValue {
	return &FloatValue{base{value.NewFloat(name, data)}}
}

func (x *FloatValue) Data() float32 { return x.v.Float() }

type DoubleValue struct{ base }

func NewDoubleValue(name string, data float64) *DoubleValue {
	return &DoubleValue{base{value.NewDouble(name, data)}}
}

func (x *DoubleValue) Data() float64 { return x.v.Double() }

type BytesValue struct{ base }

func NewBytesValue(name string, data []byte) *BytesValue {
	return &BytesValue{base{value.NewBytes(name, data)}}
}

func (x *BytesValue) Data() []byte { return x.v.Bytes() }

type StringValue struct{ base }

func NewStringValue(name string, data string) *StringValue {
	return &StringValue{base{value.NewString(name, data)}}
}

func (x *StringValue) Data() string { return x.v.Text() }

type ContainerValue struct{ base }

// NewContainerValue wraps the fully-encoded byte form of a container.
func NewContainerValue(name string, encoded []byte) *ContainerValue {
	return &ContainerValue{base{value.NewContainer(name, encoded)}}
}

func (x *ContainerValue) Data() []byte { return x.v.ContainerBytes() }

// ArrayValue is the one legacy kind that is not a flat wrapper: it holds
// legacy children and rebuilds the union value element-wise on demand.
type ArrayValue struct {
	name  string
	elems []Legacy
}

func NewArrayValue(name string, elems []Legacy) *ArrayValue {
	cp := make([]Legacy, len(elems))
	copy(cp, elems)
	return &ArrayValue{name: name, elems: cp}
}

func (x *ArrayValue) Name() string     { return x.name }
func (x *ArrayValue) Kind() value.Kind { return value.KindArray }

func (x *ArrayValue) Elems() []Legacy {
	cp := make([]Legacy, len(x.elems))
	copy(cp, x.elems)
	return cp
}

func (x *ArrayValue) Encode() []byte {
	return value.Encode(x.modern())
}

func (x *ArrayValue) modern() value.Value {
	children := make([]value.Value, len(x.elems))
	for i, e := range x.elems {
		children[i] = e.modern()
	}
	return value.NewArray(x.name, children)
}
