package value

import (
	"encoding/binary"
	"strconv"

	"github.com/carton-io/carton/lib/result"
)

// Binary wire format for a single value, little-endian throughout:
//
//	[name_len:u32][name_bytes][kind:u8][payload]
//
// Payload widths by kind:
//
//	null                          empty
//	bool                          1 byte
//	short, ushort                 2 bytes
//	int, uint, long, ulong, float 4 bytes
//	llong, ullong, double         8 bytes
//	bytes, string, container      [len:u32][raw]
//	array                         [count:u32] + each child encoded recursively
//
// long and ulong travel as 4 bytes even though they are held in 64-bit words
// in memory; the constructors guarantee the payload fits.

// fixed payload sizes by kind, -1 where the size depends on the payload.
var payloadSizes = [...]int{
	KindNull:      0,
	KindBool:      1,
	KindShort:     2,
	KindUShort:    2,
	KindInt:       4,
	KindUInt:      4,
	KindLong:      4,
	KindULong:     4,
	KindLLong:     8,
	KindULLong:    8,
	KindFloat:     4,
	KindDouble:    8,
	KindBytes:     -1,
	KindString:    -1,
	KindContainer: -1,
	KindArray:     -1,
}

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// EncodedSize returns the exact number of bytes Encode will produce for v.
func EncodedSize(v Value) int {
	n := 4 + len(v.name) + 1
	switch v.kind {
	case KindBytes, KindContainer:
		n += 4 + len(v.buf)
	case KindString:
		n += 4 + len(v.str)
	case KindArray:
		n += 4
		for i := range v.arr {
			n += EncodedSize(v.arr[i])
		}
	default:
		n += payloadSizes[v.kind]
	}
	return n
}

// Encode serializes v to its binary wire form.
func Encode(v Value) []byte {
	return AppendEncode(make([]byte, 0, EncodedSize(v)), v)
}

// AppendEncode appends the binary wire form of v to dst and returns the
// extended slice.
func AppendEncode(dst []byte, v Value) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(v.name)))
	dst = append(dst, v.name...)
	dst = append(dst, byte(v.kind))

	switch v.kind {
	case KindNull:
	case KindBool:
		dst = append(dst, byte(v.num))
	case KindShort, KindUShort:
		dst = binary.LittleEndian.AppendUint16(dst, uint16(v.num))
	case KindInt, KindUInt, KindLong, KindULong, KindFloat:
		dst = binary.LittleEndian.AppendUint32(dst, uint32(v.num))
	case KindLLong, KindULLong, KindDouble:
		dst = binary.LittleEndian.AppendUint64(dst, v.num)
	case KindBytes, KindContainer:
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(v.buf)))
		dst = append(dst, v.buf...)
	case KindString:
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(v.str)))
		dst = append(dst, v.str...)
	case KindArray:
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(v.arr)))
		for i := range v.arr {
			dst = AppendEncode(dst, v.arr[i])
		}
	}
	return dst
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

// Decode deserializes a single value from the start of data. Trailing bytes
// after the value are ignored; use DecodeAll to consume a full stream.
func Decode(data []byte) (Value, error) {
	v, _, err := decodeValue(data, 0)
	return v, err
}

// DecodeAll deserializes a back-to-back sequence of encoded values until
// data is exhausted.
func DecodeAll(data []byte) ([]Value, error) {
	var out []Value
	pos := 0
	for pos < len(data) {
		v, next, err := decodeValue(data, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		pos = next
	}
	return out, nil
}

func decodeErr(msg string) error {
	return result.New(result.CodeDeserializationFailed, moduleTag, msg)
}

// decodeValue decodes one value starting at pos and returns it together with
// the position of the first byte after it. Every length field is validated
// against the remaining input before it is used.
func decodeValue(data []byte, pos int) (Value, int, error) {
	if len(data)-pos < 4 {
		return Value{}, 0, decodeErr("truncated name length")
	}
	nameLen := int(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4

	if nameLen < 0 || len(data)-pos < nameLen {
		return Value{}, 0, decodeErr("name exceeds input")
	}
	name := string(data[pos : pos+nameLen])
	pos += nameLen

	if len(data)-pos < 1 {
		return Value{}, 0, decodeErr("missing kind tag")
	}
	kind := Kind(data[pos])
	pos++
	if !kind.Valid() {
		return Value{}, 0, decodeErr("unknown kind tag " + strconv.Itoa(int(kind)))
	}

	v := Value{name: name, kind: kind}

	switch kind {
	case KindNull:

	case KindBool:
		if len(data)-pos < 1 {
			return Value{}, 0, decodeErr("truncated bool payload")
		}
		if data[pos] != 0 {
			v.num = 1
		}
		pos++

	case KindShort, KindUShort:
		if len(data)-pos < 2 {
			return Value{}, 0, decodeErr("truncated 2-byte payload")
		}
		v.num = uint64(binary.LittleEndian.Uint16(data[pos:]))
		pos += 2

	case KindInt, KindUInt, KindLong, KindULong, KindFloat:
		if len(data)-pos < 4 {
			return Value{}, 0, decodeErr("truncated 4-byte payload")
		}
		v.num = uint64(binary.LittleEndian.Uint32(data[pos:]))
		pos += 4

	case KindLLong, KindULLong, KindDouble:
		if len(data)-pos < 8 {
			return Value{}, 0, decodeErr("truncated 8-byte payload")
		}
		v.num = binary.LittleEndian.Uint64(data[pos:])
		pos += 8

	case KindBytes, KindString, KindContainer:
		if len(data)-pos < 4 {
			return Value{}, 0, decodeErr("truncated payload length")
		}
		n := int(binary.LittleEndian.Uint32(data[pos:]))
		pos += 4
		if n < 0 || len(data)-pos < n {
			return Value{}, 0, decodeErr("payload exceeds input")
		}
		if kind == KindString {
			v.str = string(data[pos : pos+n])
		} else {
			v.buf = make([]byte, n)
			copy(v.buf, data[pos:pos+n])
		}
		pos += n

	case KindArray:
		if len(data)-pos < 4 {
			return Value{}, 0, decodeErr("truncated array count")
		}
		count := int(binary.LittleEndian.Uint32(data[pos:]))
		pos += 4
		if count < 0 || count > len(data)-pos {
			// Each child takes at least one byte of input, so a count larger
			// than the remaining bytes can never be satisfied.
			return Value{}, 0, decodeErr("array count exceeds input")
		}
		elems := make([]Value, 0, count)
		for i := 0; i < count; i++ {
			child, next, err := decodeValue(data, pos)
			if err != nil {
				return Value{}, 0, err
			}
			elems = append(elems, child)
			pos = next
		}
		v.arr = elems
	}

	return v, pos, nil
}
