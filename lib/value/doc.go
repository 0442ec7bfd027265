// Package value implements the typed value model and its binary wire codec.
//
// A Value is a named, immutable tagged union over sixteen kinds: null, bool,
// eight integer widths, two float widths, bytes, string, nested container
// and heterogeneous array. Construction fixes the kind; payloads are copied
// on the way in and out so values can be shared freely across goroutines.
//
// # Wire Format
//
// Each value serializes to a self-delimiting little-endian record:
//
//	[name_len:u32][name_bytes][kind:u8][payload]
//
// Numeric payloads are fixed-width (the long family travels as 4 bytes, its
// constructors enforce the 32-bit range), byte-like payloads carry a u32
// length prefix and arrays carry a u32 child count followed by each child
// encoded recursively. Encode/Decode round-trip every well-formed value
// bit-exactly, and Decode validates every length field against the remaining
// input before trusting it.
//
// # Usage
//
//	v := value.NewInt("retries", 5)
//	wire := value.Encode(v)
//	back, err := value.Decode(wire)
package value
