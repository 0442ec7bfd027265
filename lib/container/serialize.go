package container

import (
	"bytes"
	"strings"

	"github.com/carton-io/carton/lib/metrics"
	"github.com/carton-io/carton/lib/result"
	"github.com/carton-io/carton/lib/value"
)

// Whole-container wire form. The text envelope wraps the binary value
// stream in a human-inspectable shell:
//
//	@header={[1,target];[2,target_sub];[3,source];[4,source_sub];[5,type];[6,version];};@data=[<binary values>];
//
// The numeric field tags and their target-first order are fixed. The array
// form drops the envelope entirely and is just the concatenated binary
// values. Decoding auto-detects the form by the leading marker.
//
// Header fields are free text except that they must not contain the "];"
// field terminator or the "};" section terminator.

const (
	headerMarker = "@header={"
	dataMarker   = "@data=["
	closeMarker  = "];"
)

// header field tags, part of the envelope format.
const (
	tagTargetID    = '1'
	tagTargetSubID = '2'
	tagSourceID    = '3'
	tagSourceSubID = '4'
	tagMessageType = '5'
	tagVersion     = '6'
)

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// Serialize renders the text-envelope form. Nil on failure.
func (c *Container) Serialize() []byte {
	out, err := c.SerializeResult()
	if err != nil {
		return nil
	}
	return out
}

// SerializeResult renders the text-envelope form: the header fields wrapped
// in @header, then every value binary-encoded inside @data.
func (c *Container) SerializeResult() ([]byte, error) {
	body, err := c.SerializeArrayResult()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(headerMarker) + len(dataMarker) + len(body) + 64)
	buf.WriteString(headerMarker)
	writeHeaderField(&buf, tagTargetID, c.targetID)
	writeHeaderField(&buf, tagTargetSubID, c.targetSubID)
	writeHeaderField(&buf, tagSourceID, c.sourceID)
	writeHeaderField(&buf, tagSourceSubID, c.sourceSubID)
	writeHeaderField(&buf, tagMessageType, c.messageType)
	writeHeaderField(&buf, tagVersion, c.version)
	buf.WriteString("};")
	buf.WriteString(dataMarker)
	buf.Write(body)
	buf.WriteString(closeMarker)
	return buf.Bytes(), nil
}

// SerializeArray renders the pure binary array form. Nil on failure.
func (c *Container) SerializeArray() []byte {
	out, err := c.SerializeArrayResult()
	if err != nil {
		return nil
	}
	return out
}

// SerializeArrayResult renders the values as a plain concatenation of their
// binary encodings, with no envelope and no header fields.
func (c *Container) SerializeArrayResult() ([]byte, error) {
	if err := c.materialize(); err != nil {
		return nil, err
	}
	size := 0
	c.policy.Each(func(v value.Value) bool {
		size += value.EncodedSize(v)
		return true
	})
	out := make([]byte, 0, size)
	c.policy.Each(func(v value.Value) bool {
		out = value.AppendEncode(out, v)
		return true
	})
	metrics.Default().Serializations.Inc()
	return out, nil
}

func writeHeaderField(buf *bytes.Buffer, tag byte, val string) {
	buf.WriteByte('[')
	buf.WriteByte(tag)
	buf.WriteByte(',')
	buf.WriteString(val)
	buf.WriteString(closeMarker)
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

// Decode constructs a container from either wire form, storing the values
// in the policy given by opts. Header fields in the input override those in
// opts; the array form has no header, so opts supplies it entirely.
func Decode(data []byte, opts Options) (*Container, error) {
	c := New(opts)
	if err := c.LoadResult(data, false); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeHeader constructs a container from the text-envelope form parsing
// only the header; value decoding is deferred until the value set is first
// touched. The fast path for routing inspection.
func DecodeHeader(data []byte, opts Options) (*Container, error) {
	c := New(opts)
	if err := c.LoadResult(data, true); err != nil {
		return nil, err
	}
	return c, nil
}

// Load replaces the container's state from either wire form. False on
// failure, in which case the container's prior values are already gone.
func (c *Container) Load(data []byte, headerOnly bool) bool {
	return c.LoadResult(data, headerOnly) == nil
}

// LoadResult replaces the container's state from either wire form,
// auto-detected by the leading marker. With headerOnly set, value bytes are
// retained undecoded and materialized lazily.
//
// Clearing happens before parsing, so a failed load leaves an empty value
// set, never a partial one mixed with prior entries.
func (c *Container) LoadResult(data []byte, headerOnly bool) error {
	c.Clear()

	err := c.load(data, headerOnly)
	if err != nil {
		c.Clear()
		metrics.Default().DeserializeFailures.Inc()
		return err
	}
	metrics.Default().Deserializations.Inc()
	return nil
}

func (c *Container) load(data []byte, headerOnly bool) error {
	body := data
	if bytes.HasPrefix(data, []byte(headerMarker)) {
		rest, err := c.parseHeader(data)
		if err != nil {
			return err
		}
		body = rest
	}

	if bytes.HasPrefix(body, []byte(dataMarker)) {
		if !bytes.HasSuffix(body, []byte(closeMarker)) {
			return result.New(result.CodeDeserializationFailed, moduleTag,
				"data section not terminated")
		}
		body = body[len(dataMarker) : len(body)-len(closeMarker)]
	}
	// Anything else is treated as the bare binary array form.

	if headerOnly {
		c.pending = append([]byte(nil), body...)
		return nil
	}

	vals, err := value.DecodeAll(body)
	if err != nil {
		return err
	}
	for _, v := range vals {
		if err := c.policy.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// parseHeader consumes the @header section and returns the remainder of
// the input, which starts at the @data marker.
func (c *Container) parseHeader(data []byte) ([]byte, error) {
	badHeader := func(msg string) error {
		return result.New(result.CodeDeserializationFailed, moduleTag, msg)
	}

	end := bytes.Index(data, []byte("};"))
	if end < 0 {
		return nil, badHeader("header section not terminated")
	}
	inside := string(data[len(headerMarker):end])

	for len(inside) > 0 {
		if inside[0] != '[' {
			return nil, badHeader("malformed header field")
		}
		term := strings.Index(inside, closeMarker)
		if term < 0 {
			return nil, badHeader("header field not terminated")
		}
		field := inside[1:term]
		inside = inside[term+len(closeMarker):]

		comma := strings.IndexByte(field, ',')
		if comma != 1 {
			return nil, badHeader("malformed header field tag")
		}
		val := field[comma+1:]
		switch field[0] {
		case tagTargetID:
			c.targetID = val
		case tagTargetSubID:
			c.targetSubID = val
		case tagSourceID:
			c.sourceID = val
		case tagSourceSubID:
			c.sourceSubID = val
		case tagMessageType:
			c.messageType = val
		case tagVersion:
			c.version = val
		default:
			// Unknown tags are skipped so the envelope can grow fields.
		}
	}

	return data[end+2:], nil
}
