// Package messaging adapts containers for message-bus transport: a builder
// that assembles a container without exposing storage internals, a framed
// wire form for bus payloads, and callback hooks for external systems to
// observe container creation and serialization.
package messaging

import (
	"encoding/binary"
	"sync"

	"github.com/rs/zerolog"

	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/logging"
	"github.com/carton-io/carton/lib/metrics"
	"github.com/carton-io/carton/lib/result"
)

// moduleTag is the module identifier carried by all errors of this package.
const moduleTag = "messaging"

// Transport frame: [magic "CRTN"][payload_len:u32 LE][payload], where the
// payload is the container's text-envelope form. The length makes frames
// self-delimiting on stream transports; the magic rejects foreign data
// before any parsing happens.
var frameMagic = [4]byte{'C', 'R', 'T', 'N'}

const frameHeaderSize = 8

// IsFramed reports whether data starts with the transport frame magic.
func IsFramed(data []byte) bool {
	return len(data) >= len(frameMagic) && [4]byte(data[:4]) == frameMagic
}

// Callback observes a container at a hook point. Callbacks run
// synchronously on the calling goroutine and must not retain the container
// past the call.
type Callback func(c *container.Container)

// Hub carries the callback registrations and counters for one messaging
// domain. The zero value is not usable; create hubs with NewHub.
//
// Thread-safety: all methods may be called concurrently.
type Hub struct {
	mu            sync.RWMutex
	creation      []Callback
	serialization []Callback

	reg *metrics.Registry
	log zerolog.Logger
}

// NewHub creates a hub counting into reg; nil means the process default.
func NewHub(reg *metrics.Registry) *Hub {
	if reg == nil {
		reg = metrics.Default()
	}
	return &Hub{reg: reg, log: logging.Component(moduleTag)}
}

// OnCreation registers a callback fired after every successful Build.
func (h *Hub) OnCreation(cb Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.creation = append(h.creation, cb)
}

// OnSerialization registers a callback fired before every framing.
func (h *Hub) OnSerialization(cb Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.serialization = append(h.serialization, cb)
}

// ClearCallbacks drops all registrations.
func (h *Hub) ClearCallbacks() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.creation = nil
	h.serialization = nil
}

func (h *Hub) fire(hooks *[]Callback, c *container.Container) {
	h.mu.RLock()
	cbs := make([]Callback, len(*hooks))
	copy(cbs, *hooks)
	h.mu.RUnlock()
	for _, cb := range cbs {
		cb(c)
	}
}

// SerializeForMessaging renders the transport frame for c.
func (h *Hub) SerializeForMessaging(c *container.Container) ([]byte, error) {
	h.fire(&h.serialization, c)

	payload, err := c.SerializeResult()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, frameHeaderSize+len(payload))
	out = append(out, frameMagic[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)

	h.reg.MessagesFramed.Inc()
	h.log.Debug().
		Str("message_type", c.MessageType()).
		Int("frame_bytes", len(out)).
		Msg("framed container for messaging")
	return out, nil
}

// DeserializeFromMessaging parses a transport frame back into a container
// stored per opts. Trailing bytes after the framed payload are rejected.
func (h *Hub) DeserializeFromMessaging(data []byte, opts container.Options) (*container.Container, error) {
	if len(data) < frameHeaderSize {
		return nil, result.New(result.CodeDeserializationFailed, moduleTag,
			"frame shorter than header")
	}
	if [4]byte(data[:4]) != frameMagic {
		return nil, result.New(result.CodeInvalidFormat, moduleTag,
			"bad frame magic")
	}
	n := int(binary.LittleEndian.Uint32(data[4:]))
	if len(data)-frameHeaderSize != n {
		return nil, result.Newf(result.CodeDeserializationFailed, moduleTag,
			"frame length %d does not match payload %d", n, len(data)-frameHeaderSize)
	}
	return container.Decode(data[frameHeaderSize:], opts)
}

// ----------------------------------------------------------------------
// Default hub
// ----------------------------------------------------------------------

var defaultHub = NewHub(nil)

// DefaultHub returns the process-wide hub used by the package-level
// functions and by builders created without an explicit hub.
func DefaultHub() *Hub { return defaultHub }

// SerializeForMessaging frames using the default hub.
func SerializeForMessaging(c *container.Container) ([]byte, error) {
	return defaultHub.SerializeForMessaging(c)
}

// DeserializeFromMessaging parses using the default hub.
func DeserializeFromMessaging(data []byte, opts container.Options) (*container.Container, error) {
	return defaultHub.DeserializeFromMessaging(data, opts)
}
