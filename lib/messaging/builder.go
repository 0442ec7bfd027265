package messaging

import (
	"github.com/segmentio/ksuid"

	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/value"
)

// Builder assembles a messaging container step by step without exposing the
// storage policy underneath. A zero sub-id on either side is stamped with a
// fresh instance id at Build time, so every endpoint gets a distinguishable
// identity even when the caller only supplies the main ids.
//
// Builders are single-use and not safe for concurrent use.
type Builder struct {
	hub  *Hub
	opts container.Options
	vals []value.Value
}

// NewBuilder creates a builder reporting to the default hub.
func NewBuilder() *Builder {
	return NewBuilderWithHub(defaultHub)
}

// NewBuilderWithHub creates a builder firing creation callbacks and
// counters on the given hub.
func NewBuilderWithHub(h *Hub) *Builder {
	opts := container.DefaultOptions()
	opts.MessageType = "data_container"
	return &Builder{hub: h, opts: opts}
}

// Source sets the source id pair.
func (b *Builder) Source(id, subID string) *Builder {
	b.opts.SourceID, b.opts.SourceSubID = id, subID
	return b
}

// Target sets the target id pair.
func (b *Builder) Target(id, subID string) *Builder {
	b.opts.TargetID, b.opts.TargetSubID = id, subID
	return b
}

// MessageType overrides the default "data_container" type.
func (b *Builder) MessageType(t string) *Builder {
	b.opts.MessageType = t
	return b
}

// Policy selects the storage policy for the built container.
func (b *Builder) Policy(p container.Policy) *Builder {
	b.opts.Policy = p
	return b
}

// Set queues a value for the built container. Later values with the same
// name overwrite earlier ones, matching the container's singular set.
func (b *Builder) Set(v value.Value) *Builder {
	b.vals = append(b.vals, v)
	return b
}

// Build assembles the container, stamps missing sub-ids, fires the hub's
// creation callbacks and returns the result. The first failing value aborts
// the build.
func (b *Builder) Build() (*container.Container, error) {
	if b.opts.SourceID != "" && b.opts.SourceSubID == "" {
		b.opts.SourceSubID = ksuid.New().String()
	}
	if b.opts.TargetID != "" && b.opts.TargetSubID == "" {
		b.opts.TargetSubID = ksuid.New().String()
	}

	c := container.New(b.opts)
	for _, v := range b.vals {
		if err := c.SetResult(v); err != nil {
			return nil, err
		}
	}

	b.hub.reg.MessagesBuilt.Inc()
	b.hub.fire(&b.hub.creation, c)
	b.hub.log.Debug().
		Str("message_type", c.MessageType()).
		Int("values", c.Size()).
		Msg("built messaging container")
	return c, nil
}
