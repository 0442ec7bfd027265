// Package metrics holds the process-wide operation counters for the value
// container system: codec activity, bridge conversions and messaging
// traffic. Counters live in an injectable Registry so tests can count in
// isolation and reset between cases; the package-level Default registry is
// what the library mutates unless told otherwise.
package metrics

import (
	"io"

	vm "github.com/VictoriaMetrics/metrics"
)

// Registry bundles the counter set. All counters are atomic; reads and
// writes never block each other.
type Registry struct {
	set *vm.Set

	// Codec activity.
	Serializations      *vm.Counter
	Deserializations    *vm.Counter
	DeserializeFailures *vm.Counter

	// Bridge conversions.
	ToModern          *vm.Counter
	ToLegacy          *vm.Counter
	RoundTripFailures *vm.Counter

	// Messaging traffic.
	MessagesBuilt  *vm.Counter
	MessagesFramed *vm.Counter
}

// New creates an independent registry with all counters at zero.
func New() *Registry {
	s := vm.NewSet()
	return &Registry{
		set:                 s,
		Serializations:      s.NewCounter("carton_serializations_total"),
		Deserializations:    s.NewCounter("carton_deserializations_total"),
		DeserializeFailures: s.NewCounter("carton_deserialize_failures_total"),
		ToModern:            s.NewCounter("carton_bridge_to_modern_total"),
		ToLegacy:            s.NewCounter("carton_bridge_to_legacy_total"),
		RoundTripFailures:   s.NewCounter("carton_bridge_round_trip_failures_total"),
		MessagesBuilt:       s.NewCounter("carton_messages_built_total"),
		MessagesFramed:      s.NewCounter("carton_messages_framed_total"),
	}
}

// Reset zeroes every counter in place.
func (r *Registry) Reset() {
	for _, c := range r.counters() {
		c.Set(0)
	}
}

// WritePrometheus renders the registry in Prometheus text exposition
// format.
func (r *Registry) WritePrometheus(w io.Writer) {
	r.set.WritePrometheus(w)
}

func (r *Registry) counters() []*vm.Counter {
	return []*vm.Counter{
		r.Serializations, r.Deserializations, r.DeserializeFailures,
		r.ToModern, r.ToLegacy, r.RoundTripFailures,
		r.MessagesBuilt, r.MessagesFramed,
	}
}

var defaultRegistry = New()

// Default returns the registry the library mutates by default.
func Default() *Registry { return defaultRegistry }
