package container

import (
	"github.com/carton-io/carton/lib/result"
	"github.com/carton-io/carton/lib/value"
)

// moduleTag is the module identifier carried by all errors of this package.
const moduleTag = "container"

// DefaultVersion is the header version stamped on new containers.
const DefaultVersion = "1.0.0.0"

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures a new Container.
type Options struct {
	// Policy is the backing store for the value set. Fixed for the
	// container's lifetime.
	Policy Policy

	// Routing header fields.
	SourceID    string
	SourceSubID string
	TargetID    string
	TargetSubID string
	MessageType string

	// Version is the header version string. Defaults to DefaultVersion.
	Version string
}

// DefaultOptions returns options with the dynamic policy and the default
// version.
func DefaultOptions() Options {
	return Options{
		Policy:  NewDynamic(),
		Version: DefaultVersion,
	}
}

// --------------------------------------------------------------------------
// Container
// --------------------------------------------------------------------------

// Container holds routing header metadata plus a named multiset of values
// backed by a storage policy.
//
// Every fallible operation comes in two behaviorally identical flavors: a
// silent form returning a zero value or false on failure, and a Result form
// returning an explicit *result.Error. Neither form logs.
//
// Thread-safety: a Container is NOT safe for concurrent use. Wrap it with
// the safe subpackage for concurrent access.
type Container struct {
	sourceID    string
	sourceSubID string
	targetID    string
	targetSubID string
	messageType string
	version     string

	policy Policy

	// pending holds the raw value bytes of a header-only decode; the values
	// are materialized into the policy on first access.
	pending []byte
}

// New creates a container from opts. A nil policy falls back to dynamic and
// an empty version to DefaultVersion.
func New(opts Options) *Container {
	if opts.Policy == nil {
		opts.Policy = NewDynamic()
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	return &Container{
		sourceID:    opts.SourceID,
		sourceSubID: opts.SourceSubID,
		targetID:    opts.TargetID,
		targetSubID: opts.TargetSubID,
		messageType: opts.MessageType,
		version:     opts.Version,
		policy:      opts.Policy,
	}
}

// materialize decodes value bytes retained by a header-only decode. Failure
// discards the pending bytes so the error is reported once.
func (c *Container) materialize() error {
	if c.pending == nil {
		return nil
	}
	data := c.pending
	c.pending = nil
	vals, err := value.DecodeAll(data)
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

// --------------------------------------------------------------------------
// Header Accessors
// --------------------------------------------------------------------------

func (c *Container) SourceID() string    { return c.sourceID }
func (c *Container) SourceSubID() string { return c.sourceSubID }
func (c *Container) TargetID() string    { return c.targetID }
func (c *Container) TargetSubID() string { return c.targetSubID }
func (c *Container) MessageType() string { return c.messageType }
func (c *Container) Version() string     { return c.version }

// SetSource sets the source id pair.
func (c *Container) SetSource(id, subID string) *Container {
	c.sourceID, c.sourceSubID = id, subID
	return c
}

// SetTarget sets the target id pair.
func (c *Container) SetTarget(id, subID string) *Container {
	c.targetID, c.targetSubID = id, subID
	return c
}

// SetMessageType sets the message type field.
func (c *Container) SetMessageType(t string) *Container {
	c.messageType = t
	return c
}

// SwapHeader exchanges the source and target id pairs, the usual first step
// when turning a request container into its reply.
func (c *Container) SwapHeader() {
	c.sourceID, c.targetID = c.targetID, c.sourceID
	c.sourceSubID, c.targetSubID = c.targetSubID, c.sourceSubID
}

// --------------------------------------------------------------------------
// Value Operations (silent forms)
// --------------------------------------------------------------------------

// Set inserts or overwrites the entry for the value's name and returns the
// container for chaining. Values with an empty name are ignored.
func (c *Container) Set(v value.Value) *Container {
	_ = c.SetResult(v)
	return c
}

// Get returns the first entry with the given name.
func (c *Container) Get(name string) (value.Value, bool) {
	if name == "" || c.materialize() != nil {
		return value.Value{}, false
	}
	return c.policy.Lookup(name)
}

// Contains reports whether an entry with the given name exists.
func (c *Container) Contains(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Remove deletes every entry sharing the given name and reports whether any
// entry was removed.
func (c *Container) Remove(name string) bool {
	return c.RemoveResult(name) == nil
}

// SetAll appends all values in order, permitting duplicate names, and
// returns the container for chaining. Unlike Set, bulk insertion never
// replaces existing entries. Values that fail (empty name, disallowed kind)
// are skipped; prior values stay committed.
func (c *Container) SetAll(vals []value.Value) *Container {
	_ = c.SetAllResult(vals)
	return c
}

// GetBatch returns the entries found for the given names, in name order,
// skipping names that are absent.
func (c *Container) GetBatch(names []string) []value.Value {
	out := make([]value.Value, 0, len(names))
	for _, name := range names {
		if v, ok := c.Get(name); ok {
			out = append(out, v)
		}
	}
	return out
}

// ContainsBatch reports per-name presence, parallel to names.
func (c *Container) ContainsBatch(names []string) []bool {
	out := make([]bool, len(names))
	for i, name := range names {
		out[i] = c.Contains(name)
	}
	return out
}

// RemoveBatch deletes every entry matching any of the given names and
// returns the number of entries removed. Absent names are skipped.
func (c *Container) RemoveBatch(names []string) int {
	if c.materialize() != nil {
		return 0
	}
	removed := 0
	for _, name := range names {
		removed += c.policy.Delete(name)
	}
	return removed
}

// --------------------------------------------------------------------------
// Value Operations (result forms)
// --------------------------------------------------------------------------

// SetResult inserts or overwrites the entry for the value's name. Fails
// with EmptyKey on a nameless value; the typed policy additionally fails
// with TypeMismatch on a disallowed kind.
func (c *Container) SetResult(v value.Value) error {
	if v.Name() == "" {
		return result.New(result.CodeEmptyKey, moduleTag, "value has no name")
	}
	if err := c.materialize(); err != nil {
		return err
	}
	return c.policy.Put(v)
}

// GetResult returns the first entry with the given name, failing with
// EmptyKey or KeyNotFound.
func (c *Container) GetResult(name string) (value.Value, error) {
	if name == "" {
		return value.Value{}, result.New(result.CodeEmptyKey, moduleTag, "empty name")
	}
	if err := c.materialize(); err != nil {
		return value.Value{}, err
	}
	v, ok := c.policy.Lookup(name)
	if !ok {
		return value.Value{}, result.Newf(result.CodeKeyNotFound, moduleTag,
			"no value named %q", name)
	}
	return v, nil
}

// RemoveResult deletes every entry sharing the given name, failing with
// KeyNotFound when none exists.
func (c *Container) RemoveResult(name string) error {
	if name == "" {
		return result.New(result.CodeEmptyKey, moduleTag, "empty name")
	}
	if err := c.materialize(); err != nil {
		return err
	}
	if c.policy.Delete(name) == 0 {
		return result.Newf(result.CodeKeyNotFound, moduleTag, "no value named %q", name)
	}
	return nil
}

// SetAllResult appends all values in order, permitting duplicate names.
// Insertion is not transactional: the first failure is returned and values
// appended before it stay committed.
func (c *Container) SetAllResult(vals []value.Value) error {
	if err := c.materialize(); err != nil {
		return err
	}
	c.policy.Reserve(c.policy.Len() + len(vals))
	for _, v := range vals {
		if v.Name() == "" {
			return result.New(result.CodeEmptyKey, moduleTag, "value has no name")
		}
		if err := c.policy.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// GetBatchResult returns the entries for the given names in name order,
// failing on the first absent name. Per-name semantics match GetResult.
func (c *Container) GetBatchResult(names []string) ([]value.Value, error) {
	out := make([]value.Value, 0, len(names))
	for _, name := range names {
		v, err := c.GetResult(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// RemoveBatchResult deletes every entry matching the given names, failing
// on the first name with no entry. Removals before the failure stay
// committed.
func (c *Container) RemoveBatchResult(names []string) error {
	for _, name := range names {
		if err := c.RemoveResult(name); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Introspection
// --------------------------------------------------------------------------

// Size returns the number of entries.
func (c *Container) Size() int {
	if c.materialize() != nil {
		return 0
	}
	return c.policy.Len()
}

// Empty reports whether the container holds no entries.
func (c *Container) Empty() bool { return c.Size() == 0 }

// Clear removes all entries. Header fields are untouched.
func (c *Container) Clear() {
	c.pending = nil
	c.policy.Clear()
}

// Reserve hints the expected entry count to the backing policy.
func (c *Container) Reserve(n int) {
	c.policy.Reserve(n)
}

// PolicyKind returns the strategy backing this container.
func (c *Container) PolicyKind() PolicyKind { return c.policy.Kind() }

// Range calls fn for every entry in the policy's native order until fn
// returns false.
func (c *Container) Range(fn func(v value.Value) bool) {
	if c.materialize() != nil {
		return
	}
	c.policy.Each(fn)
}

// Values returns all entries in the policy's native order.
func (c *Container) Values() []value.Value {
	out := make([]value.Value, 0, c.Size())
	c.Range(func(v value.Value) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Copy returns a deep copy of the container: header, policy and every
// value. The copy shares no mutable state with the original.
func (c *Container) Copy() *Container {
	cp := *c
	if c.pending != nil {
		cp.pending = make([]byte, len(c.pending))
		copy(cp.pending, c.pending)
	}
	cp.policy = c.policy.Clone()
	return &cp
}

// Stats summarizes a container's entry population.
type Stats struct {
	Values       int
	PayloadBytes int
	PerKind      map[value.Kind]int
}

// CollectStats walks the entries once and reports counts per kind plus the
// total encoded payload footprint.
func (c *Container) CollectStats() Stats {
	st := Stats{PerKind: make(map[value.Kind]int)}
	c.Range(func(v value.Value) bool {
		st.Values++
		st.PayloadBytes += value.EncodedSize(v)
		st.PerKind[v.Kind()]++
		return true
	})
	return st
}
