package container

import (
	"github.com/carton-io/carton/lib/value"
)

// --------------------------------------------------------------------------
// Storage Policy Contract
// --------------------------------------------------------------------------

// PolicyKind identifies a storage strategy.
type PolicyKind uint8

const (
	// PolicyDynamic stores values in an insertion-ordered sequence with
	// linear-scan lookup. Best for small containers and ordered iteration.
	PolicyDynamic PolicyKind = iota

	// PolicyIndexed keeps the insertion-ordered sequence but maintains a
	// name index for O(1) average lookup. Best for large containers with
	// frequent point lookups.
	PolicyIndexed

	// PolicyTyped restricts entries to a fixed list of allowed kinds,
	// validated at insertion, and iterates grouped by the declared kind
	// order. Best for schema-like containers.
	PolicyTyped
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyDynamic:
		return "dynamic"
	case PolicyIndexed:
		return "indexed"
	case PolicyTyped:
		return "typed"
	default:
		return "unknown"
	}
}

// Policy is the pluggable backing store for a Container's value set. A
// policy is fixed at container construction; moving a value set to another
// policy means building a fresh container and re-inserting.
//
// Policies are not safe for concurrent use; the thread-safe wrappers in the
// safe subpackage add that layer.
type Policy interface {
	// Kind identifies the strategy.
	Kind() PolicyKind

	// Append adds an entry without touching existing entries of the same
	// name, so repeated appends can create duplicates. The typed policy
	// rejects disallowed kinds.
	Append(v value.Value) error

	// Put replaces every entry sharing the value's name with this single
	// entry, inserting if none exists. The first occurrence keeps its
	// position in the iteration order.
	Put(v value.Value) error

	// Lookup returns the first entry with the given name in iteration
	// order.
	Lookup(name string) (value.Value, bool)

	// Delete removes every entry with the given name and returns how many
	// were removed.
	Delete(name string) int

	// Clear removes all entries.
	Clear()

	// Len returns the entry count.
	Len() int

	// Reserve hints the expected entry count so the policy can size its
	// backing storage up front.
	Reserve(n int)

	// Each calls fn for every entry in the policy's native order until fn
	// returns false.
	Each(fn func(v value.Value) bool)

	// Clone returns a deep, independent copy of the policy and its entries.
	Clone() Policy
}
