// Package safe layers concurrency control over a container. Two wrappers
// share one contract:
//
//   - Locked guards the container with a sync.RWMutex. The default choice.
//   - Concurrent uses a reader-biased lock (xsync.RBMutex) instead, trading
//     slower writes for near-uncontended reads. For read-mostly workloads
//     with many reader goroutines.
//
// A wrapper exclusively owns its container: the container must not be
// touched directly after wrapping. Readers never block each other; a writer
// excludes everyone for the duration of its mutation. The wrappers never
// change the container's observable sequential semantics, with one
// exception: loads decode values eagerly, since lazy materialization would
// mutate state on the read path.
package safe

import (
	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/value"
)

// Container is the concurrency-safe container contract shared by Locked
// and Concurrent.
type Container interface {
	SourceID() string
	SourceSubID() string
	TargetID() string
	TargetSubID() string
	MessageType() string
	Version() string
	SetSource(id, subID string)
	SetTarget(id, subID string)
	SetMessageType(t string)
	SwapHeader()

	SetResult(v value.Value) error
	Get(name string) (value.Value, bool)
	GetResult(name string) (value.Value, error)
	Contains(name string) bool
	Remove(name string) bool
	RemoveResult(name string) error
	SetAllResult(vals []value.Value) error
	GetBatch(names []string) []value.Value
	ContainsBatch(names []string) []bool
	RemoveBatch(names []string) int
	GetBatchResult(names []string) ([]value.Value, error)
	RemoveBatchResult(names []string) error

	Size() int
	Empty() bool
	Clear()
	Values() []value.Value
	CollectStats() container.Stats

	Serialize() []byte
	SerializeResult() ([]byte, error)
	SerializeArray() []byte
	SerializeArrayResult() ([]byte, error)
	Load(data []byte) bool
	LoadResult(data []byte) error

	// Snapshot returns a deep copy of the current state for lock-free
	// inspection.
	Snapshot() *container.Container
}

var (
	_ Container = (*Locked)(nil)
	_ Container = (*Concurrent)(nil)
)
