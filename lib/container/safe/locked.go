package safe

import (
	"sync"

	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/value"
)

// Locked wraps a container with a sync.RWMutex.
//
// Thread-safety: all methods may be called from any goroutine. Writes are
// linearizable with respect to each other; reads observe a consistent prior
// state, never a partially applied write.
type Locked struct {
	mu    sync.RWMutex
	inner *container.Container
}

// NewLocked creates a locked wrapper around a fresh container built from
// opts.
func NewLocked(opts container.Options) *Locked {
	return &Locked{inner: container.New(opts)}
}

// WrapLocked takes exclusive ownership of an existing container. The caller
// must not touch c afterwards.
func WrapLocked(c *container.Container) *Locked {
	// Decode any deferred value bytes now, while ownership is still
	// exclusive, so the read path never mutates.
	c.Size()
	return &Locked{inner: c}
}

// ----------------------------------------------------------------------
// Header
// ----------------------------------------------------------------------

func (s *Locked) SourceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.SourceID()
}

func (s *Locked) SourceSubID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.SourceSubID()
}

func (s *Locked) TargetID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.TargetID()
}

func (s *Locked) TargetSubID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.TargetSubID()
}

func (s *Locked) MessageType() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.MessageType()
}

func (s *Locked) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Version()
}

func (s *Locked) SetSource(id, subID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.SetSource(id, subID)
}

func (s *Locked) SetTarget(id, subID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.SetTarget(id, subID)
}

func (s *Locked) SetMessageType(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.SetMessageType(t)
}

// SwapHeader exchanges source and target atomically from the caller's view:
// no concurrent reader can observe a half-swapped header.
func (s *Locked) SwapHeader() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.SwapHeader()
}

// ----------------------------------------------------------------------
// Values
// ----------------------------------------------------------------------

func (s *Locked) SetResult(v value.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.SetResult(v)
}

func (s *Locked) Get(name string) (value.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Get(name)
}

func (s *Locked) GetResult(name string) (value.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.GetResult(name)
}

func (s *Locked) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Contains(name)
}

func (s *Locked) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Remove(name)
}

func (s *Locked) RemoveResult(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.RemoveResult(name)
}

func (s *Locked) SetAllResult(vals []value.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.SetAllResult(vals)
}

func (s *Locked) GetBatch(names []string) []value.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.GetBatch(names)
}

func (s *Locked) ContainsBatch(names []string) []bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.ContainsBatch(names)
}

func (s *Locked) RemoveBatch(names []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.RemoveBatch(names)
}

func (s *Locked) GetBatchResult(names []string) ([]value.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.GetBatchResult(names)
}

func (s *Locked) RemoveBatchResult(names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.RemoveBatchResult(names)
}

// ----------------------------------------------------------------------
// Introspection and Serialization
// ----------------------------------------------------------------------

func (s *Locked) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Size()
}

func (s *Locked) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Empty()
}

func (s *Locked) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Clear()
}

func (s *Locked) Values() []value.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Values()
}

func (s *Locked) CollectStats() container.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.CollectStats()
}

func (s *Locked) Serialize() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Serialize()
}

func (s *Locked) SerializeResult() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.SerializeResult()
}

func (s *Locked) SerializeArray() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.SerializeArray()
}

func (s *Locked) SerializeArrayResult() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.SerializeArrayResult()
}

func (s *Locked) Load(data []byte) bool {
	return s.LoadResult(data) == nil
}

func (s *Locked) LoadResult(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.LoadResult(data, false)
}

func (s *Locked) Snapshot() *container.Container {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Copy()
}
