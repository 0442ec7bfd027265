package safe

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/carton-io/carton/lib/container"
	"github.com/carton-io/carton/lib/value"
)

// Concurrent wraps a container with a reader-biased lock. Readers take a
// per-goroutine token instead of hitting a shared counter, so heavily
// parallel reads scale much better than under sync.RWMutex; writers pay
// extra to drain all reader slots.
//
// Thread-safety: identical guarantees to Locked.
type Concurrent struct {
	mu    *xsync.RBMutex
	inner *container.Container
}

// NewConcurrent creates a reader-biased wrapper around a fresh container
// built from opts.
func NewConcurrent(opts container.Options) *Concurrent {
	return &Concurrent{mu: xsync.NewRBMutex(), inner: container.New(opts)}
}

// WrapConcurrent takes exclusive ownership of an existing container. The
// caller must not touch c afterwards.
func WrapConcurrent(c *container.Container) *Concurrent {
	c.Size() // decode deferred value bytes while still exclusive
	return &Concurrent{mu: xsync.NewRBMutex(), inner: c}
}

// read runs fn under the reader lock.
func (s *Concurrent) read(fn func()) {
	t := s.mu.RLock()
	defer s.mu.RUnlock(t)
	fn()
}

// write runs fn under the exclusive lock.
func (s *Concurrent) write(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// ----------------------------------------------------------------------
// Header
// ----------------------------------------------------------------------

func (s *Concurrent) SourceID() (v string) {
	s.read(func() { v = s.inner.SourceID() })
	return
}

func (s *Concurrent) SourceSubID() (v string) {
	s.read(func() { v = s.inner.SourceSubID() })
	return
}

func (s *Concurrent) TargetID() (v string) {
	s.read(func() { v = s.inner.TargetID() })
	return
}

func (s *Concurrent) TargetSubID() (v string) {
	s.read(func() { v = s.inner.TargetSubID() })
	return
}

func (s *Concurrent) MessageType() (v string) {
	s.read(func() { v = s.inner.MessageType() })
	return
}

func (s *Concurrent) Version() (v string) {
	s.read(func() { v = s.inner.Version() })
	return
}

func (s *Concurrent) SetSource(id, subID string) {
	s.write(func() { s.inner.SetSource(id, subID) })
}

func (s *Concurrent) SetTarget(id, subID string) {
	s.write(func() { s.inner.SetTarget(id, subID) })
}

func (s *Concurrent) SetMessageType(t string) {
	s.write(func() { s.inner.SetMessageType(t) })
}

func (s *Concurrent) SwapHeader() {
	s.write(func() { s.inner.SwapHeader() })
}

// ----------------------------------------------------------------------
// Values
// ----------------------------------------------------------------------

func (s *Concurrent) SetResult(v value.Value) (err error) {
	s.write(func() { err = s.inner.SetResult(v) })
	return
}

func (s *Concurrent) Get(name string) (v value.Value, ok bool) {
	s.read(func() { v, ok = s.inner.Get(name) })
	return
}

func (s *Concurrent) GetResult(name string) (v value.Value, err error) {
	s.read(func() { v, err = s.inner.GetResult(name) })
	return
}

func (s *Concurrent) Contains(name string) (ok bool) {
	s.read(func() { ok = s.inner.Contains(name) })
	return
}

func (s *Concurrent) Remove(name string) (ok bool) {
	s.write(func() { ok = s.inner.Remove(name) })
	return
}

func (s *Concurrent) RemoveResult(name string) (err error) {
	s.write(func() { err = s.inner.RemoveResult(name) })
	return
}

func (s *Concurrent) SetAllResult(vals []value.Value) (err error) {
	s.write(func() { err = s.inner.SetAllResult(vals) })
	return
}

func (s *Concurrent) GetBatch(names []string) (out []value.Value) {
	s.read(func() { out = s.inner.GetBatch(names) })
	return
}

func (s *Concurrent) ContainsBatch(names []string) (out []bool) {
	s.read(func() { out = s.inner.ContainsBatch(names) })
	return
}

func (s *Concurrent) RemoveBatch(names []string) (n int) {
	s.write(func() { n = s.inner.RemoveBatch(names) })
	return
}

func (s *Concurrent) GetBatchResult(names []string) (out []value.Value, err error) {
	s.read(func() { out, err = s.inner.GetBatchResult(names) })
	return
}

func (s *Concurrent) RemoveBatchResult(names []string) (err error) {
	s.write(func() { err = s.inner.RemoveBatchResult(names) })
	return
}

// ----------------------------------------------------------------------
// Introspection and Serialization
// ----------------------------------------------------------------------

func (s *Concurrent) Size() (n int) {
	s.read(func() { n = s.inner.Size() })
	return
}

func (s *Concurrent) Empty() (e bool) {
	s.read(func() { e = s.inner.Empty() })
	return
}

func (s *Concurrent) Clear() {
	s.write(func() { s.inner.Clear() })
}

func (s *Concurrent) Values() (out []value.Value) {
	s.read(func() { out = s.inner.Values() })
	return
}

func (s *Concurrent) CollectStats() (st container.Stats) {
	s.read(func() { st = s.inner.CollectStats() })
	return
}

func (s *Concurrent) Serialize() (out []byte) {
	s.read(func() { out = s.inner.Serialize() })
	return
}

func (s *Concurrent) SerializeResult() (out []byte, err error) {
	s.read(func() { out, err = s.inner.SerializeResult() })
	return
}

func (s *Concurrent) SerializeArray() (out []byte) {
	s.read(func() { out = s.inner.SerializeArray() })
	return
}

func (s *Concurrent) SerializeArrayResult() (out []byte, err error) {
	s.read(func() { out, err = s.inner.SerializeArrayResult() })
	return
}

func (s *Concurrent) Load(data []byte) bool {
	return s.LoadResult(data) == nil
}

func (s *Concurrent) LoadResult(data []byte) (err error) {
	s.write(func() { err = s.inner.LoadResult(data, false) })
	return
}

func (s *Concurrent) Snapshot() (cp *container.Container) {
	s.read(func() { cp = s.inner.Copy() })
	return
}
