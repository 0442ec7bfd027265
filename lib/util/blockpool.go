package util

import (
	"sync/atomic"
)

// ----------------------------------------------------------------------------
// BlockPool
// ----------------------------------------------------------------------------

// BlockPool hands out fixed-size scratch buffers from a bounded freelist.
// Requests larger than the block size fall through to plain allocation and
// count as misses; returned foreign or oversized buffers are dropped. Codec
// hot paths use it to avoid re-allocating encode buffers per value.
//
// Thread-safety: safe for concurrent use.
type BlockPool struct {
	blockSize int
	free      chan []byte

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewBlockPool creates a pool of capacity blocks of blockSize bytes each.
// Blocks are allocated lazily on first Get.
func NewBlockPool(blockSize, capacity int) *BlockPool {
	if blockSize < 1 {
		blockSize = 1
	}
	if capacity < 1 {
		capacity = 1
	}
	return &BlockPool{
		blockSize: blockSize,
		free:      make(chan []byte, capacity),
	}
}

// BlockSize returns the fixed block size.
func (p *BlockPool) BlockSize() int { return p.blockSize }

// Get returns a zero-length buffer with at least size bytes of capacity.
// Pool blocks serve requests up to the block size; anything larger is
// freshly allocated and never recycled.
func (p *BlockPool) Get(size int) []byte {
	if size > p.blockSize {
		p.misses.Add(1)
		return make([]byte, 0, size)
	}
	select {
	case b := <-p.free:
		p.hits.Add(1)
		return b[:0]
	default:
		p.misses.Add(1)
		return make([]byte, 0, p.blockSize)
	}
}

// Put returns a buffer obtained from Get. Buffers whose capacity does not
// match the block size are dropped; a full freelist drops too.
func (p *BlockPool) Put(b []byte) {
	if cap(b) != p.blockSize {
		return
	}
	select {
	case p.free <- b[:0]:
	default:
	}
}

// PoolStats is a point-in-time snapshot of pool effectiveness.
type PoolStats struct {
	Hits      uint64
	Misses    uint64
	FreeCount int
}

// Stats returns the current hit/miss counts and freelist population.
func (p *BlockPool) Stats() PoolStats {
	return PoolStats{
		Hits:      p.hits.Load(),
		Misses:    p.misses.Load(),
		FreeCount: len(p.free),
	}
}

// HitRate returns hits over total requests, 0 without traffic.
func (p *BlockPool) HitRate() float64 {
	h, m := p.hits.Load(), p.misses.Load()
	if h+m == 0 {
		return 0
	}
	return float64(h) / float64(h+m)
}
