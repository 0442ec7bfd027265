// Package util provides supporting tools for the value container system: a
// payload size histogram for cheap distribution reporting and a fixed-block
// scratch buffer pool for codec hot paths.
package util

import (
	"math"
	"sync"
)

// ----------------------------------------------------------------------------
// PayloadHistogram
// ----------------------------------------------------------------------------

// PayloadHistogram tracks the distribution of encoded payload sizes across
// exponential buckets, so a container population can be characterized
// without retaining every sample. Calibrated for typical value payloads:
// sub-16-byte scalars up to megabyte-scale blobs.
type PayloadHistogram struct {
	mutex      sync.RWMutex
	boundaries []int
	buckets    []int64
	count      int64
	sum        int64
}

// NewPayloadHistogram creates a histogram with the default bucket
// boundaries, 16 bytes through 64 MB.
func NewPayloadHistogram() *PayloadHistogram {
	boundaries := []int{
		16, 64, 256, 1024, // scalar values and short strings
		4096, 16384, 65536, // small blobs
		262144, 1048576, // large strings and byte payloads
		4194304, 16777216, 67108864, // megabyte-scale payloads
	}
	return &PayloadHistogram{
		boundaries: boundaries,
		buckets:    make([]int64, len(boundaries)+1),
	}
}

// Observe records one payload size.
//
// Thread-safety: safe for concurrent use.
func (h *PayloadHistogram) Observe(size int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	idx := len(h.boundaries)
	for i, boundary := range h.boundaries {
		if size <= boundary {
			idx = i
			break
		}
	}
	h.buckets[idx]++
	h.count++
	h.sum += int64(size)
}

// Count returns the number of recorded samples.
func (h *PayloadHistogram) Count() int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.count
}

// Mean returns the average payload size, 0 without samples.
func (h *PayloadHistogram) Mean() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if h.count == 0 {
		return 0
	}
	return int(h.sum / h.count)
}

// Percentile estimates the given percentile (0-100) from the bucket
// midpoints. Estimates in the overflow bucket report twice the last
// boundary.
func (h *PayloadHistogram) Percentile(p int) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 || p < 0 || p > 100 {
		return 0
	}

	target := int64(math.Ceil(float64(h.count) * float64(p) / 100.0))
	cumulative := int64(0)
	for i, n := range h.buckets {
		cumulative += n
		if cumulative < target {
			continue
		}
		switch {
		case i == 0:
			return h.boundaries[0] / 2
		case i < len(h.boundaries):
			return (h.boundaries[i-1] + h.boundaries[i]) / 2
		default:
			return h.boundaries[len(h.boundaries)-1] * 2
		}
	}
	return int(h.sum / h.count)
}

// Median estimates the median payload size.
func (h *PayloadHistogram) Median() int {
	return h.Percentile(50)
}

// Distribution returns the bucket boundaries and the percentage of samples
// in each bucket; the final percentage covers the overflow bucket.
func (h *PayloadHistogram) Distribution() ([]int, []float64) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	percentages := make([]float64, len(h.buckets))
	if h.count == 0 {
		return h.boundaries, percentages
	}
	for i, n := range h.buckets {
		percentages[i] = float64(n) * 100.0 / float64(h.count)
	}
	return h.boundaries, percentages
}

// Reset clears all samples.
func (h *PayloadHistogram) Reset() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.count = 0
	h.sum = 0
	for i := range h.buckets {
		h.buckets[i] = 0
	}
}
