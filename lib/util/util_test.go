package util

import (
	"sync"
	"testing"
)

func TestHistogramBasics(t *testing.T) {
	h := NewPayloadHistogram()
	if h.Count() != 0 || h.Mean() != 0 || h.Median() != 0 {
		t.Fatal("fresh histogram not empty")
	}

	for _, size := range []int{10, 10, 10, 2000} {
		h.Observe(size)
	}
	if h.Count() != 4 {
		t.Errorf("Count = %d", h.Count())
	}
	if got := h.Mean(); got != (10+10+10+2000)/4 {
		t.Errorf("Mean = %d", got)
	}
	// Three of four samples sit in the first bucket.
	if got := h.Median(); got != 16/2 {
		t.Errorf("Median = %d", got)
	}
}

func TestHistogramPercentileAndOverflow(t *testing.T) {
	h := NewPayloadHistogram()
	for i := 0; i < 99; i++ {
		h.Observe(8)
	}
	h.Observe(1 << 30) // beyond the last boundary

	if got := h.Percentile(50); got != 8 {
		t.Errorf("p50 = %d", got)
	}
	if got := h.Percentile(100); got != 67108864*2 {
		t.Errorf("p100 = %d, want overflow estimate", got)
	}
	if h.Percentile(101) != 0 || h.Percentile(-1) != 0 {
		t.Error("out-of-range percentile not rejected")
	}
}

func TestHistogramDistributionAndReset(t *testing.T) {
	h := NewPayloadHistogram()
	h.Observe(8)
	h.Observe(8)
	h.Observe(100000)

	bounds, pcts := h.Distribution()
	if len(pcts) != len(bounds)+1 {
		t.Fatalf("bucket count %d for %d boundaries", len(pcts), len(bounds))
	}
	total := 0.0
	for _, p := range pcts {
		total += p
	}
	if total < 99.9 || total > 100.1 {
		t.Errorf("percentages sum to %g", total)
	}

	h.Reset()
	if h.Count() != 0 || h.Mean() != 0 {
		t.Error("Reset left samples")
	}
}

func TestBlockPoolReuse(t *testing.T) {
	p := NewBlockPool(1024, 4)

	b := p.Get(100)
	if cap(b) != 1024 || len(b) != 0 {
		t.Fatalf("got len %d cap %d", len(b), cap(b))
	}
	p.Put(b)

	again := p.Get(100)
	if got := p.Stats(); got.Hits != 1 {
		t.Errorf("Hits = %d after recycle", got.Hits)
	}
	_ = again
}

func TestBlockPoolOversized(t *testing.T) {
	p := NewBlockPool(64, 2)

	big := p.Get(1000)
	if cap(big) < 1000 {
		t.Fatalf("oversized request got cap %d", cap(big))
	}
	p.Put(big) // dropped: wrong capacity
	if got := p.Stats(); got.FreeCount != 0 {
		t.Errorf("oversized buffer entered the freelist")
	}
	if got := p.Stats(); got.Misses != 1 {
		t.Errorf("Misses = %d", got.Misses)
	}
}

func TestBlockPoolHitRate(t *testing.T) {
	p := NewBlockPool(128, 2)
	if p.HitRate() != 0 {
		t.Error("hit rate without traffic")
	}
	b := p.Get(10) // miss
	p.Put(b)
	p.Get(10) // hit
	if r := p.HitRate(); r != 0.5 {
		t.Errorf("HitRate = %g", r)
	}
}

func TestBlockPoolConcurrent(t *testing.T) {
	p := NewBlockPool(256, 8)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				b := p.Get(64)
				b = append(b, byte(i))
				p.Put(b)
			}
		}()
	}
	wg.Wait()

	st := p.Stats()
	if st.Hits+st.Misses != 8000 {
		t.Errorf("requests = %d", st.Hits+st.Misses)
	}
}
