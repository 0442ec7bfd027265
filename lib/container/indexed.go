package container

import (
	"github.com/carton-io/carton/lib/value"
)

// --------------------------------------------------------------------------
// Indexed Policy
// --------------------------------------------------------------------------

// indexedPolicy stores entries in insertion order like the dynamic policy
// but additionally maintains a hash index from name to the slot of the first
// occurrence, making Lookup O(1) on average. The index is rebuilt after
// operations that shift slots.
type indexedPolicy struct {
	entries []value.Value
	index   map[string]int
}

// NewIndexed creates the hash-indexed storage policy.
func NewIndexed() Policy {
	return &indexedPolicy{index: make(map[string]int)}
}

func (p *indexedPolicy) Kind() PolicyKind { return PolicyIndexed }

func (p *indexedPolicy) Append(v value.Value) error {
	p.entries = append(p.entries, v)
	if _, dup := p.index[v.Name()]; !dup {
		p.index[v.Name()] = len(p.entries) - 1
	}
	return nil
}

func (p *indexedPolicy) Put(v value.Value) error {
	slot, exists := p.index[v.Name()]
	if !exists {
		return p.Append(v)
	}
	p.entries[slot] = v

	// Drop any later duplicates left behind by bulk appends.
	kept := p.entries[:slot+1]
	shifted := false
	for _, e := range p.entries[slot+1:] {
		if e.Name() == v.Name() {
			shifted = true
			continue
		}
		kept = append(kept, e)
	}
	p.entries = kept
	if shifted {
		p.reindex()
	}
	return nil
}

func (p *indexedPolicy) Lookup(name string) (value.Value, bool) {
	slot, ok := p.index[name]
	if !ok {
		return value.Value{}, false
	}
	return p.entries[slot], true
}

func (p *indexedPolicy) Delete(name string) int {
	if _, ok := p.index[name]; !ok {
		return 0
	}
	kept := p.entries[:0]
	removed := 0
	for _, e := range p.entries {
		if e.Name() == name {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	p.entries = kept
	p.reindex()
	return removed
}

func (p *indexedPolicy) Clear() {
	p.entries = nil
	p.index = make(map[string]int)
}

func (p *indexedPolicy) Len() int { return len(p.entries) }

func (p *indexedPolicy) Reserve(n int) {
	if n > cap(p.entries) {
		grown := make([]value.Value, len(p.entries), n)
		copy(grown, p.entries)
		p.entries = grown
	}
}

func (p *indexedPolicy) Each(fn func(v value.Value) bool) {
	for _, e := range p.entries {
		if !fn(e) {
			return
		}
	}
}

func (p *indexedPolicy) Clone() Policy {
	cp := make([]value.Value, len(p.entries))
	copy(cp, p.entries)
	idx := make(map[string]int, len(p.index))
	for k, v := range p.index {
		idx[k] = v
	}
	return &indexedPolicy{entries: cp, index: idx}
}

// reindex rebuilds the name index, mapping each name to its first slot.
func (p *indexedPolicy) reindex() {
	p.index = make(map[string]int, len(p.entries))
	for i, e := range p.entries {
		if _, dup := p.index[e.Name()]; !dup {
			p.index[e.Name()] = i
		}
	}
}
