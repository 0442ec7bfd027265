package container

import (
	"github.com/carton-io/carton/lib/value"
)

// --------------------------------------------------------------------------
// Dynamic Policy
// --------------------------------------------------------------------------

// dynamicPolicy holds entries in a flat insertion-ordered slice and scans
// linearly on lookup. It is the default policy.
type dynamicPolicy struct {
	entries []value.Value
}

// NewDynamic creates the insertion-ordered, linear-scan storage policy.
func NewDynamic() Policy {
	return &dynamicPolicy{}
}

func (p *dynamicPolicy) Kind() PolicyKind { return PolicyDynamic }

func (p *dynamicPolicy) Append(v value.Value) error {
	p.entries = append(p.entries, v)
	return nil
}

func (p *dynamicPolicy) Put(v value.Value) error {
	replaced := false
	kept := p.entries[:0]
	for _, e := range p.entries {
		if e.Name() != v.Name() {
			kept = append(kept, e)
			continue
		}
		// First occurrence keeps its slot, later duplicates drop out.
		if !replaced {
			kept = append(kept, v)
			replaced = true
		}
	}
	p.entries = kept
	if !replaced {
		p.entries = append(p.entries, v)
	}
	return nil
}

func (p *dynamicPolicy) Lookup(name string) (value.Value, bool) {
	for _, e := range p.entries {
		if e.Name() == name {
			return e, true
		}
	}
	return value.Value{}, false
}

func (p *dynamicPolicy) Delete(name string) int {
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
	return removed
}

func (p *dynamicPolicy) Clear() {
	p.entries = nil
}

func (p *dynamicPolicy) Len() int { return len(p.entries) }

func (p *dynamicPolicy) Reserve(n int) {
	if n <= cap(p.entries) {
		return
	}
	grown := make([]value.Value, len(p.entries), n)
	copy(grown, p.entries)
	p.entries = grown
}

func (p *dynamicPolicy) Each(fn func(v value.Value) bool) {
	for _, e := range p.entries {
		if !fn(e) {
			return
		}
	}
}

func (p *dynamicPolicy) Clone() Policy {
	cp := make([]value.Value, len(p.entries))
	copy(cp, p.entries)
	return &dynamicPolicy{entries: cp}
}
