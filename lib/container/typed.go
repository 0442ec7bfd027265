package container

import (
	"github.com/carton-io/carton/lib/result"
	"github.com/carton-io/carton/lib/value"
)

// --------------------------------------------------------------------------
// Typed Policy
// --------------------------------------------------------------------------

// typedPolicy restricts entries to a declared list of allowed kinds. Entries
// are bucketed per kind; iteration visits buckets in the declared kind order
// and entries within a bucket in insertion order.
type typedPolicy struct {
	allowed []value.Kind
	slot    map[value.Kind]int
	buckets [][]value.Value
}

// NewTyped creates the schema-like storage policy that accepts only the
// given kinds, validated at insertion. Iteration order follows the declared
// kind order. Duplicate kinds in the list collapse to the first mention.
func NewTyped(kinds ...value.Kind) Policy {
	p := &typedPolicy{
		slot: make(map[value.Kind]int, len(kinds)),
	}
	for _, k := range kinds {
		if _, dup := p.slot[k]; dup {
			continue
		}
		p.slot[k] = len(p.allowed)
		p.allowed = append(p.allowed, k)
	}
	p.buckets = make([][]value.Value, len(p.allowed))
	return p
}

func (p *typedPolicy) Kind() PolicyKind { return PolicyTyped }

func (p *typedPolicy) validate(v value.Value) error {
	if _, ok := p.slot[v.Kind()]; !ok {
		return result.Newf(result.CodeTypeMismatch, moduleTag,
			"kind %s not in the allowed set for this container", v.Kind())
	}
	return nil
}

func (p *typedPolicy) Append(v value.Value) error {
	if err := p.validate(v); err != nil {
		return err
	}
	s := p.slot[v.Kind()]
	p.buckets[s] = append(p.buckets[s], v)
	return nil
}

func (p *typedPolicy) Put(v value.Value) error {
	if err := p.validate(v); err != nil {
		return err
	}
	p.Delete(v.Name())
	return p.Append(v)
}

func (p *typedPolicy) Lookup(name string) (value.Value, bool) {
	for _, bucket := range p.buckets {
		for _, e := range bucket {
			if e.Name() == name {
				return e, true
			}
		}
	}
	return value.Value{}, false
}

func (p *typedPolicy) Delete(name string) int {
	removed := 0
	for i, bucket := range p.buckets {
		kept := bucket[:0]
		for _, e := range bucket {
			if e.Name() == name {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		p.buckets[i] = kept
	}
	return removed
}

func (p *typedPolicy) Clear() {
	for i := range p.buckets {
		p.buckets[i] = nil
	}
}

func (p *typedPolicy) Len() int {
	n := 0
	for _, bucket := range p.buckets {
		n += len(bucket)
	}
	return n
}

func (p *typedPolicy) Reserve(n int) {
	// Sizing is per bucket; an overall hint cannot be attributed to one
	// kind, so it is ignored.
}

func (p *typedPolicy) Each(fn func(v value.Value) bool) {
	for _, bucket := range p.buckets {
		for _, e := range bucket {
			if !fn(e) {
				return
			}
		}
	}
}

func (p *typedPolicy) Clone() Policy {
	cp := &typedPolicy{
		allowed: p.allowed,
		slot:    p.slot,
		buckets: make([][]value.Value, len(p.buckets)),
	}
	for i, bucket := range p.buckets {
		b := make([]value.Value, len(bucket))
		copy(b, bucket)
		cp.buckets[i] = b
	}
	return cp
}
