package frozen

import (
	"cmp"
	"iter"
	"slices"
	"strings"
)

// Map is an immutable mapping. Equality and hash are independent of the order
// of its entries. Keys are kept as supplied; values are frozen.
type Map struct {
	keys  []any
	vals  []any
	index map[uint64][]int
	hash  uint64
	err   error
}

// newMap builds a Map from parallel key and frozen value slices. Keys that
// compare equal after freezing keep the first entry seen.
func newMap(keys, vals []any) (*Map, error) {
	type entry struct {
		k, v any
		kh   uint64
	}
	entries := make([]entry, 0, len(keys))
	for i, k := range keys {
		kh, err := Hash(k)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{k: k, v: vals[i], kh: kh})
	}
	slices.SortStableFunc(entries, func(a, b entry) int { return cmp.Compare(a.kh, b.kh) })

	m := &Map{
		keys:  make([]any, 0, len(entries)),
		vals:  make([]any, 0, len(entries)),
		index: make(map[uint64][]int, len(entries)),
	}
	var acc uint64
	for _, e := range entries {
		if m.find(e.k, e.kh) >= 0 {
			continue
		}
		m.index[e.kh] = append(m.index[e.kh], len(m.keys))
		m.keys = append(m.keys, e.k)
		m.vals = append(m.vals, e.v)

		if m.err != nil {
			continue
		}
		vh, err := Hash(e.v)
		if err != nil {
			m.err = err
			continue
		}
		acc += mix(e.kh, vh)
	}
	if m.err == nil {
		m.hash = hashWords(tagMap, uint64(len(m.keys)), acc)
	}
	return m, nil
}

func (m *Map) find(k any, h uint64) int {
	for _, i := range m.index[h] {
		if Equal(m.keys[i], k) {
			return i
		}
	}
	return -1
}

func (m *Map) sealed() {}

// Kind returns KindMapping.
func (m *Map) Kind() Kind { return KindMapping }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Get returns the frozen value stored under k.
func (m *Map) Get(k any) (any, bool) {
	h, err := Hash(k)
	if err != nil {
		return nil, false
	}
	if i := m.find(k, h); i >= 0 {
		return m.vals[i], true
	}
	return nil, false
}

// Has reports whether k is a key.
func (m *Map) Has(k any) bool {
	_, ok := m.Get(k)
	return ok
}

// Keys returns a copy of the keys in iteration order.
func (m *Map) Keys() []any { return append([]any(nil), m.keys...) }

// All iterates over key/value pairs.
func (m *Map) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

func (m *Map) Hash() (uint64, error) {
	if m == nil {
		return 0, &UnhashableError{Value: m}
	}
	return m.hash, m.err
}

func (m *Map) Equal(other any) bool { return Equal(m, other) }

func (m *Map) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatMember(k))
		b.WriteString(": ")
		b.WriteString(formatMember(m.vals[i]))
	}
	b.WriteString("}")
	return b.String()
}
