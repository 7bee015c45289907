package frozen

import (
	"cmp"
	"iter"
	"slices"
)

// Set is an immutable set. Equality and hash are independent of the order in
// which elements were supplied.
type Set struct {
	elems []any
	index map[uint64][]int
	hash  uint64
}

// SetOf freezes elems and returns them as a Set; equal frozen elements
// collapse. It panics with an *UnhashableError if an element cannot be hashed.
func SetOf(elems ...any) *Set {
	return Freeze(Members(elems)).(*Set)
}

// newSet builds a Set from already frozen elements.
func newSet(elems []any) (*Set, error) {
	type member struct {
		v any
		h uint64
	}
	members := make([]member, 0, len(elems))
	for _, e := range elems {
		h, err := Hash(e)
		if err != nil {
			return nil, err
		}
		members = append(members, member{v: e, h: h})
	}
	// Hash order only fixes iteration order; the hash itself is a sum.
	slices.SortStableFunc(members, func(a, b member) int { return cmp.Compare(a.h, b.h) })

	s := &Set{
		elems: make([]any, 0, len(members)),
		index: make(map[uint64][]int, len(members)),
	}
	var acc uint64
	for _, m := range members {
		if s.find(m.v, m.h) >= 0 {
			continue
		}
		s.index[m.h] = append(s.index[m.h], len(s.elems))
		s.elems = append(s.elems, m.v)
		acc += mix(m.h)
	}
	s.hash = hashWords(tagSet, uint64(len(s.elems)), acc)
	return s, nil
}

func (s *Set) find(x any, h uint64) int {
	for _, i := range s.index[h] {
		if Equal(s.elems[i], x) {
			return i
		}
	}
	return -1
}

func (s *Set) sealed() {}

// Kind returns KindSet.
func (s *Set) Kind() Kind { return KindSet }

// Len returns the number of distinct elements.
func (s *Set) Len() int { return len(s.elems) }

// Contains reports whether x is a member. Unhashable x is never a member.
func (s *Set) Contains(x any) bool {
	h, err := Hash(x)
	if err != nil {
		return false
	}
	return s.find(x, h) >= 0
}

// Elements returns a copy of the members in iteration order.
func (s *Set) Elements() []any { return append([]any(nil), s.elems...) }

// All iterates over the members.
func (s *Set) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, e := range s.elems {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Set) Hash() (uint64, error) {
	if s == nil {
		return 0, &UnhashableError{Value: s}
	}
	return s.hash, nil
}

func (s *Set) Equal(other any) bool { return Equal(s, other) }

func (s *Set) String() string { return joinMembers("{", "}", s.elems) }
