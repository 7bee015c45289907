package frozen

import (
	"encoding/binary"
	"iter"

	"github.com/cespare/xxhash/v2"
)

// Tuple is an immutable ordered sequence. Equality and hash depend on both
// the elements and their order.
type Tuple struct {
	elems []any
	hash  uint64
	err   error
}

// TupleOf freezes elems and returns them as a Tuple.
// It panics with an *UnhashableError under the same conditions as Freeze.
func TupleOf(elems ...any) *Tuple {
	return Freeze(append([]any(nil), elems...)).(*Tuple)
}

// newTuple takes ownership of elems, which must already be frozen.
func newTuple(elems []any) *Tuple {
	t := &Tuple{elems: elems}

	d := xxhash.New()
	var buf [8]byte
	buf[0] = tagTuple
	_, _ = d.Write(buf[:1])
	binary.LittleEndian.PutUint64(buf[:], uint64(len(elems)))
	_, _ = d.Write(buf[:])
	for _, e := range elems {
		h, err := Hash(e)
		if err != nil {
			t.err = err
			return t
		}
		binary.LittleEndian.PutUint64(buf[:], h)
		_, _ = d.Write(buf[:])
	}
	t.hash = d.Sum64()
	return t
}

func (t *Tuple) sealed() {}

// Kind returns KindSequence.
func (t *Tuple) Kind() Kind { return KindSequence }

// Len returns the number of elements.
func (t *Tuple) Len() int { return len(t.elems) }

// At returns the i-th element. It panics if i is out of range.
func (t *Tuple) At(i int) any { return t.elems[i] }

// Slice returns a copy of the elements.
func (t *Tuple) Slice() []any { return append([]any(nil), t.elems...) }

// All iterates over index/element pairs in order.
func (t *Tuple) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, e := range t.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

func (t *Tuple) Hash() (uint64, error) {
	if t == nil {
		return 0, &UnhashableError{Value: t}
	}
	return t.hash, t.err
}

func (t *Tuple) Equal(other any) bool { return Equal(t, other) }

func (t *Tuple) String() string { return joinMembers("(", ")", t.elems) }
