package frozen

import (
	"fmt"
	"strings"
)

// Value is implemented by the frozen containers *Tuple, *Set and *Map.
type Value interface {
	fmt.Stringer

	// Kind reports the shape the value was frozen from.
	Kind() Kind
	// Len returns the number of elements or entries.
	Len() int
	// Hash returns the structural hash, or an *UnhashableError when a member
	// cannot be hashed.
	Hash() (uint64, error)
	// Equal reports structural equality with other.
	Equal(other any) bool

	sealed()
}

var (
	_ Value = (*Tuple)(nil)
	_ Value = (*Set)(nil)
	_ Value = (*Map)(nil)
)

func formatMember(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

func joinMembers(open, close string, elems []any) string {
	var b strings.Builder
	b.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatMember(e))
	}
	b.WriteString(close)
	return b.String()
}
