package frozen

import "reflect"

// Equal reports whether a and b are equal. Frozen values compare structurally,
// comparable values with ==. Values Go cannot compare are never equal.
//
// Nested containers are compared with an explicit stack of pending pairs, so
// any value Freeze can build can also be compared.
func Equal(a, b any) bool {
	pending := []pair{{a, b}}
	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		var ok bool
		if pending, ok = p.expand(pending); !ok {
			return false
		}
	}
	return true
}

type pair struct{ a, b any }

// expand compares the top level of p and pushes the child pairs that still
// have to be equal for p to be equal.
func (p pair) expand(pending []pair) ([]pair, bool) {
	switch x := p.a.(type) {
	case *Tuple:
		y, ok := p.b.(*Tuple)
		if !ok || x == nil || y == nil {
			return pending, ok && x == nil && y == nil
		}
		if x == y {
			return pending, true
		}
		if len(x.elems) != len(y.elems) {
			return pending, false
		}
		if x.err == nil && y.err == nil && x.hash != y.hash {
			return pending, false
		}
		for i := range x.elems {
			pending = append(pending, pair{x.elems[i], y.elems[i]})
		}
		return pending, true

	case *Set:
		y, ok := p.b.(*Set)
		if !ok || x == nil || y == nil {
			return pending, ok && x == nil && y == nil
		}
		if x == y {
			return pending, true
		}
		if len(x.elems) != len(y.elems) || x.hash != y.hash {
			return pending, false
		}
		for h, xs := range x.index {
			ys := y.index[h]
			if len(xs) != len(ys) {
				return pending, false
			}
			// One member per hash pairs up directly. Colliding members
			// are matched with a nested comparison.
			if len(xs) == 1 {
				pending = append(pending, pair{x.elems[xs[0]], y.elems[ys[0]]})
				continue
			}
			for _, i := range xs {
				if y.find(x.elems[i], h) < 0 {
					return pending, false
				}
			}
		}
		return pending, true

	case *Map:
		y, ok := p.b.(*Map)
		if !ok || x == nil || y == nil {
			return pending, ok && x == nil && y == nil
		}
		if x == y {
			return pending, true
		}
		if len(x.keys) != len(y.keys) {
			return pending, false
		}
		if x.err == nil && y.err == nil && x.hash != y.hash {
			return pending, false
		}
		for h, xs := range x.index {
			ys := y.index[h]
			if len(xs) != len(ys) {
				return pending, false
			}
			if len(xs) == 1 {
				i, j := xs[0], ys[0]
				pending = append(pending, pair{x.keys[i], y.keys[j]}, pair{x.vals[i], y.vals[j]})
				continue
			}
			for _, i := range xs {
				j := y.find(x.keys[i], h)
				if j < 0 {
					return pending, false
				}
				pending = append(pending, pair{x.vals[i], y.vals[j]})
			}
		}
		return pending, true
	}

	return pending, equalShallow(p.a, p.b)
}

func equalShallow(a, b any) bool {
	if _, ok := b.(Value); ok {
		return false
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() || !ra.Comparable() || !rb.Comparable() {
		return false
	}
	return a == b
}
