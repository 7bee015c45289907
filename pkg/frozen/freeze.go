package frozen

import "reflect"

// Freeze returns the immutable, hashable equivalent of v.
//
// Scalars and opaque values (including values that are already frozen) are
// returned unchanged. Mappings, sets and sequences are rebuilt as *Map, *Set
// and *Tuple with every nested value frozen; mapping keys are kept as-is.
//
// Freeze panics with an *UnhashableError when a set element or mapping key
// cannot be hashed. Use TryFreeze to receive that as an error instead.
func Freeze(v any) any {
	out, err := TryFreeze(v)
	if err != nil {
		panic(err)
	}
	return out
}

// TryFreeze is like Freeze but reports an unhashable set element or mapping
// key as an error.
func TryFreeze(v any) (any, error) {
	kind := Classify(v)
	if !composite(kind) {
		return v, nil
	}

	// Post-order walk over an explicit stack: a frame is built once all of its
	// children have been frozen into frame.out.
	stack := []*frame{newFrame(kind, v)}
	for {
		top := stack[len(stack)-1]
		if top.next < top.n {
			child := top.child(top.next)
			top.next++
			if ck := Classify(child); composite(ck) {
				stack = append(stack, newFrame(ck, child))
			} else {
				top.out = append(top.out, child)
			}
			continue
		}

		built, err := top.build()
		if err != nil {
			return nil, err
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return built, nil
		}
		parent := stack[len(stack)-1]
		parent.out = append(parent.out, built)
	}
}

func composite(k Kind) bool {
	return k == KindMapping || k == KindSet || k == KindSequence
}

type frame struct {
	kind    Kind
	src     reflect.Value
	keys    []reflect.Value // map keys, for mappings and map-backed sets
	fromMap bool
	n       int
	next    int
	out     []any
}

func newFrame(kind Kind, v any) *frame {
	rv := reflect.ValueOf(v)
	f := &frame{kind: kind, src: rv}
	if rv.Kind() == reflect.Map {
		f.fromMap = true
		f.keys = rv.MapKeys()
		f.n = len(f.keys)
	} else {
		f.n = rv.Len()
	}
	f.out = make([]any, 0, f.n)
	return f
}

func (f *frame) child(i int) any {
	switch {
	case f.kind == KindMapping:
		return f.src.MapIndex(f.keys[i]).Interface()
	case f.fromMap:
		return f.keys[i].Interface()
	default:
		return f.src.Index(i).Interface()
	}
}

func (f *frame) build() (any, error) {
	switch f.kind {
	case KindMapping:
		keys := make([]any, len(f.keys))
		for i, k := range f.keys {
			keys[i] = k.Interface()
		}
		m, err := newMap(keys, f.out)
		if err != nil {
			return nil, err
		}
		return m, nil
	case KindSet:
		s, err := newSet(f.out)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return newTuple(f.out), nil
	}
}

// Thaw converts a frozen value back into fresh mutable values: *Map becomes
// map[any]any, *Set becomes Members and *Tuple becomes []any, recursively.
// Map keys are kept frozen. Anything else is returned unchanged.
func Thaw(v any) any {
	var root any
	pending := []thawJob{{src: v, put: func(out any) { root = out }}}
	for len(pending) > 0 {
		job := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if x, ok := job.src.(Value); ok && isNilValue(x) {
			job.put(job.src)
			continue
		}

		switch x := job.src.(type) {
		case *Tuple:
			out := make([]any, len(x.elems))
			job.put(out)
			for i, e := range x.elems {
				pending = thawInto(pending, e, func(t any) { out[i] = t })
			}
		case *Set:
			out := make(Members, len(x.elems))
			job.put(out)
			for i, e := range x.elems {
				pending = thawInto(pending, e, func(t any) { out[i] = t })
			}
		case *Map:
			out := make(map[any]any, len(x.keys))
			job.put(out)
			for i, k := range x.keys {
				pending = thawInto(pending, x.vals[i], func(t any) { out[k] = t })
			}
		default:
			job.put(job.src)
		}
	}
	return root
}

type thawJob struct {
	src any
	put func(any)
}

// thawInto stores scalars right away and defers containers to the work list.
func thawInto(pending []thawJob, v any, put func(any)) []thawJob {
	if x, ok := v.(Value); ok && !isNilValue(x) {
		return append(pending, thawJob{src: v, put: put})
	}
	put(v)
	return pending
}

func isNilValue(v Value) bool {
	switch x := v.(type) {
	case *Tuple:
		return x == nil
	case *Set:
		return x == nil
	case *Map:
		return x == nil
	}
	return false
}
