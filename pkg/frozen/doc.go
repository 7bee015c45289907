// Package frozen converts nested, mutable Go values into immutable, hashable
// equivalents.
//
// Freezing dispatches on the runtime shape of a value (see Kind):
//
//	v := map[string]any{
//	    "states": []string{"q0", "q1"},
//	    "final":  map[string]struct{}{"q1": {}},
//	}
//
//	f := frozen.Freeze(v) // *frozen.Map holding a *frozen.Tuple and a *frozen.Set
//
// Scalars (strings, booleans and integers) and opaque values are returned
// unchanged. Maps become *Map, maps with empty-struct values and Members
// become *Set, slices and arrays become *Tuple. Containers copy what they
// hold, so nothing reachable from a frozen value can be mutated.
//
// Every frozen value supports structural equality (Equal) and a hash that is
// independent of iteration order for sets and maps (Hash), which makes it
// usable as a member of another Set, as a key of another Map, or as a
// renaming key in package rename.
//
// Freezing walks the input with an explicit work stack, so arbitrarily deep
// inputs do not exhaust the goroutine stack. Cyclic inputs are not detected
// and never terminate.
package frozen
