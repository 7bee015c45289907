package automata

import (
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/frozen"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/rename"
)

// Freeze returns the immutable, hashable equivalent of v. See frozen.Freeze.
func Freeze(v any) any {
	return frozen.Freeze(v)
}

// TryFreeze is Freeze reporting unhashable set elements or mapping keys as an error.
func TryFreeze(v any) (any, error) {
	return frozen.TryFreeze(v)
}

// NewCounter returns an in-process monotonic counter whose first value is start.
// Pass the same counter to several renamers to keep their integers disjoint.
func NewCounter(start int) *memory.Counter {
	return memory.NewCounter(start)
}

// NewRenamer opens a renaming session on source.
func NewRenamer(source ports.IDSource, opts ...rename.Option) *rename.Session {
	return rename.New(source, opts...)
}

// MakeRenamer returns a renaming function backed by a fresh session on source.
// Equal inputs always get the same integer; unseen inputs draw the next one.
func MakeRenamer(source ports.IDSource) func(any) int {
	return rename.MakeRenamer(source)
}
