/*
Package automata provides the value-semantics substrate an automata library is built on.

It implements two primitives, deliberately independent of any DFA/NFA semantics:

  - Freezing: deep conversion of nested maps, sets and slices into immutable,
    hashable equivalents (package frozen), so composite state labels can be used
    as map keys, set members and renaming keys.
  - Renaming: deterministic, collision-free mapping of arbitrary identifiers into
    a dense integer space (package rename), memoized per session and drawn from a
    shared monotonic counter (package ports, with adapters in pkg/adapters).

# Concept

Algorithms that combine automata (product, union, subset construction) keep
meeting state labels chosen independently by different automata. Freezing turns
those labels into values with structural equality; renaming turns them into one
disjoint, dense namespace for the automaton being built.

# Usage

	package main

	import (
		"fmt"

		"github.com/aretw0/automata"
	)

	func main() {
		counter := automata.NewCounter(0)
		rename := automata.MakeRenamer(counter)

		// Product states are pairs of states.
		pair := automata.Freeze([]string{"q0", "p1"})

		fmt.Println(rename(pair)) // 0
		fmt.Println(rename(automata.Freeze([]string{"q0", "p1"}))) // 0
		fmt.Println(rename("q1")) // 1
	}

Sessions that share a counter never overlap. To keep numbering global across
processes, back the sessions with the Redis counter in pkg/adapters/redis.
*/
package automata
