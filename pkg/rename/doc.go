/*
Package rename assigns dense integers to arbitrary identifiers.

A Session memoizes "first seen gets the next integer": the first time an
identifier is renamed it draws the next value from a ports.IDSource, and every
later call with an equal identifier returns that same value. Identifiers may be
any comparable Go value or a frozen value from package frozen, which is how
composite state labels (pairs of states, sets of states) are renamed.

	counter := memory.NewCounter(0)
	rename := rename.MakeRenamer(counter)

	rename("q0") // 0
	rename("q1") // 1
	rename("q0") // 0
	rename(frozen.TupleOf("q0", "p1")) // 2

Sessions built on the same source never hand out the same integer; sessions on
independent sources number independently. Choosing between the two is up to
the caller.

A Session is safe for concurrent use: lookup, draw and insert happen under one
mutex.
*/
package rename
