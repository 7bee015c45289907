package memory

import "sync/atomic"

// Counter implements ports.IDSource in memory.
// Safe for concurrent use; share one Counter between sessions to keep their
// integers disjoint.
type Counter struct {
	next atomic.Int64
}

// NewCounter creates a counter whose first value is start.
func NewCounter(start int) *Counter {
	c := &Counter{}
	c.next.Store(int64(start))
	return c
}

// Next returns the current value and advances the counter. It never fails.
func (c *Counter) Next() (int, error) {
	return int(c.next.Add(1) - 1), nil
}

// Peek returns the value the next call to Next will return.
func (c *Counter) Peek() int {
	return int(c.next.Load())
}
