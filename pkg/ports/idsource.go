package ports

// IDSource defines the monotonic integer source that renaming sessions draw from.
// Sharing one IDSource between sessions keeps their integers disjoint.
type IDSource interface {
	// Next returns the current value and advances the source, so that the
	// following call returns a value one greater.
	// In-process sources never fail; networked sources may.
	Next() (int, error)
}
