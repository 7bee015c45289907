package frozen

import (
	"errors"
	"fmt"
)

// ErrUnhashable matches any *UnhashableError via errors.Is.
var ErrUnhashable = errors.New("unhashable value")

// UnhashableError reports a value that cannot be hashed or compared, such as a
// function, or a slice that was never frozen.
type UnhashableError struct {
	Value any // The offending value
}

func (e *UnhashableError) Error() string {
	return fmt.Sprintf("unhashable value of type %T", e.Value)
}

// Is reports whether target is ErrUnhashable.
func (e *UnhashableError) Is(target error) bool {
	return target == ErrUnhashable
}
