package rename

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/frozen"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
)

// Assignment is one identifier and the integer it was renamed to.
type Assignment struct {
	Key any
	ID  int
}

// Session is one renaming task: a memo from identifiers to the integers drawn
// for them, bound to a shared source.
type Session struct {
	source ports.IDSource

	mu      sync.Mutex
	plain   map[any]int      // comparable keys -> index into order
	frozen  map[uint64][]int // frozen keys by hash -> indices into order
	order   []Assignment     // first-seen order
	inverse map[int]int      // id -> index into order

	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an empty Session drawing from source. The source is shared, not
// copied.
func New(source ports.IDSource, opts ...Option) *Session {
	s := &Session{
		source:  source,
		plain:   make(map[any]int),
		frozen:  make(map[uint64][]int),
		inverse: make(map[int]int),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MakeRenamer returns the renaming function of a fresh Session on source.
// The function panics on the errors Rename reports.
func MakeRenamer(source ports.IDSource, opts ...Option) func(any) int {
	return New(source, opts...).Func()
}

// Rename returns the integer assigned to x, drawing a new one from the source
// the first time x (or a value equal to it) is seen.
//
// It returns an *frozen.UnhashableError if x cannot be used as a key (freeze
// composite identifiers first), and a wrapped error if the source fails. In
// both cases the session is left unchanged.
func (s *Session) Rename(x any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, hash, ok, err := s.find(x)
	if err != nil {
		s.metrics.ObserveFailure(observability.ReasonUnhashable)
		return 0, err
	}
	if ok {
		s.metrics.ObserveReused()
		return s.order[idx].ID, nil
	}

	id, err := s.source.Next()
	if err != nil {
		s.metrics.ObserveFailure(observability.ReasonSource)
		return 0, fmt.Errorf("failed to draw id for %v: %w", x, err)
	}

	s.record(x, hash, id)
	s.metrics.ObserveAssigned()
	s.logger.Debug("rename: assigned", "key", x, "id", id)
	return id, nil
}

// Func returns Rename as a plain function. It panics where Rename would return
// an error; both are caller contract violations.
func (s *Session) Func() func(any) int {
	return func(x any) int {
		id, err := s.Rename(x)
		if err != nil {
			panic(err)
		}
		return id
	}
}

// Lookup returns the integer already assigned to x without drawing.
func (s *Session) Lookup(x any) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, _, ok, err := s.find(x)
	if err != nil || !ok {
		return 0, false
	}
	return s.order[idx].ID, true
}

// Original returns the identifier that was renamed to id.
func (s *Session) Original(id int) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.inverse[id]
	if !ok {
		return nil, false
	}
	return s.order[idx].Key, true
}

// Assignments returns a copy of the assignments in first-seen order.
func (s *Session) Assignments() []Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Assignment(nil), s.order...)
}

// Len returns the number of distinct identifiers renamed so far.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.order)
}

// find must be called with s.mu held. The returned hash is only meaningful
// for frozen keys.
func (s *Session) find(x any) (idx int, hash uint64, ok bool, err error) {
	if v, isFrozen := x.(frozen.Value); isFrozen {
		hash, err = v.Hash()
		if err != nil {
			return 0, 0, false, err
		}
		for _, i := range s.frozen[hash] {
			if v.Equal(s.order[i].Key) {
				return i, hash, true, nil
			}
		}
		return 0, hash, false, nil
	}

	// Rejects values Go cannot use as map keys instead of panicking below.
	if _, err = frozen.Hash(x); err != nil {
		return 0, 0, false, err
	}
	idx, ok = s.plain[x]
	return idx, 0, ok, nil
}

func (s *Session) record(x any, hash uint64, id int) {
	idx := len(s.order)
	s.order = append(s.order, Assignment{Key: x, ID: id})
	s.inverse[id] = idx

	if _, isFrozen := x.(frozen.Value); isFrozen {
		s.frozen[hash] = append(s.frozen[hash], idx)
		return
	}
	s.plain[x] = idx
}
