package session_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/frozen"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_OpenGetClose(t *testing.T) {
	m := session.NewManager(memory.NewCounter(0))

	id, s, err := m.Open("merge-a")
	require.NoError(t, err)
	assert.Equal(t, "merge-a", id)

	got, err := m.Get("merge-a")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, _, err = m.Open("merge-a")
	assert.ErrorIs(t, err, session.ErrSessionExists)

	require.NoError(t, m.Close("merge-a"))
	_, err = m.Get("merge-a")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.ErrorIs(t, m.Close("merge-a"), session.ErrSessionNotFound)
}

func TestManager_GeneratedIDs(t *testing.T) {
	n := 0
	m := session.NewManager(memory.NewCounter(0), session.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}))

	id1, _, err := m.Open("")
	require.NoError(t, err)
	id2, _, err := m.Open("")
	require.NoError(t, err)

	assert.Equal(t, "gen-1", id1)
	assert.Equal(t, "gen-2", id2)
	assert.Equal(t, []string{"gen-1", "gen-2"}, m.List())
}

func TestManager_DefaultIDsAreUUIDs(t *testing.T) {
	m := session.NewManager(memory.NewCounter(0))
	id, _, err := m.Open("")
	require.NoError(t, err)
	assert.Len(t, id, 36)
}

func TestManager_SharedSourceKeepsSessionsDisjoint(t *testing.T) {
	m := session.NewManager(memory.NewCounter(0))
	_, _, _ = m.Open("a")
	_, _, _ = m.Open("b")

	idsA, err := m.Rename("a", "q0", "q1", "q0")
	require.NoError(t, err)
	idsB, err := m.Rename("b", "q0", frozen.TupleOf("q0", "q1"))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 0}, idsA)
	assert.Equal(t, []int{2, 3}, idsB)

	_, err = m.Rename("missing", "q0")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_Isolation(t *testing.T) {
	m := session.NewManager(memory.NewCounter(100), session.WithIsolation(func(string) (ports.IDSource, error) {
		return memory.NewCounter(0), nil
	}))
	_, _, _ = m.Open("a")
	_, _, _ = m.Open("b")

	idsA, _ := m.Rename("a", "x")
	idsB, _ := m.Rename("b", "y")
	assert.Equal(t, []int{0}, idsA)
	assert.Equal(t, []int{0}, idsB)
}

func TestManager_IsolationFactoryError(t *testing.T) {
	boom := errors.New("no counter")
	m := session.NewManager(memory.NewCounter(0), session.WithIsolation(func(id string) (ports.IDSource, error) {
		if id == "bad" {
			return nil, boom
		}
		return memory.NewCounter(0), nil
	}))

	_, _, err := m.Open("bad")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, m.List())

	_, _, err = m.Open("good")
	assert.NoError(t, err)
}

type closingSource struct {
	ports.IDSource
	closed bool
}

func (c *closingSource) Close() error {
	c.closed = true
	return nil
}

func TestManager_CloseReleasesIsolatedSource(t *testing.T) {
	var created []*closingSource
	m := session.NewManager(memory.NewCounter(0), session.WithIsolation(func(string) (ports.IDSource, error) {
		src := &closingSource{IDSource: memory.NewCounter(0)}
		created = append(created, src)
		return src, nil
	}))

	_, _, err := m.Open("a")
	require.NoError(t, err)
	require.Len(t, created, 1)

	require.NoError(t, m.Close("a"))
	assert.True(t, created[0].closed)
}

func TestManager_ConcurrentOpen(t *testing.T) {
	m := session.NewManager(memory.NewCounter(0))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%02d", i)
			_, _, err := m.Open(id)
			assert.NoError(t, err)
			_, err = m.Rename(id, "q0")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.List(), 20)
}
