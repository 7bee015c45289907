package memory_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestCounter_Contract(t *testing.T) {
	ports.RunIDSourceContract(t, func(t *testing.T, start int) ports.IDSource {
		return memory.NewCounter(start)
	})
}

func TestCounter_Peek(t *testing.T) {
	c := memory.NewCounter(5)
	assert.Equal(t, 5, c.Peek())

	n, _ := c.Next()
	assert.Equal(t, 5, n)
	assert.Equal(t, 6, c.Peek())
}

func TestCounter_ZeroValue(t *testing.T) {
	var c memory.Counter
	n, err := c.Next()
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}
