package frozen_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/automata/pkg/frozen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshalJSON(t *testing.T) {
	f := frozen.Freeze(map[string]any{
		"states": []any{"q0", "q1"},
		"final":  map[string]struct{}{"q1": {}},
		"empty":  []int{},
	})

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"states":["q0","q1"],"final":["q1"],"empty":[]}`, string(data))
}

func TestMarshalYAML(t *testing.T) {
	f := frozen.Freeze(map[int][]string{1: {"a", "b"}})

	data, err := yaml.Marshal(f)
	require.NoError(t, err)

	var back map[int][]string
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, map[int][]string{1: {"a", "b"}}, back)
}

func TestMarshalYAML_Set(t *testing.T) {
	data, err := yaml.Marshal(frozen.SetOf("only"))
	require.NoError(t, err)
	assert.Equal(t, "- only\n", string(data))
}
