package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/frozen"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func memorySources(start int) func(string) (ports.IDSource, error) {
	return func(string) (ports.IDSource, error) { return memory.NewCounter(start), nil }
}

func TestRunFreeze_Text(t *testing.T) {
	var out bytes.Buffer
	err := runFreeze(strings.NewReader("[q0, [1, 2]]"), &out, "text", tui.Plain())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "sequence "))
	assert.Equal(t, `("q0", (1, 2))`, lines[1])
}

func TestRunFreeze_SameHashForReorderedMapping(t *testing.T) {
	hashOf := func(doc string) string {
		var out bytes.Buffer
		require.NoError(t, runFreeze(strings.NewReader(doc), &out, "json", tui.Plain()))
		var res freezeOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
		assert.Equal(t, "mapping", res.Kind)
		return res.Hash
	}

	assert.Equal(t, hashOf("{a: 1, b: [x, y]}"), hashOf("{b: [x, y], a: 1}"))
	assert.NotEqual(t, hashOf("{a: 1, b: [x, y]}"), hashOf("{a: 1, b: [y, x]}"))
}

func TestRunFreeze_YAML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runFreeze(strings.NewReader("!!set {a, b}"), &out, "yaml", tui.Plain()))

	var res map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, "set", res["kind"])
	assert.ElementsMatch(t, []any{"a", "b"}, res["value"])
}

func TestRunFreeze_UnknownFormat(t *testing.T) {
	err := runFreeze(strings.NewReader("x"), &bytes.Buffer{}, "toml", tui.Plain())
	assert.ErrorContains(t, err, "unknown format")
}

func TestDecodeNode(t *testing.T) {
	decode := func(doc string) any {
		var n yaml.Node
		require.NoError(t, yaml.Unmarshal([]byte(doc), &n))
		v, err := decodeNode(&n)
		require.NoError(t, err)
		return v
	}

	t.Run("set tag", func(t *testing.T) {
		v := decode("!!set {q0, q1}")
		assert.Equal(t, frozen.KindSet, frozen.Classify(v))
	})

	t.Run("null values stay a mapping", func(t *testing.T) {
		v := decode("{q0: null}")
		assert.Equal(t, frozen.KindMapping, frozen.Classify(v))
	})

	t.Run("composite keys", func(t *testing.T) {
		v := decode("? [q0, q1]\n: accept\n")
		f := frozen.Freeze(v).(*frozen.Map)
		got, ok := f.Get(frozen.TupleOf("q0", "q1"))
		assert.True(t, ok)
		assert.Equal(t, "accept", got)
	})

	t.Run("aliases", func(t *testing.T) {
		v := decode("a: &x [1, 2]\nb: *x\n")
		f := frozen.Freeze(v).(*frozen.Map)
		a, _ := f.Get("a")
		b, _ := f.Get("b")
		assert.True(t, frozen.Equal(a, b))
	})
}

func TestParseSessions(t *testing.T) {
	inputs, err := parseSessions([]byte("right: [q0]\nleft: [q0, q1]\n"))
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "right", inputs[0].name)
	assert.Equal(t, "left", inputs[1].name)
	assert.Len(t, inputs[1].ids, 2)

	inputs, err = parseSessions([]byte("[q0, q1]"))
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, defaultSession, inputs[0].name)

	_, err = parseSessions([]byte("left: q0"))
	assert.ErrorContains(t, err, "must be a sequence")

	inputs, err = parseSessions(nil)
	require.NoError(t, err)
	assert.Empty(t, inputs)
}

func renameTable(t *testing.T, out string) [][]string {
	t.Helper()
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

func TestRunRename_SharedCounter(t *testing.T) {
	var out bytes.Buffer
	err := runRename(strings.NewReader("a: [q0, q1, q0, q2]\nb: [q5]\n"), &out, renameOptions{
		newSource: memorySources(0),
	})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"a", "q0", "0"},
		{"a", "q1", "1"},
		{"a", "q0", "0"},
		{"a", "q2", "2"},
		{"b", "q5", "3"},
	}, renameTable(t, out.String()))
}

func TestRunRename_Isolated(t *testing.T) {
	var out bytes.Buffer
	err := runRename(strings.NewReader("a: [q0, q1]\nb: [q1]\n"), &out, renameOptions{
		newSource: memorySources(10),
		isolate:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"a", "q0", "10"},
		{"a", "q1", "11"},
		{"b", "q1", "10"},
	}, renameTable(t, out.String()))
}

func TestRunRename_CompositeStates(t *testing.T) {
	var out bytes.Buffer
	err := runRename(strings.NewReader("- [q0, p0]\n- {a: 1}\n- [q0, p0]\n"), &out, renameOptions{
		newSource: memorySources(0),
	})
	require.NoError(t, err)

	rows := renameTable(t, out.String())
	require.Len(t, rows, 3)
	assert.Equal(t, "0", rows[0][len(rows[0])-1])
	assert.Equal(t, "1", rows[1][len(rows[1])-1])
	assert.Equal(t, "0", rows[2][len(rows[2])-1])
}

func TestSourceFactory_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default().Counter
	cfg.Backend = config.BackendRedis
	cfg.Start = 5
	cfg.Redis.Addr = mr.Addr()

	newSource := sourceFactory(cfg)

	shared, err := newSource("")
	require.NoError(t, err)
	defer closeSource(shared)
	n, err := shared.Next()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	isolated, err := newSource("left")
	require.NoError(t, err)
	defer closeSource(isolated)
	n, err = isolated.Next()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.True(t, mr.Exists("automata:counter:default"))
	assert.True(t, mr.Exists("automata:counter:default:left"))
}

func TestSourceFactory_UnknownBackend(t *testing.T) {
	_, err := sourceFactory(config.CounterConfig{Backend: "etcd"})("")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "automata version "))
}
