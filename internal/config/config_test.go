package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/automata/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, config.BackendMemory, cfg.Counter.Backend)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automata.yaml")
	data := `
log:
  level: debug
counter:
  start: 100
  backend: redis
  redis:
    addr: redis:6379
    key: merge
    timeout: 2s
http:
  addr: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 100, cfg.Counter.Start)
	assert.Equal(t, config.BackendRedis, cfg.Counter.Backend)
	assert.Equal(t, "redis:6379", cfg.Counter.Redis.Addr)
	assert.Equal(t, "merge", cfg.Counter.Redis.Key)
	assert.Equal(t, 2*time.Second, cfg.Counter.Redis.Timeout)
	assert.Equal(t, "automata:counter:", cfg.Counter.Redis.Prefix, "unset fields keep defaults")
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown backend": "counter:\n  backend: etcd\n",
		"unknown field":   "counter:\n  begin: 3\n",
		"negative start":  "counter:\n  start: -1\n",
		"missing key":     "counter:\n  backend: redis\n  redis:\n    key: \"\"\n",
		"not yaml":        "counter: [",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
