// Package config loads the settings shared by the automata CLI commands.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Counter backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the file layout, e.g.
//
//	log:
//	  level: debug
//	counter:
//	  start: 0
//	  backend: redis
//	  redis:
//	    addr: localhost:6379
//	    key: dfa-merge
//	http:
//	  addr: :8080
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Counter CounterConfig `mapstructure:"counter"`
	HTTP    HTTPConfig    `mapstructure:"http"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CounterConfig struct {
	Start   int         `mapstructure:"start"`
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	Key      string        `mapstructure:"key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Counter: CounterConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Addr:    "localhost:6379",
				Prefix:  "automata:counter:",
				Key:     "default",
				Timeout: 5 * time.Second,
			},
		},
		HTTP: HTTPConfig{Addr: ":8080"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Durations accept strings such as "2s".
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if raw == nil {
		return cfg, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return cfg, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Counter.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Counter.Redis.Addr == "" {
			return fmt.Errorf("counter.redis.addr is required for the redis backend")
		}
		if c.Counter.Redis.Key == "" {
			return fmt.Errorf("counter.redis.key is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown counter backend %q", c.Counter.Backend)
	}
	if c.Counter.Start < 0 {
		return fmt.Errorf("counter.start must not be negative, got %d", c.Counter.Start)
	}
	return nil
}
