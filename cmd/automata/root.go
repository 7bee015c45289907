package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Structural freezing and state renaming for automata tooling",
	Long: `Automata freezes nested data into immutable, hashable values and
renames arbitrary state identifiers to dense integers drawn from a shared
or per-session counter.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
}

// loadConfig resolves the config file and the --log-level override.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logging.NewWithWriter(cmd.ErrOrStderr(), level), nil
}

// sourceFactory returns a constructor for ID sources of the configured
// backend. Redis counters named differently never share state.
func sourceFactory(cfg config.CounterConfig) func(name string) (ports.IDSource, error) {
	return func(name string) (ports.IDSource, error) {
		switch cfg.Backend {
		case config.BackendMemory:
			return memory.NewCounter(cfg.Start), nil
		case config.BackendRedis:
			key := cfg.Redis.Key
			if name != "" {
				key = key + ":" + name
			}
			return redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, key,
				redis.WithPrefix(cfg.Redis.Prefix),
				redis.WithStart(cfg.Start),
				redis.WithTimeout(cfg.Redis.Timeout),
			), nil
		default:
			return nil, fmt.Errorf("unknown counter backend %q", cfg.Backend)
		}
	}
}
