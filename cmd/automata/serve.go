package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/automata/internal/presentation/tui"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts automata in server mode, exposing freezing and renaming sessions
as a JSON API over HTTP. Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}
		isolate, _ := cmd.Flags().GetBool("isolate")

		newSource := sourceFactory(cfg.Counter)
		source, err := newSource("")
		if err != nil {
			return err
		}
		defer closeSource(source)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		opts := []session.Option{session.WithLogger(logger), session.WithMetrics(metrics)}
		if isolate {
			opts = append(opts, session.WithIsolation(newSource))
		}
		manager := session.NewManager(source, opts...)

		srv := &http.Server{
			Addr: cfg.HTTP.Addr,
			Handler: httpAdapter.NewHandler(manager,
				httpAdapter.WithLogger(logger),
				httpAdapter.WithMetrics(metrics, reg),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		tui.PrintBanner(cmd.ErrOrStderr(), tui.NewStyler(cmd.ErrOrStderr()))

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting automata server", "addr", srv.Addr, "backend", cfg.Counter.Backend, "isolate", isolate)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					return err
				}
			}
			logger.Info("Automata server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on; overrides http.addr")
	serveCmd.Flags().Bool("isolate", false, "Give every session its own counter")
}
