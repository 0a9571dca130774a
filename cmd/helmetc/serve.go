package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jub0bs/helmet"
	"github.com/jub0bs/helmet/internal/observability"
)

func newServeCmd() *cobra.Command {
	var configPath string
	var listen string
	var metricsListen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a demo server whose responses carry the configured security headers",
		Long: "Run a demo server whose responses carry the configured security headers.\n" +
			"Send SIGHUP to the process to reload the configuration file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return errors.New("config path is required")
			}
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), nil))
			return serve(cmd.Context(), logger, configPath, listen, metricsListen)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (.yaml, .yml, .json, or .toml)")
	cmd.Flags().StringVar(&listen, "listen", ":8080", "Address of the demo server")
	cmd.Flags().StringVar(&metricsListen, "metrics-listen", "", "Address of the metrics server (disabled if empty)")

	return cmd
}

type server struct {
	logger  *slog.Logger
	path    string
	mw      helmet.Middleware
	metrics *observability.Metrics
}

func newServer(logger *slog.Logger, path string, metrics *observability.Metrics) *server {
	return &server{
		logger:  logger,
		path:    path,
		metrics: metrics,
	}
}

// reload (re)configures the middleware from the configuration file.
// If the file is invalid, the middleware keeps its current configuration.
func (s *server) reload() error {
	cfg, err := loadConfig(s.path)
	if err == nil {
		err = s.mw.Reconfigure(cfg)
	}
	ins := s.mw.Instructions()
	s.metrics.ObserveReload(ins, err)
	if err != nil {
		s.logger.Error("config reload failed", "path", s.path, "error", err)
		return err
	}
	s.logger.Info("config loaded", "path", s.path, "instructions", len(ins))
	return nil
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "Hello, World!\n")
	})
	return s.metrics.Wrap(s.mw.Wrap(mux))
}

func serve(ctx context.Context, logger *slog.Logger, path, listen, metricsListen string) error {
	reg := prometheus.NewRegistry()
	s := newServer(logger, path, observability.NewMetrics(reg))
	if err := s.reload(); err != nil {
		return err
	}

	metricsSrv := startMetricsServer(logger, s.metrics, reg, metricsListen)
	defer func() {
		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(context.Background())
		}
	}()

	srv := &http.Server{
		Addr:              listen,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()
	logger.Info("server started", "addr", listen)

loop:
	for {
		select {
		case <-hup:
			_ = s.reload() // already logged
		case <-signalCtx.Done():
			break loop
		case err := <-serverErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			break loop
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func startMetricsServer(logger *slog.Logger, metrics *observability.Metrics, reg *prometheus.Registry, addr string) *http.Server {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	return srv
}
