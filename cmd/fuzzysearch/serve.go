package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-fuzzy-search/api"
	"github.com/gcbaptista/go-fuzzy-search/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	addr            string
	maxRequestBytes int64
}

func newServeCmd(global *globalOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Long: `Serve the search API over HTTP.

Examples:
  fuzzysearch serve -d records.yaml                 # Start server on :8080
  fuzzysearch serve -d records.yaml --addr :9000    # Start server on port 9000
  fuzzysearch serve -d records.json -c search.toml  # Use a settings file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "address to listen on")
	cmd.Flags().Int64Var(&opts.maxRequestBytes, "max-request-bytes", api.DefaultMaxRequestBytes, "maximum request body size")
	return cmd
}

func runServe(ctx context.Context, global *globalOptions, opts *serveOptions) error {
	log := logger.New("server")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	eng, err := buildEngine(global, reg)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, api.Config{
		Engine:          eng,
		Gatherer:        reg,
		Metrics:         eng.Metrics(),
		Logger:          logger.New("api"),
		MaxRequestBytes: opts.maxRequestBytes,
	})

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", "addr", opts.addr, "records", eng.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
