package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/observability"
)

// ServeOptions contains the configuration for the Serve command.
type ServeOptions struct {
	Port    string
	Timeout time.Duration
	Debug   bool
	Store   StoreOptions
}

// Serve runs the HTTP API until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := serviceLogger(opts.Debug)

	store, closeStore, err := openStore(ctx, opts.Store, logger)
	if err != nil {
		return &ExitError{Code: ExitConfig, Err: err}
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	handler := httpAdapter.NewHandler(store,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithTimeout(opts.Timeout),
		httpAdapter.WithHooks(observability.Combine(metrics.Hooks(), observability.LogHooks(logger))),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	srv := &http.Server{
		Addr:              ":" + opts.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting turing server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down")

		// Give outstanding runs a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("failed to stop server: %w", err)
			}
		}
		logger.Info("server stopped gracefully")
		return nil
	}
}
