package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexjbarnes/callback-redirect/internal/callback"
	"github.com/alexjbarnes/callback-redirect/internal/config"
	"github.com/alexjbarnes/callback-redirect/internal/diagnostic"
	"github.com/alexjbarnes/callback-redirect/internal/logging"
	"github.com/alexjbarnes/callback-redirect/internal/metrics"
	"github.com/alexjbarnes/callback-redirect/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

var Version = "dev"

func main() {
	// Handle inspect subcommand before config loading.
	if len(os.Args) > 1 && os.Args[1] == "inspect" {
		os.Exit(inspect(os.Args[2:], os.Stdout, os.Stderr))
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// inspect prints the diagnostic report for a landed callback URL. It
// returns 1 when the URL breaks query/fragment channel separation and 2
// on usage errors.
func inspect(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "json", "output format (json, yaml)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: callback-redirect inspect [--format json|yaml] <url>")
		return 2
	}

	report, err := diagnostic.Collect(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	if err := report.Render(stdout, *format); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	if !report.OK() {
		return 1
	}

	return 0
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment, cfg.LogLevel)
	logger.Info("callback-redirect starting",
		slog.String("version", Version),
		slog.String("canonical_origin", cfg.CanonicalOrigin()),
		slog.String("verify_path", cfg.VerifyPath),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	rec, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	normalizer := callback.NewNormalizer(callback.Options{
		CanonicalHost: cfg.CanonicalHost,
		DefaultPath:   cfg.DefaultPath,
		LoginPath:     cfg.LoginPath,
		CallbackPath:  cfg.CallbackPath,
	})

	router := server.NewRouter(server.RouterConfig{
		Normalizer: normalizer,
		Metrics:    rec,
		Logger:     logger,
		VerifyPath: cfg.VerifyPath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return serve(gctx, newHTTPServer(cfg.ListenAddr, router), logger.With(slog.String("listener", "redirect")))
	})

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return serve(gctx, newHTTPServer(cfg.MetricsAddr, server.NewMetricsMux(reg)), logger.With(slog.String("listener", "metrics")))
		})
	}

	return g.Wait()
}

func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("starting server", slog.String("listen", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}
