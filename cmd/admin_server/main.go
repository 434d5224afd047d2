package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/Avi18971911/softscanner-admin/internal/auth"
	"github.com/Avi18971911/softscanner-admin/internal/backend/client"
	"github.com/Avi18971911/softscanner-admin/internal/backend/service"
	"github.com/Avi18971911/softscanner-admin/internal/config"
	"github.com/Avi18971911/softscanner-admin/internal/logging"
	"github.com/Avi18971911/softscanner-admin/internal/metrics"
	"github.com/Avi18971911/softscanner-admin/internal/server/router"
	"github.com/Avi18971911/softscanner-admin/internal/server/view"
	"github.com/Avi18971911/softscanner-admin/internal/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

const tracerName = "soft-scanner-frontend"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "admin_server",
		Short:        "SoftScanner admin UI",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand())
	return root
}

func newServeCommand() *cobra.Command {
	var listenAddr, backendURL, exporter, endpoint string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("listen") {
				cfg.ListenAddr = listenAddr
			}
			if flags.Changed("backend") {
				cfg.BackendURL = backendURL
			}
			if flags.Changed("trace-exporter") {
				cfg.TraceExporter = exporter
			}
			if flags.Changed("trace-endpoint") {
				cfg.TraceEndpoint = endpoint
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on (overrides ADMIN_LISTEN_ADDR)")
	cmd.Flags().StringVar(&backendURL, "backend", "", "backend base url (overrides ADMIN_BACKEND_URL)")
	cmd.Flags().StringVar(&exporter, "trace-exporter", "", "span exporter (overrides ADMIN_TRACE_EXPORTER)")
	cmd.Flags().StringVar(&endpoint, "trace-endpoint", "", "collector endpoint (overrides ADMIN_TRACE_ENDPOINT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	provider, err := tracing.NewProvider(ctx, tracing.Config{
		Exporter:       cfg.TraceExporter,
		Endpoint:       cfg.TraceEndpoint,
		Insecure:       cfg.TraceInsecure,
		SampleRatio:    cfg.TraceSample,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Observer:       m,
	}, logger)
	if err != nil {
		return fmt.Errorf("unable to start tracing: %w", err)
	}
	tracer := provider.Tracer(tracerName)

	c := client.NewRestyClient(client.Config{
		BaseURL:   cfg.BackendURL,
		Timeout:   cfg.BackendTimeout,
		Transport: provider.Transport(http.DefaultTransport),
	}, logger)

	cache, err := auth.NewSessionCache()
	if err != nil {
		return err
	}
	defer cache.Close()
	sessions := auth.NewSessions(
		auth.NewCacheStore(cache, cfg.SessionTTL, logger),
		auth.CookieConfig{Name: cfg.SessionCookie, Secure: cfg.CookieSecure},
		logger,
	)
	guard := auth.NewGuard(sessions, logger, auth.WithRedirectHook(m.GuardRedirection.Inc))

	views, err := view.NewRenderer(logger)
	if err != nil {
		return err
	}

	r := router.CreateRouter(
		router.Services{
			Users:    service.NewUserServiceImpl(c),
			Products: service.NewProductServiceImpl(c),
			Store:    service.NewStoreServiceImpl(c),
		},
		sessions,
		guard,
		views,
		router.Observability{
			Tracer:       tracer,
			Metrics:      m,
			Gatherer:     registry,
			AccessLogger: logging.NewAccessLogger(os.Stdout),
		},
		logger,
	)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: provider.Handler(r, "admin-ui"),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting webserver", zap.String("addr", cfg.ListenAddr), zap.String("backend", cfg.BackendURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("webserver stopped: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down webserver")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error encountered during webserver shutdown", zap.Error(err))
		}
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error encountered during tracer shutdown", zap.Error(err))
		}
		return nil
	})
	return g.Wait()
}
