package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sportiq/internal/cfg"
	"sportiq/internal/dashboard"
	"sportiq/internal/metrics"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard and the metrics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cfg.Load()
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			setupLogging(c.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, c)
		},
	}
}

func serve(ctx context.Context, c cfg.Settings) error {
	a, err := newApp(c, metrics.New())
	if err != nil {
		return err
	}
	defer a.Close()

	var history dashboard.HistoryReader
	if a.store != nil {
		history = a.store
	}
	dash := dashboard.New(a.session, history, a.metrics, dashboard.Config{
		Port:            c.DashboardPort,
		FetchRatePerMin: c.FetchRatePerMin,
	})

	var metricsServer *http.Server
	if c.MetricsPort != 0 {
		metricsServer = newMetricsServer(c.MetricsPort)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(dash.Start)

	if metricsServer != nil {
		g.Go(func() error {
			log.Info().Str("address", metricsServer.Addr).Msg("Starting metrics server")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("metrics server failed: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := dash.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to stop dashboard")
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown metrics server")
			}
		}
		return nil
	})

	return g.Wait()
}

func newMetricsServer(port int) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
