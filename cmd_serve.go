package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"budget-engine/internal/engine"
	"budget-engine/internal/handler"
	"budget-engine/internal/model"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over HTTP",
	Long: `Starts the HTTP host:

  POST /calculate   derive a snapshot after applying edits
  GET  /healthz     liveness probe

The policy thresholds file, if configured, is reloaded when it changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := newRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	if cfg.Policy.ThresholdsFile != "" && cfg.Policy.WatchFile {
		go func() {
			if err := reg.Watch(ctx, cfg.Policy.ThresholdsFile); err != nil {
				logger.Warn("policy file watch stopped", zap.Error(err))
			}
		}()
	}

	defaults := model.CalculationOptions{
		Periods:            cfg.Projection.Periods,
		FirstFinancialYear: cfg.Projection.FirstFinancialYear,
	}
	h := handler.New(engine.New(formatter()), reg, defaults, cfg.GetRegistryTimeout(), logger)

	srv := &fasthttp.Server{
		Handler:            h.Handle,
		Name:               "budget-engine",
		ReadTimeout:        cfg.GetReadTimeout(),
		WriteTimeout:       cfg.GetWriteTimeout(),
		MaxRequestBodySize: cfg.Server.MaxBodyBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(":" + cfg.Server.Port)
	}()
	logger.Info("budget engine starting",
		zap.String("port", cfg.Server.Port),
		zap.String("registry_url", cfg.Policy.RegistryURL),
		zap.String("thresholds_file", cfg.Policy.ThresholdsFile))

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.ShutdownWithContext(shutdownCtx)
}
