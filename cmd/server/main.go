package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pauljones0/garden-stock-bot/internal/app"
	"github.com/pauljones0/garden-stock-bot/internal/config"
	"github.com/pauljones0/garden-stock-bot/internal/processor"
	"github.com/pauljones0/garden-stock-bot/internal/server"
)

func main() {
	slog.Info("Starting Garden Stock Bot server...")
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	a, err := app.Build(ctx, cfg)
	if err != nil {
		slog.Error("Critical error initializing stock checker", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.New(a.Processor, cfg.CronSecret, cfg.Production).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening on port", "port", cfg.Port, "production", cfg.Production)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if cfg.CheckInterval > 0 {
		g.Go(func() error {
			runTicker(gctx, a.Processor, cfg.CheckInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Server exited with error", "error", err)
		a.Close()
		os.Exit(1)
	}
	slog.Info("Server stopped.")
}

// runTicker runs a cycle immediately and then every interval until ctx ends.
func runTicker(ctx context.Context, p processor.Processor, interval time.Duration) {
	slog.Info("Scheduled stock checks enabled", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		status, err := p.CheckStock(ctx)
		if err != nil {
			slog.Error("Scheduled stock check failed", "status", status, "error", err)
		} else {
			slog.Info("Scheduled stock check complete", "status", status)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
