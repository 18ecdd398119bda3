package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/florianilch/merge-accounting/internal/webhook"
)

// shutdownTimeout bounds how long in-flight deliveries may take to finish.
const shutdownTimeout = 5 * time.Second

// App runs the webhook receiver until its context is canceled.
type App struct {
	addr   string
	health *Health
	server *webhook.Server
}

// New creates an App that passes deliveries to handler.
func New(cfg *Config, handler webhook.Handler, logger *slog.Logger) (*App, error) {
	health := NewHealth()
	opts := []webhook.Option{webhook.WithMaxBodyBytes(cfg.Webhook.MaxBodyBytes)}
	if logger != nil {
		opts = append(opts, webhook.WithLogger(logger, cfg.Log.Format))
	}
	server, err := webhook.New(cfg.Webhook.SignatureKey, handler, health, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook receiver: %w", err)
	}
	if cfg.Webhook.SignatureKey == "" {
		slog.Warn("webhook signature verification disabled", "hint", "set webhook.signature_key")
	}
	return &App{
		addr:   cfg.Webhook.Addr,
		health: health,
		server: server,
	}, nil
}

// Health exposes the readiness state served on /health/readiness.
func (a *App) Health() *Health {
	return a.health
}

// Start starts all services and blocks until ctx is canceled or a service
// fails, then shuts everything down.
func (a *App) Start(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	var shutdownFuncs []func(context.Context) error

	slog.InfoContext(gCtx, "starting webhook receiver")
	serverErrCh, err := a.server.Start(gCtx, a.addr)
	if err != nil {
		return fmt.Errorf("webhook receiver startup failed: %w", err)
	}
	shutdownFuncs = append(shutdownFuncs, a.server.Shutdown)
	a.health.SetReady(true)

	g.Go(func() error {
		select {
		case err, ok := <-serverErrCh:
			if ok && err != nil {
				slog.ErrorContext(gCtx, "webhook receiver runtime error", "error", err)
				return fmt.Errorf("webhook receiver: %w", err)
			}
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	runtimeErr := g.Wait()
	a.health.SetReady(false)

	slog.InfoContext(gCtx, "shutting down services")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if runtimeErr != nil {
		errs = append(errs, fmt.Errorf("runtime: %w", runtimeErr))
	}
	for i := len(shutdownFuncs) - 1; i >= 0; i-- {
		if err := shutdownFuncs[i](shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "service shutdown failed", "error", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	slog.Info("application stopped")
	return nil
}
