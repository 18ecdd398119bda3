package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/florianilch/merge-accounting/internal/app"
	"github.com/florianilch/merge-accounting/internal/export"
	"github.com/florianilch/merge-accounting/internal/webhook"
)

func listenCommand() *cli.Command {
	return &cli.Command{
		Name:  "listen",
		Usage: "Receive Merge webhook deliveries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (host:port)"},
			&cli.StringFlag{
				Name:    "sink",
				Usage:   "store delivered objects in sqlite:<path>, postgres://<dsn> or jsonl:<dir>",
				Sources: cli.EnvVars("MERGEACCT_SINK"),
			},
		},
		Action: listenAction,
	}
}

var listenFlagKeys = map[string]string{
	"addr": "webhook.addr",
}

func listenAction(ctx context.Context, cmd *cli.Command) error {
	cfg, done, err := setup(ctx, cmd, listenFlagKeys)
	if err != nil {
		return err
	}
	defer done()

	handler := app.LogEvents()
	if target := cmd.String("sink"); target != "" {
		sink, err := export.Open(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to open sink: %w", err)
		}
		defer func() { _ = sink.Close() }()
		handler = app.StoreEvents(sink)
	}

	application, err := app.New(cfg, handler, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create app: %w", err)
	}

	slog.InfoContext(ctx, "starting", "addr", cfg.Webhook.Addr, "path", webhook.DeliveryPath)
	if err := application.Start(ctx); err != nil {
		return fmt.Errorf("app failed: %w", err)
	}

	slog.InfoContext(ctx, "stopped gracefully")
	return nil
}
