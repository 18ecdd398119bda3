package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/florianilch/merge-accounting/internal/export"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Copy common model objects into a database or files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "sink",
				Usage:    "target: sqlite:<path>, postgres://<dsn> or jsonl:<dir>",
				Sources:  cli.EnvVars("MERGEACCT_SINK"),
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "models",
				Usage: "models to export (default: all of " + strings.Join(export.Models(), ", ") + ")",
			},
			&cli.TimestampFlag{
				Name:   "modified-after",
				Usage:  "only objects modified after this time (RFC 3339)",
				Config: cli.TimestampConfig{Layouts: []string{time.RFC3339}},
			},
			&cli.BoolFlag{Name: "include-deleted", Usage: "include objects deleted in the third-party platform"},
			&cli.IntFlag{Name: "concurrency", Usage: "models exported at once"},
			&cli.IntFlag{Name: "page-size", Usage: "results per page (1-100)"},
		},
		Action: exportAction,
	}
}

var exportFlagKeys = map[string]string{
	"concurrency": "export.concurrency",
	"page-size":   "export.page_size",
}

func exportAction(ctx context.Context, cmd *cli.Command) (err error) {
	cfg, done, err := setup(ctx, cmd, exportFlagKeys)
	if err != nil {
		return err
	}
	defer done()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	sink, err := export.Open(ctx, cmd.String("sink"))
	if err != nil {
		return fmt.Errorf("failed to open sink: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close sink: %w", cerr)
		}
	}()

	exporter := &export.Exporter{
		Client:         client,
		Sink:           sink,
		Concurrency:    cfg.Export.Concurrency,
		PageSize:       cfg.Export.PageSize,
		IncludeDeleted: cmd.Bool("include-deleted"),
	}
	if cmd.IsSet("modified-after") {
		t := cmd.Timestamp("modified-after")
		exporter.ModifiedAfter = &t
	}

	results, err := exporter.Run(ctx, cmd.StringSlice("models")...)
	for _, r := range results {
		fmt.Fprintf(cmd.Root().Writer, "%-18s %d\n", r.Model, r.Records)
	}
	return err
}
