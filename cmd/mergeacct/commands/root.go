// Package commands implements the mergeacct command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// Execute runs the root command with the given context and arguments.
func Execute(ctx context.Context, args []string, version, commit string) error {
	return newRootCommand(version, commit, os.Stdout).Run(ctx, args)
}

func newRootCommand(version, commit string, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "mergeacct",
		Usage:     "Merge Accounting API client",
		Version:   fmt.Sprintf("%s (%s)", version, commit),
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (TOML)",
				Sources: cli.EnvVars("MERGEACCT_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug|info|warn|error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (text|json)",
			},
		},
		Commands: []*cli.Command{
			authCommand(),
			getCommand(),
			listCommand(),
			accountCommand(),
			syncStatusCommand(),
			metaCommand(),
			createCommand(),
			updateCommand(),
			exportCommand(),
			listenCommand(),
		},
	}
}
