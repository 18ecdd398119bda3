package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	accounting "github.com/florianilch/merge-accounting"
	"github.com/florianilch/merge-accounting/internal/app"
	"github.com/florianilch/merge-accounting/internal/observability"
)

// globalFlagKeys maps root flags to the config keys they override.
var globalFlagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
}

// loadConfig loads the config, applying set flags named in flagKeys and
// globalFlagKeys as overrides.
func loadConfig(path string, cmd *cli.Command, environ func() []string, flagKeys map[string]string) (*app.Config, error) {
	overrides := map[string]any{}
	for _, keys := range []map[string]string{globalFlagKeys, flagKeys} {
		for flag, key := range keys {
			if cmd.IsSet(flag) {
				overrides[key] = cmd.Value(flag)
			}
		}
	}
	return app.LoadConfig(path, environ, overrides)
}

// setup loads the config and installs logging. The returned function flushes
// logs and must be deferred.
func setup(ctx context.Context, cmd *cli.Command, flagKeys map[string]string) (*app.Config, func(), error) {
	cfg, err := loadConfig(cmd.String("config"), cmd, os.Environ, flagKeys)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := observability.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	shutdown, err := observability.Instrument(ctx, observability.Options{
		Level:    level,
		Format:   cfg.Log.Format,
		Exporter: cfg.Log.Exporter,
		Endpoint: cfg.Log.Endpoint,
		Output:   cmd.Root().ErrWriter,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up observability layer: %w", err)
	}
	return cfg, func() { _ = shutdown(context.WithoutCancel(ctx)) }, nil
}

var errNoAPIKey = errors.New("no API key configured: run 'mergeacct auth login' or set MERGE_API_KEY with auth.storage=env")

// newClient creates an API client from the config and stored credentials.
func newClient(ctx context.Context, cfg *app.Config) (*accounting.Client, error) {
	creds, err := cfg.Auth.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	if creds.APIKey == "" {
		return nil, errNoAPIKey
	}
	return accounting.NewClient(cfg.ClientOptions(creds)...), nil
}
