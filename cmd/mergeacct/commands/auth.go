package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/florianilch/merge-accounting/internal/app"
	"github.com/florianilch/merge-accounting/internal/tokensource"
)

// authCommand returns the 'auth' subcommand for managing credentials.
func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Merge credentials",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Save an API key and account token",
				Action: authLoginAction,
			},
			{
				Name:      "link",
				Usage:     "Exchange a Merge Link public token for an account token and save it",
				ArgsUsage: "<public-token>",
				Action:    authLinkAction,
			},
			{
				Name:   "logout",
				Usage:  "Clear saved credentials",
				Action: authLogoutAction,
			},
			{
				Name:   "status",
				Usage:  "Show which credentials are configured",
				Action: authStatusAction,
			},
		},
	}
}

// writableStore opens the configured store, refusing the read-only env store.
func writableStore(cfg *app.Config) (tokensource.Store, error) {
	if cfg.Auth.Storage == app.CredentialStorageEnv {
		return nil, errors.New("cannot change credentials with env storage (read-only). Configure file or keyring storage")
	}
	store, err := cfg.Auth.NewCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to create credential store: %w", err)
	}
	return store, nil
}

func authLoginAction(ctx context.Context, cmd *cli.Command) error {
	cfg, done, err := setup(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer done()

	store, err := writableStore(cfg)
	if err != nil {
		return err
	}

	apiKey, err := readSecureInput(ctx, "API key: ")
	if err != nil {
		return err
	}
	if apiKey == "" {
		return errors.New("API key cannot be empty")
	}
	accountToken, err := readSecureInput(ctx, "Account token (empty to link later): ")
	if err != nil {
		return err
	}

	creds := tokensource.Credentials{APIKey: apiKey, AccountToken: accountToken}
	if err := store.Write(ctx, creds); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	fmt.Fprintln(cmd.Root().Writer, "Credentials saved to", cfg.Auth.Storage, "storage")
	if accountToken == "" {
		fmt.Fprintln(cmd.Root().Writer, "Run 'mergeacct auth link <public-token>' to link an account")
	}
	return nil
}

func authLinkAction(ctx context.Context, cmd *cli.Command) error {
	publicToken := cmd.Args().First()
	if publicToken == "" {
		return errors.New("public token cannot be empty")
	}

	cfg, done, err := setup(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer done()

	store, err := writableStore(cfg)
	if err != nil {
		return err
	}
	creds, err := cfg.Auth.Credentials(ctx)
	if err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	if creds.APIKey == "" {
		return errNoAPIKey
	}

	exchanger, err := tokensource.NewExchanger(cfg.API.BaseURL, creds.APIKey)
	if err != nil {
		return err
	}
	token, err := exchanger.Exchange(ctx, publicToken)
	if err != nil {
		return fmt.Errorf("failed to exchange public token: %w", err)
	}

	creds.AccountToken = token.AccountToken
	if err := store.Write(ctx, creds); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	integration := "account"
	if token.Integration != nil && token.Integration.Name != "" {
		integration = token.Integration.Name
	}
	fmt.Fprintf(cmd.Root().Writer, "Linked %s; account token saved to %s storage\n", integration, cfg.Auth.Storage)
	return nil
}

func authLogoutAction(ctx context.Context, cmd *cli.Command) error {
	cfg, done, err := setup(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer done()

	store, err := writableStore(cfg)
	if err != nil {
		return err
	}
	if err := store.Write(ctx, tokensource.Credentials{}); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	fmt.Fprintln(cmd.Root().Writer, "Credentials cleared from", cfg.Auth.Storage, "storage")
	return nil
}

func authStatusAction(ctx context.Context, cmd *cli.Command) error {
	cfg, done, err := setup(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer done()

	creds, err := cfg.Auth.Credentials(ctx)
	if err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	w := cmd.Root().Writer
	fmt.Fprintln(w, "Storage:      ", cfg.Auth.Storage)
	fmt.Fprintln(w, "API key:      ", mask(creds.APIKey))
	fmt.Fprintln(w, "Account token:", mask(creds.AccountToken))
	return nil
}

// mask shows only the last four characters of a secret.
func mask(secret string) string {
	switch {
	case secret == "":
		return "not set"
	case len(secret) <= 8:
		return strings.Repeat("*", len(secret))
	default:
		return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
	}
}

// readSecureInput reads a line without echo. term.ReadPassword ignores
// context cancellation, so it runs in its own goroutine.
func readSecureInput(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	type result struct {
		value string
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		input, err := term.ReadPassword(int(os.Stdin.Fd()))
		resultCh <- result{value: strings.TrimSpace(string(input)), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultCh:
		if res.err != nil {
			return "", fmt.Errorf("failed to read input: %w", res.err)
		}
		return res.value, nil
	}
}
