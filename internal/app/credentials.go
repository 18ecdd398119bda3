package app

import (
	"context"
	"fmt"

	accounting "github.com/florianilch/merge-accounting"
	"github.com/florianilch/merge-accounting/internal/tokensource"
)

// CredentialStorageType selects where credentials are kept.
type CredentialStorageType string

const (
	CredentialStorageEnv     CredentialStorageType = "env"
	CredentialStorageFile    CredentialStorageType = "file"
	CredentialStorageKeyring CredentialStorageType = "keyring"
)

const keyringService = "mergeacct"

// NewCredentialStore opens the configured credential store. The env store is
// read-only.
func (c AuthConfig) NewCredentialStore() (tokensource.Store, error) {
	switch c.Storage {
	case CredentialStorageEnv:
		return tokensource.NewEnvStore(), nil
	case CredentialStorageFile:
		return &tokensource.FileStore{Path: c.File}, nil
	case CredentialStorageKeyring:
		return &tokensource.KeyringStore{Service: keyringService, User: "default"}, nil
	default:
		return nil, fmt.Errorf("unknown credential storage %q", c.Storage)
	}
}

// Credentials reads the stored credentials and applies the ones set in the
// config on top.
func (c AuthConfig) Credentials(ctx context.Context) (tokensource.Credentials, error) {
	store, err := c.NewCredentialStore()
	if err != nil {
		return tokensource.Credentials{}, err
	}
	creds, err := store.Read(ctx)
	if err != nil {
		return creds, err
	}
	if c.APIKey != "" {
		creds.APIKey = c.APIKey
	}
	if c.AccountToken != "" {
		creds.AccountToken = c.AccountToken
	}
	return creds, nil
}

// ClientOptions configures an API client from the config and credentials.
func (c *Config) ClientOptions(creds tokensource.Credentials) []accounting.RequestOption {
	opts := []accounting.RequestOption{
		accounting.WithBaseURL(c.API.BaseURL),
		accounting.WithAPIKey(creds.APIKey),
		accounting.WithAccountToken(creds.AccountToken),
		accounting.WithMaxRetries(c.API.MaxRetries),
		accounting.WithTimeout(c.API.Timeout),
	}
	if c.API.Lenient {
		opts = append(opts, accounting.WithLenientDecoding())
	}
	return opts
}
