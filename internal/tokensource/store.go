package tokensource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

// ErrReadOnly is returned by stores that cannot be written.
var ErrReadOnly = errors.New("credential store is read-only")

// Credentials authenticate requests for one linked account.
type Credentials struct {
	APIKey       string `json:"api_key,omitempty"`
	AccountToken string `json:"account_token,omitempty"`
}

// IsZero reports whether no credential is set.
func (c Credentials) IsZero() bool {
	return c.APIKey == "" && c.AccountToken == ""
}

// Store persists credentials. Writing zero Credentials clears the store.
type Store interface {
	Read(ctx context.Context) (Credentials, error)
	Write(ctx context.Context, creds Credentials) error
}

// EnvStore reads credentials from environment variables.
type EnvStore struct {
	APIKeyVar       string
	AccountTokenVar string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// NewEnvStore reads MERGE_API_KEY and MERGE_ACCOUNT_TOKEN.
func NewEnvStore() *EnvStore {
	return &EnvStore{APIKeyVar: "MERGE_API_KEY", AccountTokenVar: "MERGE_ACCOUNT_TOKEN"}
}

func (s *EnvStore) Read(_ context.Context) (Credentials, error) {
	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var c Credentials
	c.APIKey, _ = lookup(s.APIKeyVar)
	c.AccountToken, _ = lookup(s.AccountTokenVar)
	return c, nil
}

func (s *EnvStore) Write(context.Context, Credentials) error {
	return ErrReadOnly
}

// FileStore keeps credentials in a JSON file readable only by its owner.
type FileStore struct {
	Path string
}

func (s *FileStore) Read(_ context.Context) (Credentials, error) {
	var c Credentials
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("reading credentials file: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing credentials file %s: %w", s.Path, err)
	}
	return c, nil
}

func (s *FileStore) Write(_ context.Context, creds Credentials) error {
	if creds.IsZero() {
		if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing credentials file: %w", err)
		}
		return nil
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}
	// Replace atomically: readers see the old file or the new one.
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing credentials file: %w", err)
	}
	return os.Rename(tmp, s.Path)
}

// KeyringStore keeps credentials in the OS keychain.
type KeyringStore struct {
	Service string
	User    string
}

func (s *KeyringStore) Read(_ context.Context) (Credentials, error) {
	var c Credentials
	secret, err := keyring.Get(s.Service, s.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("reading keyring: %w", err)
	}
	if err := json.Unmarshal([]byte(secret), &c); err != nil {
		return c, fmt.Errorf("parsing keyring entry: %w", err)
	}
	return c, nil
}

func (s *KeyringStore) Write(_ context.Context, creds Credentials) error {
	if creds.IsZero() {
		if err := keyring.Delete(s.Service, s.User); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("deleting keyring entry: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := keyring.Set(s.Service, s.User, string(data)); err != nil {
		return fmt.Errorf("writing keyring: %w", err)
	}
	return nil
}
