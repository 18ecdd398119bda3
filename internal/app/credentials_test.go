package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accounting "github.com/florianilch/merge-accounting"
	"github.com/florianilch/merge-accounting/internal/tokensource"
)

func TestNewCredentialStore(t *testing.T) {
	tests := []struct {
		storage CredentialStorageType
		want    any
	}{
		{CredentialStorageEnv, &tokensource.EnvStore{}},
		{CredentialStorageFile, &tokensource.FileStore{}},
		{CredentialStorageKeyring, &tokensource.KeyringStore{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.storage), func(t *testing.T) {
			store, err := AuthConfig{Storage: tt.storage, File: "creds.json"}.NewCredentialStore()
			require.NoError(t, err)
			assert.IsType(t, tt.want, store)
		})
	}

	_, err := AuthConfig{Storage: "vault"}.NewCredentialStore()
	assert.Error(t, err)
}

func TestCredentials_ConfigOverridesStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_key":"stored-key","account_token":"stored-token"}`), 0o600))

	auth := AuthConfig{Storage: CredentialStorageFile, File: path}
	creds, err := auth.Credentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tokensource.Credentials{APIKey: "stored-key", AccountToken: "stored-token"}, creds)

	auth.AccountToken = "flag-token"
	creds, err = auth.Credentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored-key", creds.APIKey)
	assert.Equal(t, "flag-token", creds.AccountToken)
}

func TestClientOptions(t *testing.T) {
	var gotAuth, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotToken = r.Header.Get(tokensource.AccountTokenHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"acc"}`))
	}))
	defer srv.Close()

	cfg := &Config{API: APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second, MaxRetries: 1, Lenient: true}}
	client := accounting.NewClient(cfg.ClientOptions(tokensource.Credentials{APIKey: "k", AccountToken: "t"})...)

	details, err := client.AccountDetails.Get(context.Background())
	require.NoError(t, err)
	id, err := details.ID.Get()
	require.NoError(t, err)
	assert.Equal(t, "acc", id)
	assert.Equal(t, "Bearer k", gotAuth)
	assert.Equal(t, "t", gotToken)
}
