package tokensource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestNewTransport_SetsHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil, "key_123", "acct_456")}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "Bearer key_123", got.Get("Authorization"))
	assert.Equal(t, "acct_456", got.Get(AccountTokenHeader))
}

func TestNewTransport_SkipsEmptyCredentials(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil, "", "")}
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Empty(t, got.Get("Authorization"))
	assert.Empty(t, got.Get(AccountTokenHeader))
	assert.Empty(t, req.Header.Get(AccountTokenHeader), "caller's request must not be modified")
}

func TestExchanger_Exchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/accounting/v1/account-token/pub_tok", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"account_token":"acct_new","integration":{"name":"QuickBooks Online","slug":"quickbooks-online","is_in_beta":false}}`))
	}))
	defer srv.Close()

	ex, err := NewExchanger(srv.URL+"/api/accounting/v1", "key")
	require.NoError(t, err)

	tok, err := ex.Exchange(context.Background(), "pub_tok")
	require.NoError(t, err)
	assert.Equal(t, "acct_new", tok.AccountToken)
	require.NotNil(t, tok.Integration)
	assert.Equal(t, "QuickBooks Online", tok.Integration.Name)
	assert.Equal(t, []string{"is_in_beta"}, tok.Integration.ExtraKeys())
}

func TestExchanger_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ex, err := NewExchanger(srv.URL, "key")
	require.NoError(t, err)

	_, err = ex.Exchange(context.Background(), "")
	assert.EqualError(t, err, "public token cannot be empty")

	_, err = ex.Exchange(context.Background(), "expired")
	assert.EqualError(t, err, "exchange failed with status 404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ex.Exchange(ctx, "pub")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnvStore(t *testing.T) {
	env := map[string]string{"MERGE_API_KEY": "k", "MERGE_ACCOUNT_TOKEN": "a"}
	s := NewEnvStore()
	s.LookupEnv = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	c, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Credentials{APIKey: "k", AccountToken: "a"}, c)
	assert.ErrorIs(t, s.Write(context.Background(), c), ErrReadOnly)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s := &FileStore{Path: filepath.Join(t.TempDir(), "nested", "credentials.json")}

	c, err := s.Read(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	want := Credentials{APIKey: "k", AccountToken: "a"}
	require.NoError(t, s.Write(ctx, want))

	info, err := os.Stat(s.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	c, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, c)

	require.NoError(t, s.Write(ctx, Credentials{}))
	_, err = os.Stat(s.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()
	s := &KeyringStore{Service: "mergeacct-test", User: "default"}

	c, err := s.Read(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	want := Credentials{APIKey: "k"}
	require.NoError(t, s.Write(ctx, want))
	c, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, c)

	require.NoError(t, s.Write(ctx, Credentials{}))
	require.NoError(t, s.Write(ctx, Credentials{}))
	c, err = s.Read(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}
