package requestconfig

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florianilch/merge-accounting/codec"
)

type item struct {
	codec.Extras
	ID   string `json:"id"`
	Note *string `json:"note,omitempty"`
}

type staticQuery url.Values

func (q staticQuery) URLQuery() (url.Values, error) { return url.Values(q), nil }

func withBase(u string) RequestOption {
	return func(cfg *RequestConfig) error {
		base, err := url.Parse(u + "/")
		cfg.BaseURL = base
		return err
	}
}

func TestNewRequestConfig_Defaults(t *testing.T) {
	cfg, err := NewRequestConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL.String())
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryInterval)
	assert.NotNil(t, cfg.Logger)
	assert.NotNil(t, cfg.Header)
}

func TestExecute_MergesQueryWithoutAliasing(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = io.WriteString(w, `{"id":"x"}`)
	}))
	defer srv.Close()

	params := staticQuery{"expand": {"company"}}
	var res *item
	err := ExecuteNewRequest(context.Background(), http.MethodGet, "items", params, &res,
		withBase(srv.URL), WithQuery("expand", "contact"), WithQuery("is_debug_mode", "true"))
	require.NoError(t, err)

	assert.Equal(t, []string{"company", "contact"}, got["expand"])
	assert.Equal(t, "true", got.Get("is_debug_mode"))
	assert.Equal(t, []string{"company"}, params["expand"])
	require.NotNil(t, res)
	assert.Equal(t, "x", res.ID)
}

func TestExecute_SendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"id":"n1"}`, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var res item
	err := ExecuteNewRequest(context.Background(), http.MethodPost, "items", item{ID: "n1"}, &res, withBase(srv.URL))
	require.NoError(t, err)
	assert.Empty(t, res.ID)
}

func TestDecode(t *testing.T) {
	cfg, err := NewRequestConfig()
	require.NoError(t, err)

	var direct item
	require.NoError(t, cfg.decode([]byte(`{"id":"a"}`), &direct))
	assert.Equal(t, "a", direct.ID)

	var indirect *item
	require.NoError(t, cfg.decode([]byte(`{"id":"b","extra":1}`), &indirect))
	require.NotNil(t, indirect)
	assert.Equal(t, []string{"extra"}, indirect.ExtraKeys())

	var missing *item
	assert.Error(t, cfg.decode([]byte(`{"note":"n"}`), &missing))
	assert.Nil(t, missing)

	cfg.Lenient = true
	require.NoError(t, cfg.decode([]byte(`{"note":"n"}`), &missing))
	require.NotNil(t, missing.Note)
	assert.Equal(t, "n", *missing.Note)

	assert.Error(t, cfg.decode([]byte(`{}`), item{}))
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  int
		ok    bool
	}{
		{"", 0, false},
		{"3", 3, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0, false},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.value != "" {
			h.Set("Retry-After", tt.value)
		}
		got, ok := retryAfter(h)
		assert.Equal(t, tt.want, got, tt.value)
		assert.Equal(t, tt.ok, ok, tt.value)
	}
}
