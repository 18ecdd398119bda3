package export

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accounting "github.com/florianilch/merge-accounting"
)

// fakeAPI serves two pages of accounts, one invoice and empty lists for the
// other models.
func fakeAPI(t *testing.T) *accounting.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()
		switch r.URL.Path {
		case "/accounts":
			if q.Get("cursor") == "" {
				_, _ = io.WriteString(w, `{"next":"p2","results":[
					{"id":"a1","remote_id":"100","name":"Cash","modified_at":"2024-02-01T00:00:00Z","x_vendor":"kept"},
					{"id":"a2","name":"Bank"}]}`)
				return
			}
			_, _ = io.WriteString(w, `{"next":null,"results":[{"id":"a3","name":"Receivables","remote_was_deleted":true}]}`)
		case "/invoices":
			if v := q.Get("modified_after"); v != "" {
				assert.Equal(t, "2024-01-01T00:00:00Z", v)
			}
			_, _ = io.WriteString(w, `{"next":null,"results":[{"id":"i1","contact":"c1","total_amount":12.5}]}`)
		default:
			_, _ = io.WriteString(w, `{"next":null,"results":[]}`)
		}
	}))
	t.Cleanup(srv.Close)
	return accounting.NewClient(
		accounting.WithBaseURL(srv.URL),
		accounting.WithAPIKey("k"),
		accounting.WithMaxRetries(0),
	)
}

func TestExporter_SQLite(t *testing.T) {
	ctx := context.Background()
	sink, err := NewSQLiteSink(ctx, ":memory:")
	require.NoError(t, err)
	defer func() { _ = sink.Close() }()

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := &Exporter{Client: fakeAPI(t), Sink: sink, BatchSize: 2, ModifiedAfter: &since}

	results, err := exp.Run(ctx, "Account", "Invoice", "Contact")
	require.NoError(t, err)
	assert.Equal(t, []Result{
		{Model: "Account", Records: 3},
		{Model: "Invoice", Records: 1},
		{Model: "Contact", Records: 0},
	}, results)

	var count int
	require.NoError(t, sink.DB().QueryRow(`SELECT COUNT(*) FROM records`).Scan(&count))
	assert.Equal(t, 4, count)

	var remoteID, modifiedAt, data string
	require.NoError(t, sink.DB().QueryRow(
		`SELECT remote_id, modified_at, data FROM records WHERE model = 'Account' AND id = 'a1'`,
	).Scan(&remoteID, &modifiedAt, &data))
	assert.Equal(t, "100", remoteID)
	assert.Equal(t, "2024-02-01T00:00:00Z", modifiedAt)
	assert.JSONEq(t,
		`{"id":"a1","remote_id":"100","name":"Cash","modified_at":"2024-02-01T00:00:00Z","x_vendor":"kept"}`,
		data)

	var deleted bool
	require.NoError(t, sink.DB().QueryRow(`SELECT deleted FROM records WHERE id = 'a3'`).Scan(&deleted))
	assert.True(t, deleted)

	// A second run replaces rows instead of duplicating them.
	_, err = exp.Run(ctx, "Account")
	require.NoError(t, err)
	require.NoError(t, sink.DB().QueryRow(`SELECT COUNT(*) FROM records`).Scan(&count))
	assert.Equal(t, 4, count)
}

func TestExporter_JSONL(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewJSONLSink(dir)
	require.NoError(t, err)

	exp := &Exporter{Client: fakeAPI(t), Sink: sink, Concurrency: 2}
	_, err = exp.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	f, err := os.Open(filepath.Join(dir, "account.jsonl"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line struct {
			Model string          `json:"model"`
			ID    string          `json:"id"`
			Data  json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		assert.Equal(t, "Account", line.Model)
		ids = append(ids, line.ID)
	}
	require.NoError(t, scanner.Err())
	assert.ElementsMatch(t, []string{"a1", "a2", "a3"}, ids)

	_, err = os.Stat(filepath.Join(dir, "invoice.jsonl"))
	assert.NoError(t, err)
}

func TestExporter_UnknownModel(t *testing.T) {
	exp := &Exporter{Client: fakeAPI(t), Sink: &JSONLSink{}}
	_, err := exp.Run(context.Background(), "Ledger")
	assert.ErrorContains(t, err, `unknown model "Ledger"`)
}

func TestExporter_APIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Invalid API key"}`)
	}))
	defer srv.Close()

	sink, err := NewSQLiteSink(context.Background(), ":memory:")
	require.NoError(t, err)
	defer func() { _ = sink.Close() }()

	exp := &Exporter{Client: accounting.NewClient(accounting.WithBaseURL(srv.URL)), Sink: sink}
	_, err = exp.Run(context.Background(), "Payment")

	var apiErr *accounting.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "exporting Payment")
}

func TestNewRecord(t *testing.T) {
	var inv accounting.Invoice
	require.NoError(t, json.Unmarshal([]byte(`{"id":"i1","remote_id":null,"custom":1}`), &inv))

	rec, err := NewRecord("Invoice", inv)
	require.NoError(t, err)
	assert.Equal(t, "i1", rec.ID)
	assert.Empty(t, rec.RemoteID)
	assert.JSONEq(t, `{"id":"i1","remote_id":null,"custom":1}`, string(rec.Data))

	_, err = NewRecord("Invoice", accounting.Invoice{})
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	sink, err := Open(ctx, "sqlite:"+filepath.Join(t.TempDir(), "out.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteSink{}, sink)
	require.NoError(t, sink.Close())

	sink, err = Open(ctx, "jsonl:"+t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &JSONLSink{}, sink)
	require.NoError(t, sink.Close())

	for _, target := range []string{"", "sqlite:", "s3://bucket", "nowhere"} {
		_, err := Open(ctx, target)
		assert.Error(t, err, target)
	}
}

func TestPostgresSink(t *testing.T) {
	dsn := os.Getenv("MERGEACCT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MERGEACCT_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	sink, err := NewPostgresSink(ctx, dsn)
	require.NoError(t, err)
	defer func() { _ = sink.Close() }()

	rec := Record{Model: "Test", ID: strings.ReplaceAll(t.Name(), "/", "_"), Data: json.RawMessage(`{"id":"x"}`)}
	require.NoError(t, sink.Write(ctx, []Record{rec, rec}))

	var data string
	require.NoError(t, sink.Pool.QueryRow(ctx,
		`SELECT data::text FROM merge_records WHERE model = $1 AND id = $2`, rec.Model, rec.ID).Scan(&data))
	assert.JSONEq(t, `{"id":"x"}`, data)
}
