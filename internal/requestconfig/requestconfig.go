// Package requestconfig builds and executes API requests: it resolves the
// options, renders query and body, authenticates, retries temporary
// failures and decodes the response with the codec.
package requestconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"github.com/florianilch/merge-accounting/codec"
	"github.com/florianilch/merge-accounting/internal/apierror"
	"github.com/florianilch/merge-accounting/internal/tokensource"
)

const (
	DefaultBaseURL = "https://api.merge.dev/api/accounting/v1/"
	userAgent      = "merge-accounting-go"
)

// RequestConfig holds everything needed to issue one request.
type RequestConfig struct {
	BaseURL       *url.URL
	HTTPClient    *http.Client
	APIKey        string
	AccountToken  string
	MaxRetries    int
	RetryInterval time.Duration
	Logger        *slog.Logger
	Lenient       bool
	Header        http.Header
	// Query is merged into the query string of every request.
	Query url.Values
}

// RequestOption mutates a RequestConfig. Options are applied in order.
type RequestOption func(*RequestConfig) error

// Querier is implemented by parameter types rendered into the query string.
type Querier interface {
	URLQuery() (url.Values, error)
}

// NewRequestConfig applies opts over the defaults.
func NewRequestConfig(opts ...RequestOption) (*RequestConfig, error) {
	base, err := url.Parse(DefaultBaseURL)
	if err != nil {
		return nil, err
	}
	cfg := &RequestConfig{
		BaseURL:       base,
		HTTPClient:    &http.Client{Timeout: 60 * time.Second},
		MaxRetries:    2,
		RetryInterval: 500 * time.Millisecond,
		Logger:        slog.Default(),
		Header:        http.Header{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithQuery adds query parameters.
func WithQuery(key, value string) RequestOption {
	return func(cfg *RequestConfig) error {
		if cfg.Query == nil {
			cfg.Query = url.Values{}
		}
		cfg.Query.Add(key, value)
		return nil
	}
}

// ExecuteNewRequest resolves opts and executes a single API call. params is
// either nil, url.Values, a Querier, or a request body encoded as JSON. res
// must be a pointer to a model or a pointer to a pointer to one.
func ExecuteNewRequest(ctx context.Context, method, path string, params any, res any, opts ...RequestOption) error {
	cfg, err := NewRequestConfig(opts...)
	if err != nil {
		return err
	}
	return cfg.Execute(ctx, method, path, params, res)
}

// Execute issues the request, retrying 408, 409, 429 and 5xx responses and
// transport errors with exponential backoff. A Retry-After header on a
// retryable response overrides the computed delay.
func (cfg *RequestConfig) Execute(ctx context.Context, method, path string, params any, res any) error {
	u, err := cfg.BaseURL.Parse(path)
	if err != nil {
		return fmt.Errorf("resolving path %q: %w", path, err)
	}

	var body []byte
	q := url.Values{}
	switch p := params.(type) {
	case nil:
	case url.Values:
		q = p
	case Querier:
		if q, err = p.URLQuery(); err != nil {
			return err
		}
	default:
		body, err = json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}
	if len(cfg.Query) > 0 {
		q = maps.Clone(q)
		if q == nil {
			q = url.Values{}
		}
		for k, vs := range cfg.Query {
			q[k] = append(slices.Clone(q[k]), vs...)
		}
	}
	u.RawQuery = q.Encode()

	client := *cfg.HTTPClient
	client.Transport = tokensource.NewTransport(client.Transport, cfg.APIKey, cfg.AccountToken)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.RetryInterval
	bo.MaxInterval = 30 * time.Second

	attempt := 0
	op := func() ([]byte, error) {
		attempt++
		requestID := uuid.NewString()
		req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header = cfg.Header.Clone()
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("X-Request-ID", requestID)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			cfg.Logger.DebugContext(ctx, "request failed",
				"method", method, "path", u.Path, "request_id", requestID, "attempt", attempt, "error", err)
			return nil, err
		}
		cfg.Logger.DebugContext(ctx, "request completed",
			"method", method,
			"path", u.Path,
			"status", resp.StatusCode,
			"request_id", requestID,
			"attempt", attempt,
			"duration", time.Since(start),
		)

		if resp.StatusCode >= http.StatusBadRequest {
			apiErr := apierror.FromResponse(resp, requestID)
			if !apiErr.Temporary() {
				return nil, backoff.Permanent(apiErr)
			}
			if secs, ok := retryAfter(resp.Header); ok {
				return nil, fmt.Errorf("%w (%w)", apiErr, backoff.RetryAfter(secs))
			}
			return nil, apiErr
		}

		defer func() { _ = resp.Body.Close() }()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}
		return data, nil
	}

	data, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(cfg.MaxRetries)+1),
	)
	if err != nil {
		var apiErr *apierror.Error
		if errors.As(err, &apiErr) {
			return apiErr
		}
		return err
	}

	if res == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return cfg.decode(data, res)
}

func (cfg *RequestConfig) decode(data []byte, res any) error {
	var opts []codec.Option
	if cfg.Lenient {
		opts = append(opts, codec.Lenient())
	}

	rv := reflect.ValueOf(res)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decoding response: %T is not a non-nil pointer", res)
	}
	if rv.Elem().Kind() != reflect.Pointer {
		return codec.Unmarshal(data, res, opts...)
	}
	target := reflect.New(rv.Elem().Type().Elem())
	if err := codec.Unmarshal(data, target.Interface(), opts...); err != nil {
		return err
	}
	rv.Elem().Set(target)
	return nil
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) (int, bool) {
	v := h.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	return secs, true
}
