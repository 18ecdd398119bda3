package accounting

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/florianilch/merge-accounting/internal/requestconfig"
)

// RequestOption adjusts how a request is made. Options given to NewClient
// apply to every request; options given to a method apply to that call only
// and are applied last.
type RequestOption = requestconfig.RequestOption

// WithBaseURL overrides the API base URL, e.g. for the EU region
// "https://api-eu.merge.dev/api/accounting/v1/".
func WithBaseURL(base string) RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("parsing base URL: %w", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		cfg.BaseURL = u
		return nil
	}
}

// WithAPIKey sets the production API key sent as a bearer token.
func WithAPIKey(key string) RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		cfg.APIKey = key
		return nil
	}
}

// WithAccountToken selects the linked account requests act on.
func WithAccountToken(token string) RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		cfg.AccountToken = token
		return nil
	}
}

// WithHTTPClient sets the client requests are sent with. Its transport is
// wrapped to add authentication.
func WithHTTPClient(client *http.Client) RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		if client == nil {
			return errors.New("http client cannot be nil")
		}
		cfg.HTTPClient = client
		return nil
	}
}

// WithTransport sets the round tripper requests are sent with, keeping the
// rest of the HTTP client.
func WithTransport(rt http.RoundTripper) RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		client := *cfg.HTTPClient
		client.Transport = rt
		cfg.HTTPClient = &client
		return nil
	}
}

// WithTimeout limits each attempt of a request, including reading the
// response. Zero means no limit.
func WithTimeout(d time.Duration) RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		if d < 0 {
			return fmt.Errorf("timeout cannot be negative, got %s", d)
		}
		client := *cfg.HTTPClient
		client.Timeout = d
		cfg.HTTPClient = &client
		return nil
	}
}

// WithMaxRetries sets how often a request failing with 408, 409, 429, 5xx or
// a transport error is retried. The default is 2.
func WithMaxRetries(n int) RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		if n < 0 {
			return fmt.Errorf("max retries cannot be negative, got %d", n)
		}
		cfg.MaxRetries = n
		return nil
	}
}

// WithRetryInterval sets the initial delay between retries.
func WithRetryInterval(d time.Duration) RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		cfg.RetryInterval = d
		return nil
	}
}

// WithLogger sets the logger request diagnostics go to, at debug level.
func WithLogger(logger *slog.Logger) RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		cfg.Logger = logger
		return nil
	}
}

// WithLenientDecoding lets responses missing required fields decode to zero
// values instead of failing.
func WithLenientDecoding() RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		cfg.Lenient = true
		return nil
	}
}

// WithHeader sets an additional request header.
func WithHeader(key, value string) RequestOption {
	return func(cfg *requestconfig.RequestConfig) error {
		cfg.Header.Set(key, value)
		return nil
	}
}
