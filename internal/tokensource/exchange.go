package tokensource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
)

// AccountToken is the answer to a public token exchange.
type AccountToken struct {
	codec.Extras
	AccountToken string       `json:"account_token"`
	Integration  *Integration `json:"integration"`
}

// Integration names the third-party platform an account is linked to.
type Integration struct {
	codec.Extras
	Name       string                    `json:"name"`
	Slug       nullable.Nullable[string] `json:"slug,omitempty"`
	Categories []string                  `json:"categories,omitempty"`
	Image      nullable.Nullable[string] `json:"image,omitempty"`
	Color      nullable.Nullable[string] `json:"color,omitempty"`
}

// Exchanger swaps Merge Link public tokens for account tokens.
type Exchanger struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
}

// NewExchanger creates an Exchanger for the given API base URL.
func NewExchanger(baseURL, apiKey string) (*Exchanger, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &Exchanger{
		baseURL: u,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: NewTransport(nil, apiKey, ""),
		},
	}, nil
}

// Exchange completes account linking. The public token is single use.
func (e *Exchanger) Exchange(ctx context.Context, publicToken string) (*AccountToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if publicToken == "" {
		return nil, errors.New("public token cannot be empty")
	}
	if e.apiKey == "" {
		return nil, errors.New("exchanging a public token requires an API key")
	}

	u := e.baseURL.JoinPath("account-token", url.PathEscape(publicToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating exchange request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading exchange response: %w", err)
	}
	var token AccountToken
	if err := codec.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("decoding exchange response: %w", err)
	}
	return &token, nil
}
