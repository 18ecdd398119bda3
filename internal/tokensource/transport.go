package tokensource

import (
	"net/http"

	"golang.org/x/oauth2"
)

// AccountTokenHeader carries the linked account's token.
const AccountTokenHeader = "X-Account-Token"

// NewTransport returns base wrapped to send the API key as a bearer token and
// the account token in X-Account-Token. Empty credentials are not sent. A nil
// base means http.DefaultTransport.
func NewTransport(base http.RoundTripper, apiKey, accountToken string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	if accountToken != "" {
		rt = &AccountTokenTransport{Token: accountToken, Base: rt}
	}
	if apiKey == "" {
		return rt
	}
	return &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: apiKey,
			TokenType:   "Bearer",
		}),
		Base: rt,
	}
}

// AccountTokenTransport sets X-Account-Token on every request.
type AccountTokenTransport struct {
	Token string
	Base  http.RoundTripper
}

func (t *AccountTokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	r.Header.Set(AccountTokenHeader, t.Token)
	return t.base().RoundTrip(r)
}

func (t *AccountTokenTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
