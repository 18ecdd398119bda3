// Package tokensource provides the credentials Merge requests are
// authenticated with, and the transport that attaches them.
//
// Merge authenticates every request twice:
//   - Authorization: Bearer <production API key> identifies the organization
//   - X-Account-Token: <account token> selects the linked end-user account
//
// # Transport
//
// NewTransport wraps a base RoundTripper. The API key is sent through an
// oauth2.Transport backed by a static token source:
//
//	client := &http.Client{
//	  Transport: tokensource.NewTransport(nil, apiKey, accountToken),
//	}
//
// # Linking accounts
//
// An end user finishing Merge Link yields a short-lived public token. Use
// Exchanger to swap it for the permanent account token:
//
//	ex, err := tokensource.NewExchanger(baseURL, apiKey)
//	tok, err := ex.Exchange(ctx, publicToken)
//	// Save tok.AccountToken for future use
//
// # Stores
//
// Store persists credentials. EnvStore is read-only and reads
// MERGE_API_KEY and MERGE_ACCOUNT_TOKEN; FileStore writes a 0600 JSON file;
// KeyringStore uses the OS keychain.
package tokensource
