// Package apierror defines the error returned for non-2xx API responses.
package apierror

import (
	"fmt"
	"io"
	"net/http"

	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
)

// maxBody caps how much of an error response body is kept.
const maxBody = 64 << 10

// Error is returned when the API answers with a 4xx or 5xx status.
type Error struct {
	StatusCode int
	Method     string
	URL        string
	// RequestID is the X-Request-ID the client sent with the failing attempt.
	RequestID string
	// Detail is the human-readable message from the response body, if any.
	Detail string
	Body   []byte
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("merge: %s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Temporary reports whether retrying the request may succeed.
func (e *Error) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusRequestTimeout ||
		e.StatusCode == http.StatusConflict ||
		e.StatusCode >= http.StatusInternalServerError
}

type errorBody struct {
	codec.Extras
	Detail nullable.Nullable[string] `json:"detail,omitempty"`
	Error  nullable.Nullable[string] `json:"error,omitempty"`
}

// FromResponse builds an Error from a failed response and closes its body.
func FromResponse(resp *http.Response, requestID string) *Error {
	defer func() { _ = resp.Body.Close() }()

	e := &Error{
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
	}
	if resp.Request != nil {
		e.Method = resp.Request.Method
		e.URL = resp.Request.URL.Redacted()
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil || len(body) == 0 {
		return e
	}
	e.Body = body

	var parsed errorBody
	if codec.Unmarshal(body, &parsed) == nil {
		if d, err := parsed.Detail.Get(); err == nil {
			e.Detail = d
		} else if d, err := parsed.Error.Get(); err == nil {
			e.Detail = d
		}
	}
	return e
}
