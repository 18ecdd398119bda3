package apierror

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func response(status int, body string) *http.Response {
	u, _ := url.Parse("https://api.merge.dev/api/accounting/v1/invoices?cursor=abc")
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    &http.Request{Method: http.MethodGet, URL: u},
	}
}

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"detail", http.StatusNotFound, `{"detail":"Not found."}`, "Not found."},
		{"error", http.StatusBadRequest, `{"error":"Invalid account token."}`, "Invalid account token."},
		{"detail wins", http.StatusBadRequest, `{"detail":"a","error":"b"}`, "a"},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
		{"empty", http.StatusInternalServerError, ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromResponse(response(tt.status, tt.body), "req-1")

			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, http.MethodGet, err.Method)
			assert.Equal(t, "req-1", err.RequestID)
			assert.Equal(t, tt.wantDetail, err.Detail)
			assert.Equal(t, tt.body, string(err.Body))
		})
	}
}

func TestError_Error(t *testing.T) {
	err := FromResponse(response(http.StatusNotFound, `{"detail":"Not found."}`), "")
	assert.Equal(t,
		"merge: GET https://api.merge.dev/api/accounting/v1/invoices?cursor=abc: 404 Not Found: Not found.",
		err.Error())

	err = FromResponse(response(http.StatusServiceUnavailable, ``), "")
	assert.Equal(t,
		"merge: GET https://api.merge.dev/api/accounting/v1/invoices?cursor=abc: 503 Service Unavailable",
		err.Error())
}

func TestError_Temporary(t *testing.T) {
	for status, want := range map[int]bool{
		http.StatusBadRequest:          false,
		http.StatusUnauthorized:        false,
		http.StatusNotFound:            false,
		http.StatusRequestTimeout:      true,
		http.StatusConflict:            true,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusServiceUnavailable:  true,
	} {
		assert.Equal(t, want, (&Error{StatusCode: status}).Temporary(), "status %d", status)
	}
}
