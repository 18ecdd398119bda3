package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/httplog/v3"
)

// Logging writes one record per request. Successful health checks are not
// logged. Bodies are never logged and only non-sensitive headers are.
func Logging(logger *slog.Logger, format string) func(http.Handler) http.Handler {
	schema := httplog.SchemaECS
	if format == "text" {
		schema = schema.Concise(true)
	}
	return httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: schema,
		Skip: func(r *http.Request, status int) bool {
			return strings.HasPrefix(r.URL.Path, "/health/") && status < http.StatusBadRequest
		},
		LogRequestHeaders:  []string{"Content-Type", "User-Agent"},
		LogResponseHeaders: []string{},
		// Recovery handles panics; httplog still logs them.
		RecoverPanics: false,
	})
}

// SetLogAttrs adds attributes to the current request's log record. It is a
// no-op outside Logging.
func SetLogAttrs(ctx context.Context, attrs ...slog.Attr) {
	httplog.SetAttrs(ctx, attrs...)
}
