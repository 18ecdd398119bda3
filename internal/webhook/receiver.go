package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/florianilch/merge-accounting/internal/observability/middleware"
)

// Handler processes verified, decoded deliveries. Returning an error answers
// the delivery with 500 so that Merge retries it.
type Handler interface {
	HandleEvent(ctx context.Context, ev *Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, ev *Event) error

func (f HandlerFunc) HandleEvent(ctx context.Context, ev *Event) error {
	return f(ctx, ev)
}

type receiver struct {
	key     []byte
	handler Handler
}

func (h *receiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			slog.WarnContext(ctx, "delivery exceeds size limit", "limit_bytes", maxBytesErr.Limit)
			writeError(ctx, w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		slog.ErrorContext(ctx, "failed to read delivery", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "unreadable body")
		return
	}

	if len(h.key) > 0 && !Verify(h.key, body, r.Header.Get(SignatureHeader)) {
		slog.WarnContext(ctx, "rejected delivery with invalid signature")
		writeError(ctx, w, http.StatusUnauthorized, "invalid signature")
		return
	}

	ev, err := DecodeEvent(body)
	if err != nil {
		slog.WarnContext(ctx, "failed to decode delivery", "error", err)
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	attrs := []slog.Attr{slog.String("event", string(ev.Hook.Event))}
	if ev.Object != nil {
		attrs = append(attrs, slog.String("object_id", ev.Object.Header().GetID()))
	}
	if keys := ev.ExtraKeys(); len(keys) > 0 {
		attrs = append(attrs, slog.Any("extra_keys", keys))
	}
	middleware.SetLogAttrs(ctx, attrs...)
	if !ev.Hook.Event.IsKnown() {
		slog.InfoContext(ctx, "received unknown event", "event", ev.Hook.Event)
	}

	if err := h.handler.HandleEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "webhook handler failed", "event", ev.Hook.Event, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "handler failed")
		return
	}
	writeJSON(ctx, w, http.StatusOK, statusResponse{Status: "received"})
}
