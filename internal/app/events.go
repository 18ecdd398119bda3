package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/florianilch/merge-accounting/internal/export"
	"github.com/florianilch/merge-accounting/internal/webhook"
)

// StoreEvents returns a handler that writes the object of each delivery to
// sink. Deliveries without a common model payload are only logged. Objects of
// ".removed" events are stored as deleted.
func StoreEvents(sink export.Sink) webhook.Handler {
	return webhook.HandlerFunc(func(ctx context.Context, ev *webhook.Event) error {
		if ev.Object == nil {
			slog.DebugContext(ctx, "skipping delivery without object", "event", ev.Hook.Event)
			return nil
		}
		model := ev.Hook.Event.Model()
		rec, err := export.NewRecord(model, ev.Object)
		if err != nil {
			return err
		}
		if strings.HasSuffix(string(ev.Hook.Event), ".removed") {
			rec.Deleted = true
		}
		if err := sink.Write(ctx, []export.Record{rec}); err != nil {
			return fmt.Errorf("storing %s %s: %w", model, rec.ID, err)
		}
		return nil
	})
}

// LogEvents returns a handler that only logs deliveries.
func LogEvents() webhook.Handler {
	return webhook.HandlerFunc(func(ctx context.Context, ev *webhook.Event) error {
		attrs := []any{"event", ev.Hook.Event}
		if ev.Object != nil {
			attrs = append(attrs, "object_id", ev.Object.Header().GetID())
		}
		if ev.Account != nil {
			if status, err := ev.Account.Status.Get(); err == nil {
				attrs = append(attrs, "account_status", status)
			}
		}
		slog.InfoContext(ctx, "webhook event", attrs...)
		return nil
	})
}
