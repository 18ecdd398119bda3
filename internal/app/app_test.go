package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accounting "github.com/florianilch/merge-accounting"
	"github.com/florianilch/merge-accounting/internal/export"
	"github.com/florianilch/merge-accounting/internal/webhook"
)

// recordingSink keeps written records in memory.
type recordingSink struct {
	records []export.Record
	err     error
}

func (s *recordingSink) Write(_ context.Context, records []export.Record) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, records...)
	return nil
}

func (s *recordingSink) Close() error { return nil }

func decode(t *testing.T, body string) *webhook.Event {
	t.Helper()
	ev, err := webhook.DecodeEvent([]byte(body))
	require.NoError(t, err)
	return ev
}

func TestStoreEvents(t *testing.T) {
	sink := &recordingSink{}
	h := StoreEvents(sink)
	ctx := context.Background()

	require.NoError(t, h.HandleEvent(ctx, decode(t, `{"hook":{"event":"Invoice.changed"},"data":{"id":"i1","memo":"m","vendor_field":1}}`)))
	require.NoError(t, h.HandleEvent(ctx, decode(t, `{"hook":{"event":"Contact.removed"},"data":{"id":"c1"}}`)))
	require.NoError(t, h.HandleEvent(ctx, decode(t, `{"hook":{"event":"LinkedAccount.sync_completed"},"data":{"id":"la1"}}`)))

	require.Len(t, sink.records, 2)
	assert.Equal(t, "Invoice", sink.records[0].Model)
	assert.Equal(t, "i1", sink.records[0].ID)
	assert.False(t, sink.records[0].Deleted)
	assert.JSONEq(t, `{"id":"i1","memo":"m","vendor_field":1}`, string(sink.records[0].Data))

	assert.Equal(t, "Contact", sink.records[1].Model)
	assert.True(t, sink.records[1].Deleted)
}

func TestStoreEvents_Errors(t *testing.T) {
	ctx := context.Background()

	err := StoreEvents(&recordingSink{}).HandleEvent(ctx, decode(t, `{"hook":{"event":"Payment.added"},"data":{"total_amount":3}}`))
	assert.ErrorContains(t, err, "without id")

	sink := &recordingSink{err: errors.New("disk full")}
	err = StoreEvents(sink).HandleEvent(ctx, decode(t, `{"hook":{"event":"Payment.added"},"data":{"id":"p1"}}`))
	assert.ErrorContains(t, err, "disk full")
}

func TestLogEvents(t *testing.T) {
	ev := &webhook.Event{Object: &accounting.Invoice{}}
	ev.Hook.Event = accounting.WebhookEventEnum("Invoice.added")
	assert.NoError(t, LogEvents().HandleEvent(context.Background(), ev))
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestApp_StartAndStop(t *testing.T) {
	cfg := &Config{
		Log:     LogConfig{Format: "text"},
		Webhook: WebhookConfig{Addr: freeAddr(t), MaxBodyBytes: 1 << 20},
	}
	a, err := New(cfg, LogEvents(), nil)
	require.NoError(t, err)
	assert.False(t, a.Health().IsReady())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.Webhook.Addr + "/health/readiness")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.False(t, a.Health().IsReady())
}

func TestApp_StartFailsOnBusyAddr(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	cfg := &Config{Webhook: WebhookConfig{Addr: ln.Addr().String(), MaxBodyBytes: 1 << 20}}
	a, err := New(cfg, LogEvents(), nil)
	require.NoError(t, err)

	err = a.Start(context.Background())
	assert.ErrorContains(t, err, "startup failed")
}
