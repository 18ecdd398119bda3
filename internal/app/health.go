package app

import (
	"sync/atomic"

	"github.com/florianilch/merge-accounting/internal/webhook"
)

// Health tracks whether the receiver accepts deliveries. Safe for concurrent
// use.
type Health struct {
	ready atomic.Bool
}

var _ webhook.ReadinessChecker = (*Health)(nil)

// NewHealth returns a Health that is not ready yet.
func NewHealth() *Health {
	return &Health{}
}

// SetReady updates the state reported by the readiness endpoint.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady returns the current readiness state.
func (h *Health) IsReady() bool {
	return h.ready.Load()
}
