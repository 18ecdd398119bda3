// Package webhook receives Merge webhook deliveries, verifies their
// signature and hands decoded events to a Handler.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/florianilch/merge-accounting/internal/observability/middleware"
)

// DeliveryPath is where Merge posts deliveries.
const DeliveryPath = "/webhooks/merge"

// Server serves the delivery endpoint and health checks.
type Server struct {
	handler http.Handler
	server  *http.Server
}

var _ http.Handler = (*Server)(nil)

type options struct {
	maxBodyBytes int64
	logger       *slog.Logger
	logFormat    string
}

// Option configures a Server.
type Option func(*options)

// WithMaxBodyBytes caps delivery bodies. The default is 1 MiB.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) { o.maxBodyBytes = n }
}

// WithLogger sets the request logger and its format (text or json).
func WithLogger(logger *slog.Logger, format string) Option {
	return func(o *options) {
		o.logger = logger
		o.logFormat = format
	}
}

// New creates a Server. Deliveries whose signature does not verify with
// signatureKey are rejected; an empty key disables verification.
func New(signatureKey string, handler Handler, health ReadinessChecker, opts ...Option) (*Server, error) {
	if handler == nil {
		return nil, errors.New("webhook handler cannot be nil")
	}
	if health == nil {
		return nil, errors.New("readiness checker cannot be nil")
	}
	o := options{maxBodyBytes: 1 << 20, logFormat: "text"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health/liveness", livenessHandler())
	mux.Handle("GET /health/readiness", readinessHandler(health))
	mux.Handle("POST "+DeliveryPath, &receiver{key: []byte(signatureKey), handler: handler})

	return &Server{
		handler: chain(mux,
			middleware.RequestIDGeneration,
			middleware.TraceContext(nil),
			middleware.Logging(o.logger, o.logFormat),
			middleware.RequestIDPropagation,
			Recovery,
			RequestSizeLimit(o.maxBodyBytes),
		),
	}, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Start listens on addr and serves in the background. Listen errors are
// returned directly; errors while serving are sent on the channel, which is
// closed when serving stops.
func (s *Server) Start(ctx context.Context, addr string) (<-chan error, error) {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	slog.InfoContext(ctx, "webhook receiver listening", "addr", ln.Addr().String(), "path", DeliveryPath)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh, nil
}

// Shutdown stops accepting deliveries and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
