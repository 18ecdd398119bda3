// Package observability sets up process-wide logging: a stdout slog handler
// and, optionally, an OpenTelemetry log pipeline fed from the same records.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/processors/minsev"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
)

// ServiceName identifies this process in exported logs.
const ServiceName = "mergeacct"

// Exporter names accepted in Options.
const (
	ExporterNone     = "none"
	ExporterStdout   = "stdout"
	ExporterOTLPHTTP = "otlp-http"
	ExporterOTLPGRPC = "otlp-grpc"
)

type Options struct {
	Level  slog.Level
	Format string
	// Exporter additionally ships records through OpenTelemetry.
	Exporter string
	// Endpoint is the OTLP collector as host:port or URL. Empty uses the
	// OTEL_EXPORTER_OTLP_* environment variables.
	Endpoint string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// ShutdownFunc flushes and stops the log pipeline.
type ShutdownFunc func(context.Context) error

// Instrument installs the default slog logger and the W3C trace context
// propagator. The returned ShutdownFunc must be called before exit.
func Instrument(ctx context.Context, opts Options) (ShutdownFunc, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handler, err := newStdoutHandler(out, opts.Level, opts.Format)
	if err != nil {
		return nil, err
	}

	shutdown := func(context.Context) error { return nil }
	if opts.Exporter != "" && opts.Exporter != ExporterNone {
		provider, err := newLoggerProvider(ctx, opts)
		if err != nil {
			return nil, err
		}
		global.SetLoggerProvider(provider)
		otelHandler := otelslog.NewHandler(ServiceName, otelslog.WithLoggerProvider(provider))
		handler = fanout{handler, otelHandler}
		shutdown = provider.Shutdown
	}

	otel.SetTextMapPropagator(propagation.TraceContext{})
	slog.SetDefault(slog.New(newTraceContextHandler(handler)))

	return shutdown, nil
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unsupported log level %q (expected: debug, info, warn, error)", s)
	}
	return level, nil
}

// newStdoutHandler creates a handler for human-readable logs.
func newStdoutHandler(w io.Writer, level slog.Level, logFormat string) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch strings.ToLower(logFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unsupported log format %q (expected: json, text)", logFormat)
	}

	return handler, nil
}

func newLoggerProvider(ctx context.Context, opts Options) (*sdklog.LoggerProvider, error) {
	exporter, err := newExporter(ctx, opts.Exporter, opts.Endpoint)
	if err != nil {
		return nil, err
	}
	processor := minsev.NewLogProcessor(sdklog.NewBatchProcessor(exporter), severity(opts.Level))
	return sdklog.NewLoggerProvider(
		sdklog.WithProcessor(processor),
		sdklog.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
	), nil
}

func newExporter(ctx context.Context, name, endpoint string) (sdklog.Exporter, error) {
	isURL := strings.Contains(endpoint, "://")
	switch name {
	case ExporterStdout:
		return stdoutlog.New()
	case ExporterOTLPHTTP:
		var opts []otlploghttp.Option
		switch {
		case isURL:
			opts = append(opts, otlploghttp.WithEndpointURL(endpoint))
		case endpoint != "":
			opts = append(opts, otlploghttp.WithEndpoint(endpoint), otlploghttp.WithInsecure())
		}
		return otlploghttp.New(ctx, opts...)
	case ExporterOTLPGRPC:
		var opts []otlploggrpc.Option
		switch {
		case isURL:
			opts = append(opts, otlploggrpc.WithEndpointURL(endpoint))
		case endpoint != "":
			opts = append(opts, otlploggrpc.WithEndpoint(endpoint), otlploggrpc.WithInsecure())
		}
		return otlploggrpc.New(ctx, opts...)
	default:
		return nil, errors.New("unsupported log exporter " + name + " (expected: none, stdout, otlp-http, otlp-grpc)")
	}
}

func severity(level slog.Level) minsev.Severity {
	switch {
	case level <= slog.LevelDebug:
		return minsev.SeverityDebug
	case level <= slog.LevelInfo:
		return minsev.SeverityInfo
	case level <= slog.LevelWarn:
		return minsev.SeverityWarn
	default:
		return minsev.SeverityError
	}
}
