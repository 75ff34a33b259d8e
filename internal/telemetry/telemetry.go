// Package telemetry installs the OpenTelemetry providers used by oasguard.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/erraggy/oasguard/internal/logging"
)

// InstrumentationName scopes the tracer and meter.
const InstrumentationName = "github.com/erraggy/oasguard"

// Config selects the exporter.
type Config struct {
	// Endpoint is the OTLP/gRPC collector address. Empty disables export.
	Endpoint string
	// Insecure disables TLS towards the collector.
	Insecure bool
	// ServiceName defaults to "oasguard".
	ServiceName string
	// ServiceVersion is reported as service.version.
	ServiceVersion string
}

// ShutdownFunc flushes and stops the providers installed by Init.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init installs an OTLP trace exporter as the global tracer provider when
// cfg.Endpoint is set. Without an endpoint the global no-op providers stay in
// place and the returned ShutdownFunc does nothing.
func Init(ctx context.Context, cfg Config, logger logging.Logger) (ShutdownFunc, error) {
	logger = logging.OrNop(logger)
	if cfg.Endpoint == "" {
		logger.Debug("telemetry disabled: no OTLP endpoint")
		return noopShutdown, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "oasguard"
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
		logger.Warn("using insecure connection for OTLP exporter", "endpoint", cfg.Endpoint)
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		_ = exporter.Shutdown(ctx)
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	logger.Info("telemetry enabled", "endpoint", cfg.Endpoint)

	return tp.Shutdown, nil
}

// Tracer returns the oasguard tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Meter returns the oasguard meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}
