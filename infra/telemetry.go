package infra

import (
	"context"
	"log"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/campuskit/course-file-service/config"
)

// TelemetryClient owns the OTLP trace and metric pipelines plus the Go
// runtime instrumentation. Nil when no collector endpoint is configured.
type TelemetryClient struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

func InitTelemetry(cfg *config.EnvConfig) *TelemetryClient {
	if cfg.Telemetry.OTLPEndpoint == "" {
		return nil
	}

	ctx := context.Background()
	insecure := cfg.Environment.Mode == "development"
	res := telemetryResource(cfg)

	traceOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Telemetry.OTLPEndpoint)}
	if insecure {
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
	}
	traceExporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(traceOpts...))
	if err != nil {
		log.Fatalf("OTLP trace exporter failed: %v", err)
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)

	metricOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Telemetry.OTLPEndpoint)}
	if insecure {
		metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
	}
	metricExporter, err := otlpmetrichttp.New(ctx, metricOpts...)
	if err != nil {
		log.Fatalf("OTLP metric exporter failed: %v", err)
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	if err := runtime.Start(runtime.WithMeterProvider(meterProvider)); err != nil {
		log.Printf("runtime instrumentation failed: %v", err)
	}

	return &TelemetryClient{
		tracerProvider: tracerProvider,
		meterProvider:  meterProvider,
	}
}

func (t *TelemetryClient) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	if err := t.tracerProvider.Shutdown(ctx); err != nil {
		return err
	}
	return t.meterProvider.Shutdown(ctx)
}

func telemetryResource(cfg *config.EnvConfig) *resource.Resource {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.Telemetry.ServiceName),
			semconv.DeploymentEnvironment(cfg.Environment.Mode),
		),
	)
	if err != nil {
		return resource.Default()
	}
	return res
}
