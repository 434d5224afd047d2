package tracing

import (
	"context"
	"errors"
	"fmt"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"io"
	"os"
	"time"
)

const (
	ExporterOTLPHTTP = "otlphttp"
	ExporterOTLPGRPC = "otlpgrpc"
	ExporterZipkin   = "zipkin"
	ExporterStdout   = "stdout"
	ExporterNone     = "none"
)

// Collector endpoints used when Config.Endpoint is empty.
const (
	DefaultOTLPHTTPEndpoint = "localhost:4318"
	DefaultOTLPGRPCEndpoint = "localhost:4317"
	DefaultZipkinEndpoint   = "http://localhost:9411/api/v2/spans"
)

const exportTimeout = 10 * time.Second

var ErrUnknownExporter = errors.New("unknown span exporter")

type Config struct {
	Exporter string
	// Endpoint is host:port for the OTLP exporters and a URL for zipkin. Empty selects
	// the exporter's default collector.
	Endpoint       string
	Insecure       bool
	SampleRatio    float64
	ServiceName    string
	ServiceVersion string
	// Output is where the stdout exporter writes. Defaults to os.Stdout.
	Output   io.Writer
	Observer Observer
}

// Provider owns the SDK tracer provider and the propagator used for outbound calls.
type Provider struct {
	tp         *sdktrace.TracerProvider
	propagator propagation.TextMapPropagator
	observer   Observer
	logger     *zap.Logger
}

// NewProvider builds the exporter named in cfg and a batching tracer provider around it.
// Exporters connect lazily, so an unreachable collector does not fail startup.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger) (*Provider, error) {
	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewProviderWithExporter(ctx, cfg, exporter, logger)
}

// NewProviderWithExporter is NewProvider with a caller supplied exporter. A nil exporter
// records spans without exporting them.
func NewProviderWithExporter(
	ctx context.Context,
	cfg Config,
	exporter sdktrace.SpanExporter,
	logger *zap.Logger,
) (*Provider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(
			&bestEffortExporter{SpanExporter: exporter, observer: cfg.Observer, logger: logger},
			sdktrace.WithExportTimeout(exportTimeout),
		))
	}

	return &Provider{
		tp: sdktrace.NewTracerProvider(opts...),
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
		observer: cfg.Observer,
		logger:   logger,
	}, nil
}

func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tp
}

func (p *Provider) Propagator() propagation.TextMapPropagator {
	return p.propagator
}

// Tracer returns a facade bound to this provider. The provider's observer is attached
// unless opts replace it.
func (p *Provider) Tracer(name string, opts ...TracerOption) *Tracer {
	if p.observer != nil {
		opts = append([]TracerOption{WithObserver(p.observer)}, opts...)
	}
	return NewTracer(p.tp, name, p.logger, opts...)
}

func (p *Provider) ForceFlush(ctx context.Context) error {
	return p.tp.ForceFlush(ctx)
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("unable to shut down tracer provider: %w", err)
	}
	return nil
}

func endpointFor(cfg Config) string {
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}
	switch cfg.Exporter {
	case ExporterOTLPHTTP:
		return DefaultOTLPHTTPEndpoint
	case ExporterOTLPGRPC:
		return DefaultOTLPGRPCEndpoint
	case ExporterZipkin:
		return DefaultZipkinEndpoint
	}
	return ""
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	endpoint := endpointFor(cfg)
	switch cfg.Exporter {
	case ExporterOTLPHTTP:
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	case ExporterOTLPGRPC:
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		return otlptracegrpc.New(ctx, opts...)
	case ExporterZipkin:
		return zipkin.New(endpoint)
	case ExporterStdout:
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		return stdouttrace.New(stdouttrace.WithWriter(out))
	case ExporterNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, cfg.Exporter)
	}
}
