package tracing

import (
	"context"
	"fmt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"sort"
	"sync/atomic"
)

// Attributes maps attribute keys to string, integer, float or boolean values.
type Attributes map[string]interface{}

// Observer is notified about the lifecycle of spans and about exporter failures.
type Observer interface {
	SpanEnded(name string, err error)
	SpanEndedTwice(name string)
	ExportFailed(spans int)
}

type SpanOption func(*spanConfig)

type spanConfig struct {
	kind  trace.SpanKind
	attrs []attribute.KeyValue
}

// WithKind overrides the default CLIENT span kind.
func WithKind(kind trace.SpanKind) SpanOption {
	return func(c *spanConfig) {
		c.kind = kind
	}
}

func WithAttributes(attrs Attributes) SpanOption {
	return func(c *spanConfig) {
		c.attrs = append(c.attrs, toKeyValues(attrs)...)
	}
}

// Span is the handle of an in-flight traced operation.
type Span struct {
	name  string
	span  trace.Span
	ended atomic.Bool
}

func (s *Span) Name() string {
	return s.name
}

func (s *Span) SpanContext() trace.SpanContext {
	return s.span.SpanContext()
}

// Tracer wraps outbound operations in spans. It is built from an explicitly passed
// TracerProvider and never touches the global otel provider.
type Tracer struct {
	tracer   trace.Tracer
	logger   *zap.Logger
	observer Observer
}

type TracerOption func(*Tracer)

func WithObserver(observer Observer) TracerOption {
	return func(t *Tracer) {
		t.observer = observer
	}
}

func NewTracer(
	tp trace.TracerProvider,
	name string,
	logger *zap.Logger,
	opts ...TracerOption,
) *Tracer {
	t := &Tracer{
		tracer: tp.Tracer(name),
		logger: logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// StartSpan starts a span named name. The returned context carries the span so that
// calls made with it become children.
func (t *Tracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, *Span) {
	cfg := spanConfig{kind: trace.SpanKindClient}
	for _, opt := range opts {
		opt(&cfg)
	}
	ctx, span := t.tracer.Start(
		ctx,
		name,
		trace.WithSpanKind(cfg.kind),
		trace.WithAttributes(cfg.attrs...),
	)
	return ctx, &Span{name: name, span: span}
}

// EndSpan sets the span status from err and ends it. Only the first call on a span has
// an effect.
func (t *Tracer) EndSpan(s *Span, err error) {
	if s == nil {
		return
	}
	if !s.ended.CompareAndSwap(false, true) {
		t.logger.Warn("Span ended more than once", zap.String("span", s.name))
		if t.observer != nil {
			t.observer.SpanEndedTwice(s.name)
		}
		return
	}

	if err != nil {
		s.span.SetStatus(codes.Error, err.Error())
		s.span.RecordError(err)
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()

	if t.observer != nil {
		t.observer.SpanEnded(s.name, err)
	}
}

// Trace runs fn inside a span and returns fn's error unchanged.
func (t *Tracer) Trace(
	ctx context.Context,
	name string,
	fn func(ctx context.Context) error,
	opts ...SpanOption,
) (err error) {
	ctx, span := t.StartSpan(ctx, name, opts...)
	defer func() {
		if r := recover(); r != nil {
			t.EndSpan(span, fmt.Errorf("panic: %v", r))
			panic(r)
		}
		t.EndSpan(span, err)
	}()
	return fn(ctx)
}

func toKeyValues(attrs Attributes) []attribute.KeyValue {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case string:
			kvs = append(kvs, attribute.String(k, v))
		case bool:
			kvs = append(kvs, attribute.Bool(k, v))
		case int:
			kvs = append(kvs, attribute.Int(k, v))
		case int32:
			kvs = append(kvs, attribute.Int64(k, int64(v)))
		case int64:
			kvs = append(kvs, attribute.Int64(k, v))
		case float32:
			kvs = append(kvs, attribute.Float64(k, float64(v)))
		case float64:
			kvs = append(kvs, attribute.Float64(k, v))
		case fmt.Stringer:
			kvs = append(kvs, attribute.String(k, v.String()))
		default:
			kvs = append(kvs, attribute.String(k, fmt.Sprint(v)))
		}
	}
	return kvs
}
