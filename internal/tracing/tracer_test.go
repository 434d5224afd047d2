package tracing

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zaptest"
	"sync"
	"testing"
)

type fakeObserver struct {
	mu         sync.Mutex
	ended      map[string]int
	failed     map[string]int
	endedTwice map[string]int
	exported   int
}

func newFakeObserver() *fakeObserver {
	return &fakeObserver{
		ended:      make(map[string]int),
		failed:     make(map[string]int),
		endedTwice: make(map[string]int),
	}
}

func (o *fakeObserver) SpanEnded(name string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ended[name]++
	if err != nil {
		o.failed[name]++
	}
}

func (o *fakeObserver) SpanEndedTwice(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.endedTwice[name]++
}

func (o *fakeObserver) ExportFailed(spans int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.exported += spans
}

func newRecordingTracer(t *testing.T, opts ...TracerOption) (*Tracer, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	return NewTracer(tp, "test", zaptest.NewLogger(t), opts...), sr
}

func attributeMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestTracer_StartSpan(t *testing.T) {
	t.Run("Defaults to CLIENT kind and applies attributes", func(t *testing.T) {
		tracer, sr := newRecordingTracer(t)
		_, span := tracer.StartSpan(context.Background(), "fetchProducts", WithAttributes(Attributes{
			"operation.type": "read",
			"page.size":      20,
			"cached":         false,
			"ratio":          0.5,
		}))
		assert.Len(t, sr.Started(), 1)
		assert.Len(t, sr.Ended(), 0)

		tracer.EndSpan(span, nil)

		require.Len(t, sr.Ended(), 1)
		ended := sr.Ended()[0]
		assert.Equal(t, "fetchProducts", ended.Name())
		assert.Equal(t, trace.SpanKindClient, ended.SpanKind())
		attrs := attributeMap(ended.Attributes())
		assert.Equal(t, "read", attrs["operation.type"].AsString())
		assert.Equal(t, int64(20), attrs["page.size"].AsInt64())
		assert.Equal(t, false, attrs["cached"].AsBool())
		assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
	})

	t.Run("Honours an explicit kind", func(t *testing.T) {
		tracer, sr := newRecordingTracer(t)
		_, span := tracer.StartSpan(context.Background(), "render", WithKind(trace.SpanKindInternal))
		tracer.EndSpan(span, nil)
		require.Len(t, sr.Ended(), 1)
		assert.Equal(t, trace.SpanKindInternal, sr.Ended()[0].SpanKind())
	})

	t.Run("Returned context parents nested spans", func(t *testing.T) {
		tracer, sr := newRecordingTracer(t)
		ctx, parent := tracer.StartSpan(context.Background(), "parent")
		_, child := tracer.StartSpan(ctx, "child")
		tracer.EndSpan(child, nil)
		tracer.EndSpan(parent, nil)

		require.Len(t, sr.Ended(), 2)
		childSpan := sr.Ended()[0]
		assert.Equal(t, "child", childSpan.Name())
		assert.Equal(t, parent.SpanContext().SpanID(), childSpan.Parent().SpanID())
	})
}

func TestTracer_EndSpan(t *testing.T) {
	t.Run("Records OK status when there is no error", func(t *testing.T) {
		tracer, sr := newRecordingTracer(t)
		_, span := tracer.StartSpan(context.Background(), "deleteProduct")
		tracer.EndSpan(span, nil)

		require.Len(t, sr.Ended(), 1)
		assert.Equal(t, codes.Ok, sr.Ended()[0].Status().Code)
		assert.Empty(t, sr.Ended()[0].Events())
	})

	t.Run("Records ERROR status, message and exception for a failed fetch", func(t *testing.T) {
		tracer, sr := newRecordingTracer(t)
		_, span := tracer.StartSpan(context.Background(), "fetchProducts")
		tracer.EndSpan(span, errors.New("network down"))

		require.Len(t, sr.Ended(), 1)
		ended := sr.Ended()[0]
		assert.Equal(t, codes.Error, ended.Status().Code)
		assert.Equal(t, "network down", ended.Status().Description)
		require.Len(t, ended.Events(), 1)
		assert.Equal(t, "exception", ended.Events()[0].Name)
	})

	t.Run("Second call is ignored and reported", func(t *testing.T) {
		observer := newFakeObserver()
		tracer, sr := newRecordingTracer(t, WithObserver(observer))
		_, span := tracer.StartSpan(context.Background(), "editProduct")
		tracer.EndSpan(span, nil)
		tracer.EndSpan(span, errors.New("late failure"))

		require.Len(t, sr.Ended(), 1)
		assert.Equal(t, codes.Ok, sr.Ended()[0].Status().Code)
		assert.Equal(t, 1, observer.ended["editProduct"])
		assert.Equal(t, 1, observer.endedTwice["editProduct"])
	})

	t.Run("Nil span is ignored", func(t *testing.T) {
		tracer, sr := newRecordingTracer(t)
		assert.NotPanics(t, func() {
			tracer.EndSpan(nil, errors.New("ignored"))
		})
		assert.Empty(t, sr.Ended())
	})

	t.Run("Concurrent double end finalises once", func(t *testing.T) {
		observer := newFakeObserver()
		tracer, sr := newRecordingTracer(t, WithObserver(observer))
		_, span := tracer.StartSpan(context.Background(), "race")

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tracer.EndSpan(span, nil)
			}()
		}
		wg.Wait()

		assert.Len(t, sr.Ended(), 1)
		assert.Equal(t, 1, observer.ended["race"])
		assert.Equal(t, 7, observer.endedTwice["race"])
	})
}

func TestTracer_Trace(t *testing.T) {
	t.Run("Ends span with OK when fn succeeds", func(t *testing.T) {
		tracer, sr := newRecordingTracer(t)
		called := false
		err := tracer.Trace(context.Background(), "fetchStore", func(ctx context.Context) error {
			called = true
			assert.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
			assert.Len(t, sr.Ended(), 0)
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, called)
		require.Len(t, sr.Ended(), 1)
		assert.Equal(t, codes.Ok, sr.Ended()[0].Status().Code)
	})

	t.Run("Returns the error unchanged and ends span with ERROR", func(t *testing.T) {
		tracer, sr := newRecordingTracer(t)
		want := errors.New("network down")
		err := tracer.Trace(context.Background(), "fetchProducts", func(ctx context.Context) error {
			return want
		})
		assert.Same(t, want, err)
		require.Len(t, sr.Ended(), 1)
		assert.Equal(t, codes.Error, sr.Ended()[0].Status().Code)
		assert.Equal(t, "network down", sr.Ended()[0].Status().Description)
	})

	t.Run("Ends span before re-panicking", func(t *testing.T) {
		tracer, sr := newRecordingTracer(t)
		assert.PanicsWithValue(t, "boom", func() {
			_ = tracer.Trace(context.Background(), "explode", func(ctx context.Context) error {
				panic("boom")
			})
		})
		require.Len(t, sr.Ended(), 1)
		assert.Equal(t, codes.Error, sr.Ended()[0].Status().Code)
		assert.Equal(t, "panic: boom", sr.Ended()[0].Status().Description)
	})

	t.Run("Every started span is ended exactly once across outcomes", func(t *testing.T) {
		observer := newFakeObserver()
		tracer, sr := newRecordingTracer(t, WithObserver(observer))
		for i := 0; i < 10; i++ {
			fail := i%3 == 0
			_ = tracer.Trace(context.Background(), "op", func(ctx context.Context) error {
				if fail {
					return errors.New("failed")
				}
				return nil
			})
		}
		assert.Len(t, sr.Started(), 10)
		assert.Len(t, sr.Ended(), 10)
		assert.Equal(t, 10, observer.ended["op"])
		assert.Equal(t, 4, observer.failed["op"])
		assert.Empty(t, observer.endedTwice)
		for _, s := range sr.Ended() {
			if s.Status().Code == codes.Error {
				assert.Equal(t, "failed", s.Status().Description)
			} else {
				assert.Equal(t, codes.Ok, s.Status().Code)
			}
		}
	})
}
