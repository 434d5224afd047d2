package tracing

import (
	"context"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// bestEffortExporter logs and drops failed batches so that a lost collector never
// surfaces as an error from the span pipeline.
type bestEffortExporter struct {
	sdktrace.SpanExporter
	observer Observer
	logger   *zap.Logger
}

func (e *bestEffortExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if err := e.SpanExporter.ExportSpans(ctx, spans); err != nil {
		e.logger.Warn("Dropping spans after failed export", zap.Int("spans", len(spans)), zap.Error(err))
		if e.observer != nil {
			e.observer.ExportFailed(len(spans))
		}
	}
	return nil
}
