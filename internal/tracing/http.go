package tracing

import (
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"net/http"
)

// Handler wraps h so that every incoming request gets a SERVER span from this provider.
func (p *Provider) Handler(h http.Handler, operation string) http.Handler {
	return otelhttp.NewHandler(
		h,
		operation,
		otelhttp.WithTracerProvider(p.tp),
		otelhttp.WithPropagators(p.propagator),
	)
}

// Transport wraps base so that outgoing requests carry the trace context of the span
// in their request context.
func (p *Provider) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(
		base,
		otelhttp.WithTracerProvider(p.tp),
		otelhttp.WithPropagators(p.propagator),
	)
}
