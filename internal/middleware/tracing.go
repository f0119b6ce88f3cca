package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request through otelhttp, continuing any
// incoming W3C trace context. With no provider installed the spans are no-ops.
func Tracing(next http.Handler) http.Handler {
	return tracing(next)
}

func tracing(next http.Handler, opts ...otelhttp.Option) http.Handler {
	opts = append([]otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method
		}),
	}, opts...)
	return otelhttp.NewHandler(routeSpan(next), "http.server", opts...)
}

// routeSpan renames the span after the matched route and tags the caller.
// The mux fills in the pattern on the request it was handed.
func routeSpan(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		if id := GetRequestID(r.Context()); id != "" {
			span.SetAttributes(attribute.String("request.id", id))
		}

		next.ServeHTTP(w, r)

		if r.Pattern != "" {
			span.SetName(r.Pattern)
			span.SetAttributes(attribute.String("http.route", r.Pattern))
		}
		if user := callerID(r.Context()); user != "" {
			span.SetAttributes(attribute.String("enduser.id", user))
		}
	})
}
