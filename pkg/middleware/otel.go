package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/viewkit-dev/viewkit/pkg/render"
)

// Default tracer name for viewkit applications.
const defaultTracerName = "viewkit"

// TracingConfig configures the OpenTelemetry tracing decorator.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "viewkit").
	TracerName string

	// SpanName is the name of the evaluation span
	// (default: "render.evaluate").
	SpanName string

	// AttributeExtractor extracts custom attributes from the scope.
	// Called for each traced evaluation.
	AttributeExtractor func(scope render.Scope) []attribute.KeyValue
}

// TracingOption configures the OpenTelemetry tracing decorator.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) { c.TracerName = name }
}

// WithSpanName sets the span name.
func WithSpanName(name string) TracingOption {
	return func(c *TracingConfig) { c.SpanName = name }
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(fn func(scope render.Scope) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) { c.AttributeExtractor = fn }
}

// Tracing is a render.Evaluator decorator that opens one span per
// single-pass evaluation.
type Tracing struct {
	next   render.Evaluator
	cfg    TracingConfig
	tracer trace.Tracer
}

// NewTracing wraps next with OpenTelemetry tracing.
func NewTracing(next render.Evaluator, opts ...TracingOption) *Tracing {
	cfg := TracingConfig{
		TracerName: defaultTracerName,
		SpanName:   "render.evaluate",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tracing{
		next:   next,
		cfg:    cfg,
		tracer: otel.Tracer(cfg.TracerName),
	}
}

// Evaluate implements render.Evaluator.
func (t *Tracing) Evaluate(ctx context.Context, scope render.Scope, src string) (string, error) {
	attrs := []attribute.KeyValue{
		attribute.Int("template.source_bytes", len(src)),
		attribute.Int("template.scope_size", len(scope)),
	}
	if t.cfg.AttributeExtractor != nil {
		attrs = append(attrs, t.cfg.AttributeExtractor(scope)...)
	}

	ctx, span := t.tracer.Start(ctx, t.cfg.SpanName, trace.WithAttributes(attrs...))
	defer span.End()

	out, err := t.next.Evaluate(ctx, scope, src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return out, err
	}
	span.SetAttributes(attribute.Int("template.output_bytes", len(out)))
	return out, nil
}
