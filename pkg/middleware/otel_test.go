package middleware

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/viewkit-dev/viewkit/pkg/render"
)

func TestTracingPassthrough(t *testing.T) {
	tr := NewTracing(echoEvaluator(nil))

	out, err := tr.Evaluate(context.Background(), render.Scope{"a": 1}, "hello")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if out != "hello" {
		t.Errorf("Evaluate = %q, want hello", out)
	}
}

func TestTracingPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	tr := NewTracing(echoEvaluator(boom))

	if _, err := tr.Evaluate(context.Background(), nil, "src"); !errors.Is(err, boom) {
		t.Errorf("Evaluate err = %v, want %v", err, boom)
	}
}

func TestTracingAttributeExtractor(t *testing.T) {
	called := false
	tr := NewTracing(echoEvaluator(nil),
		WithTracerName("test"),
		WithSpanName("test.eval"),
		WithAttributeExtractor(func(scope render.Scope) []attribute.KeyValue {
			called = true
			return []attribute.KeyValue{attribute.Bool("custom", true)}
		}),
	)

	if _, err := tr.Evaluate(context.Background(), nil, "src"); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !called {
		t.Error("attribute extractor not called")
	}
}
