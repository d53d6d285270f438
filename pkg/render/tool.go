package render

import (
	"context"
	"log/slog"

	"github.com/viewkit-dev/viewkit"
)

// DefaultMaxDepth is the maximum number of evaluation passes Recurse
// performs when no other depth is configured.
const DefaultMaxDepth = 20

// Configuration keys understood by Tool.Configure.
const (
	// ParseDepthKey sets the maximum recursion depth for Recurse.
	ParseDepthKey = "parse.depth"

	// CatchErrorsKey controls whether evaluation failures are suppressed.
	CatchErrorsKey = "catch.exceptions"
)

// Tool evaluates template snippets through a single-pass Evaluator. Its
// configuration is set once at initialization and read-only afterwards, so
// a Tool is safe for concurrent use as long as its Evaluator is reentrant.
type Tool struct {
	engine      Evaluator
	maxDepth    int
	catchErrors bool
	logger      *slog.Logger
	onExhausted func()
}

// Option configures a Tool.
type Option func(*Tool)

// WithMaxDepth sets the maximum number of passes Recurse performs.
func WithMaxDepth(depth int) Option {
	return func(t *Tool) { t.maxDepth = depth }
}

// WithCatchErrors controls whether evaluation failures are suppressed and
// logged rather than returned. Enabled by default.
func WithCatchErrors(catch bool) Option {
	return func(t *Tool) { t.catchErrors = catch }
}

// WithLogger sets the logger used for suppressed evaluation failures.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tool) { t.logger = logger }
}

// WithExhaustionHook registers a callback invoked whenever Recurse stops
// because the depth limit was reached before stabilization. Hosts use this
// to feed a metric; the truncation itself is silent.
func WithExhaustionHook(fn func()) Option {
	return func(t *Tool) { t.onExhausted = fn }
}

// NewTool creates a render tool over the given single-pass engine with
// default configuration: depth 20, failures suppressed.
func NewTool(engine Evaluator, opts ...Option) *Tool {
	t := &Tool{
		engine:      engine,
		maxDepth:    DefaultMaxDepth,
		catchErrors: true,
		logger:      slog.Default().With("component", "render"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Configure applies the tool's option map. All keys are optional.
func (t *Tool) Configure(conf viewkit.Config) error {
	t.maxDepth = conf.Int(ParseDepthKey, t.maxDepth)
	t.catchErrors = conf.Bool(CatchErrorsKey, t.catchErrors)
	return nil
}

// MaxDepth returns the maximum number of passes Recurse performs.
func (t *Tool) MaxDepth() int { return t.maxDepth }

// CatchErrors reports whether evaluation failures are suppressed.
func (t *Tool) CatchErrors() bool { return t.catchErrors }

// Eval runs one evaluation pass of src against scope. The second return
// value reports whether output was produced: an empty src short-circuits
// to no output without invoking the engine, and a suppressed evaluation
// failure is logged and likewise produces no output. With suppression
// disabled the failure is returned instead.
func (t *Tool) Eval(ctx context.Context, scope Scope, src string) (string, bool, error) {
	if src == "" {
		return "", false, nil
	}
	out, err := t.engine.Evaluate(ctx, scope, src)
	if err != nil {
		if t.catchErrors {
			t.logger.Debug("single-pass evaluation failed", "error", err)
			return "", false, nil
		}
		return "", false, err
	}
	return out, true, nil
}

// Recurse evaluates src against scope, then re-evaluates each pass's
// output as new input until the output repeats its input or no output is
// produced. The number of passes is bounded by the configured depth; when
// the bound is hit before stabilization the last output is returned
// without error. Oscillations of period two or more are not detected and
// run to the bound.
func (t *Tool) Recurse(ctx context.Context, scope Scope, src string) (string, bool, error) {
	cur := src
	for pass := 1; ; pass++ {
		out, ok, err := t.Eval(ctx, scope, cur)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, nil
		}
		if out == cur {
			return out, true, nil
		}
		if pass >= t.maxDepth {
			if t.onExhausted != nil {
				t.onExhausted()
			}
			return out, true, nil
		}
		cur = out
	}
}
