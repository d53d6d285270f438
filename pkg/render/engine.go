package render

import "context"

// Scope is the variable set visible to an evaluation pass.
type Scope map[string]any

// Evaluator runs a single template-evaluation pass: it evaluates src
// against scope and returns the produced output.
//
// An Evaluator must be reentrant; the Tool may be shared by concurrent
// requests.
type Evaluator interface {
	Evaluate(ctx context.Context, scope Scope, src string) (string, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, scope Scope, src string) (string, error)

// Evaluate implements Evaluator.
func (f EvaluatorFunc) Evaluate(ctx context.Context, scope Scope, src string) (string, error) {
	return f(ctx, scope, src)
}
