// Package render evaluates template-language snippets against a scope,
// optionally re-evaluating the output until it stabilizes.
//
// The single-pass evaluation itself is delegated to an Evaluator (the
// scriggoeval package provides one backed by a real template engine). The
// Tool adds configurable error suppression for Eval and bounded recursive
// re-evaluation for Recurse:
//
//	out, ok, err := tool.Recurse(ctx, scope, "{{ teaser }}")
//
// Recurse feeds each pass's output back in as input until the output
// repeats its input, the engine produces no output, or the configured
// depth limit is reached. Hitting the limit is not an error; the last
// output is returned as-is.
package render
