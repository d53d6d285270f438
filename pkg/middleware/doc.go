// Package middleware provides observability decorators for the render
// Evaluator: Prometheus metrics and OpenTelemetry tracing. Decorators
// implement render.Evaluator themselves, so they stack:
//
//	eval := middleware.NewTracing(middleware.NewMetrics(engine))
//	tool := render.NewTool(eval)
package middleware
