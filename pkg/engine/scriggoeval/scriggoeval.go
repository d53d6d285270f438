// Package scriggoeval provides the single-pass template evaluation
// primitive backed by the Scriggo template engine. It implements
// render.Evaluator: each call builds the source as a one-file template
// with the scope exposed as global variables, runs it, and returns the
// rendered output.
package scriggoeval

import (
	"bytes"
	"context"
	"io"
	"reflect"

	"github.com/open2b/scriggo"
	"github.com/open2b/scriggo/native"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/viewkit-dev/viewkit/pkg/render"
)

// Engine evaluates template fragments with Scriggo. The zero options
// produce an HTML-format engine with Markdown conversion enabled.
type Engine struct {
	fileName string
	markdown scriggo.Converter
	globals  native.Declarations
	packages native.Importer
}

// Option configures an Engine.
type Option func(*Engine)

// WithFileName sets the synthetic file name under which fragments are
// built. The extension selects the template format (default:
// "fragment.html").
func WithFileName(name string) Option {
	return func(e *Engine) { e.fileName = name }
}

// WithMarkdownConverter replaces the Markdown converter. Pass nil to
// disable Markdown conversion.
func WithMarkdownConverter(conv scriggo.Converter) Option {
	return func(e *Engine) { e.markdown = conv }
}

// WithGlobals declares additional globals available to every fragment,
// on top of the per-call scope.
func WithGlobals(decls native.Declarations) Option {
	return func(e *Engine) { e.globals = decls }
}

// WithPackages makes native packages importable from fragments.
func WithPackages(importer native.Importer) Option {
	return func(e *Engine) { e.packages = importer }
}

// New creates a Scriggo-backed evaluator.
func New(opts ...Option) *Engine {
	e := &Engine{
		fileName: "fragment.html",
		markdown: Markdown(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Markdown returns a Markdown-to-HTML converter backed by goldmark,
// suitable for scriggo.BuildOptions.
func Markdown() scriggo.Converter {
	md := goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
	return func(src []byte, out io.Writer) error {
		return md.Convert(src, out)
	}
}

// Evaluate implements render.Evaluator.
func (e *Engine) Evaluate(ctx context.Context, scope render.Scope, src string) (string, error) {
	fsys := scriggo.Files{e.fileName: []byte(src)}

	globals := make(native.Declarations, len(e.globals)+len(scope))
	for name, decl := range e.globals {
		globals[name] = decl
	}
	for name, value := range scope {
		globals[name] = pointerTo(value)
	}

	opts := &scriggo.BuildOptions{
		Globals:           globals,
		MarkdownConverter: e.markdown,
		Packages:          e.packages,
	}
	tmpl, err := scriggo.BuildTemplate(fsys, e.fileName, opts)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Run(&buf, nil, &scriggo.RunOptions{Context: ctx}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pointerTo boxes a scope value behind a pointer of its dynamic type, as
// Scriggo expects for global variables. A nil value is declared as an
// empty interface variable.
func pointerTo(v any) any {
	if v == nil {
		return new(any)
	}
	rv := reflect.ValueOf(v)
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p.Interface()
}
