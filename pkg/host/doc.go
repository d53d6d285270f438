// Package host mounts the view toolbox behind an HTTP server: it builds a
// view.Context per request, assembles the template scope, renders the
// requested page through a render.Evaluator, and rewrites links for
// clients that do not present a session cookie.
package host
