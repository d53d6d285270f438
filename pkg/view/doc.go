// Package view captures the ambient web request context that view tools
// render against: scheme, host, port, application root path, request path,
// the request parameter multi-map, the response character encoding, and the
// hook used to rewrite fully rendered links (e.g. for cookieless session
// tracking).
//
// A Context is built once per request and handed to request-scoped tools.
// It is read-only after construction and safe to share across goroutines.
package view
