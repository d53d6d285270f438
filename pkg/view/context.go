package view

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Rewriter rewrites a fully rendered link before it is emitted into a page.
// The host uses this to encode a session id into URLs when the client does
// not support cookies. An empty input is never passed to a Rewriter.
type Rewriter interface {
	RewriteURL(u string) string
}

// RewriterFunc adapts a function to the Rewriter interface.
type RewriterFunc func(u string) string

// RewriteURL implements Rewriter.
func (f RewriterFunc) RewriteURL(u string) string { return f(u) }

// Context is the ambient request context seen by view tools.
type Context struct {
	req        *http.Request
	root       string
	charset    string
	rewriter   Rewriter
	trustProxy bool
}

// Option configures a Context.
type Option func(*Context)

// WithRoot sets the application root path (the Go equivalent of a servlet
// context path), e.g. "/app". The root path "/" is normalized to "".
func WithRoot(root string) Option {
	return func(c *Context) {
		if root == "/" {
			root = ""
		}
		c.root = strings.TrimSuffix(root, "/")
	}
}

// WithCharset sets the character encoding of the response. Query data and
// anchors are percent-encoded in this charset. Defaults to UTF-8.
func WithCharset(charset string) Option {
	return func(c *Context) { c.charset = charset }
}

// WithRewriter sets the link rewrite hook applied to fully rendered links.
func WithRewriter(r Rewriter) Option {
	return func(c *Context) { c.rewriter = r }
}

// WithTrustedProxy enables honoring X-Forwarded-Proto and X-Forwarded-Host
// headers. Only enable this behind a proxy you control.
func WithTrustedProxy(trust bool) Option {
	return func(c *Context) { c.trustProxy = trust }
}

// NewContext builds a Context for the given request.
func NewContext(r *http.Request, opts ...Option) *Context {
	c := &Context{req: r}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request returns the underlying request.
func (c *Context) Request() *http.Request { return c.req }

// Scheme returns "http" or "https" for the current request. Behind a
// trusted proxy the X-Forwarded-Proto header wins.
func (c *Context) Scheme() string {
	if c.trustProxy {
		if p := c.req.Header.Get("X-Forwarded-Proto"); p != "" {
			return p
		}
	}
	if c.req.TLS != nil {
		return "https"
	}
	return "http"
}

// hostPort returns the request host and port, falling back to the default
// port of the current scheme when none is present in the Host header.
func (c *Context) hostPort() (string, int) {
	host := c.req.Host
	if c.trustProxy {
		if fh := c.req.Header.Get("X-Forwarded-Host"); fh != "" {
			host = fh
		}
	}
	if h, p, err := net.SplitHostPort(host); err == nil {
		if port, err := strconv.Atoi(p); err == nil {
			return h, port
		}
		return h, c.defaultPort()
	}
	return host, c.defaultPort()
}

func (c *Context) defaultPort() int {
	if c.Scheme() == "https" {
		return 443
	}
	return 80
}

// Host returns the request host name without any port.
func (c *Context) Host() string {
	h, _ := c.hostPort()
	return h
}

// Port returns the request port, defaulting by scheme.
func (c *Context) Port() int {
	_, p := c.hostPort()
	return p
}

// ContextPath returns the application root path, e.g. "/app". It is ""
// when the application is mounted at the server root.
func (c *Context) ContextPath() string { return c.root }

// RequestPath returns the path of the current request within the
// application, always starting with "/".
func (c *Context) RequestPath() string {
	path := c.req.URL.Path
	if c.root != "" {
		path = strings.TrimPrefix(path, c.root)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Params returns the parameter multi-map of the current request. When the
// request body has already been parsed as a form, form values are included;
// otherwise only the query string contributes.
func (c *Context) Params() url.Values {
	if c.req.Form != nil {
		return c.req.Form
	}
	return c.req.URL.Query()
}

// Charset returns the response character encoding, defaulting to UTF-8.
func (c *Context) Charset() string {
	if c.charset == "" {
		return "UTF-8"
	}
	return c.charset
}

// Rewrite applies the configured link rewrite hook, if any.
func (c *Context) Rewrite(u string) string {
	if c.rewriter == nil {
		return u
	}
	return c.rewriter.RewriteURL(u)
}

// Encode percent-encodes s for use in query data or an anchor, using the
// response character encoding. Encoding failures fall back to UTF-8.
func (c *Context) Encode(s string) string {
	return QueryEscape(s, c.charset)
}
