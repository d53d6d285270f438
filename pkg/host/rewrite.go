package host

import (
	"net/url"
	"strings"
)

// DefaultSessionParam is the query parameter carrying the session id in
// rewritten links.
const DefaultSessionParam = "sid"

// SessionRewriter implements view.Rewriter by appending the session id as
// a query parameter to rendered links. The host installs one only for
// requests that did not present a valid session cookie, so links keep
// working for clients without cookie support.
type SessionRewriter struct {
	param string
	id    string
	delim string
}

// RewriterOption configures a SessionRewriter.
type RewriterOption func(*SessionRewriter)

// WithRewriteDelimiter sets the separator used when the link already has
// query data. Pass link.XHTMLDelimiter for XHTML output. Default "&".
func WithRewriteDelimiter(delim string) RewriterOption {
	return func(r *SessionRewriter) { r.delim = delim }
}

// NewSessionRewriter creates a rewriter appending param=id.
func NewSessionRewriter(param, id string, opts ...RewriterOption) *SessionRewriter {
	if param == "" {
		param = DefaultSessionParam
	}
	r := &SessionRewriter{param: param, id: id, delim: "&"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RewriteURL appends the session parameter before any fragment. An empty
// input or an empty session id passes through unchanged.
func (r *SessionRewriter) RewriteURL(u string) string {
	if u == "" || r.id == "" {
		return u
	}
	base, frag, hasFrag := strings.Cut(u, "#")
	sep := "?"
	if strings.Contains(base, "?") {
		sep = r.delim
	}
	base = base + sep + r.param + "=" + url.QueryEscape(r.id)
	if hasFrag {
		return base + "#" + frag
	}
	return base
}
