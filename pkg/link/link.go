package link

import (
	"sort"
	"strconv"
	"strings"

	"github.com/viewkit-dev/viewkit/pkg/view"
)

// Link is an immutable snapshot of a URI, an anchor and an ordered query
// parameter sequence, bound to the ambient request context it renders
// against. All With* methods return a new Link; the receiver is never
// mutated, so a Link can be shared across goroutines and extended
// independently without synchronization.
type Link struct {
	vc *view.Context

	uri       string
	hasURI    bool
	anchor    string
	hasAnchor bool

	params []Param
	ignore map[string]struct{}

	delim        string
	autoIgnore   bool
	selfAbsolute bool
	selfParams   bool
}

// clone returns a shallow copy. The params slice and ignore set stay
// shared until a mutation actually needs to change them.
func (l *Link) clone() *Link {
	c := *l
	return &c
}

// appendParams copies src into a fresh backing array and appends add.
// Derived links never share mutable backing storage with their parents.
func appendParams(src []Param, add ...Param) []Param {
	out := make([]Param, len(src), len(src)+len(add))
	copy(out, src)
	return append(out, add...)
}

// ignoreKeys adds keys to the receiver's ignore set, cloning the shared
// set only if a key is actually missing from it.
func (l *Link) ignoreKeys(keys ...string) {
	cloned := false
	for _, key := range keys {
		if _, ok := l.ignore[key]; ok {
			continue
		}
		if !cloned {
			fresh := make(map[string]struct{}, len(l.ignore)+1)
			for k := range l.ignore {
				fresh[k] = struct{}{}
			}
			l.ignore = fresh
			cloned = true
		}
		l.ignore[key] = struct{}{}
	}
}

// WithURI returns a copy of the link with the given URI reference set
// verbatim. Query parameters and the anchor are carried over unchanged.
func (l *Link) WithURI(uri string) *Link {
	c := l.clone()
	c.uri = uri
	c.hasURI = true
	return c
}

// WithRelative resolves path against the application root path and returns
// a copy of the link with the result as its URI. Under root "/app",
// "foo" and "/foo" both yield "/app/foo"; under the server root they
// yield "/foo".
func (l *Link) WithRelative(path string) *Link {
	root := l.vc.ContextPath()
	if strings.HasPrefix(path, "/") {
		return l.WithURI(root + path)
	}
	return l.WithURI(root + "/" + path)
}

// WithAbsolute returns a copy of the link with path converted to an
// absolute URL on this application's origin. A path that already starts
// with "http" is taken verbatim, so links to other sites pass through.
func (l *Link) WithAbsolute(path string) *Link {
	if strings.HasPrefix(path, "http") {
		return l.WithURI(path)
	}
	origin := l.ContextURL()
	if strings.HasPrefix(path, "/") {
		return l.WithURI(origin + path)
	}
	return l.WithURI(origin + "/" + path)
}

// WithAnchor returns a copy of the link with the given anchor. The anchor
// is percent-encoded when the link is rendered.
func (l *Link) WithAnchor(anchor string) *Link {
	c := l.clone()
	c.anchor = anchor
	c.hasAnchor = true
	return c
}

// WithParam returns a copy of the link with one key/value pair appended to
// its query data. The value may be nil (renders as a bare "key="), a
// scalar, or a slice (renders as repeated "key=value" pairs). With
// auto-ignore enabled the key is also added to the new link's ignore set.
func (l *Link) WithParam(key string, value any) *Link {
	c := l.clone()
	c.params = appendParams(l.params, Param{Key: key, Value: Of(value)})
	if c.autoIgnore {
		c.ignoreKeys(key)
	}
	return c
}

// WithParams returns a copy of the link with every entry of params
// appended as successive query pairs, in sorted key order. An empty or nil
// map returns the receiver unchanged; this is the one operation that may
// return the original reference, since no change occurs.
func (l *Link) WithParams(params map[string]any) *Link {
	if len(params) == 0 {
		return l
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	add := make([]Param, len(keys))
	for i, k := range keys {
		add[i] = Param{Key: k, Value: Of(params[k])}
	}
	c := l.clone()
	c.params = appendParams(l.params, add...)
	if c.autoIgnore {
		c.ignoreKeys(keys...)
	}
	return c
}

// WithIgnore returns a copy of the link with name added to the set of
// parameters excluded by WithAllParameters.
func (l *Link) WithIgnore(name string) *Link {
	c := l.clone()
	c.ignoreKeys(name)
	return c
}

// WithAllParameters returns a copy of the link with every parameter of the
// current request appended to its query data, except those in the ignore
// set. All parameters are added in one batch, so a single new snapshot is
// produced regardless of the parameter count.
func (l *Link) WithAllParameters() *Link {
	ambient := l.vc.Params()
	params := make(map[string]any, len(ambient))
	for key, values := range ambient {
		if _, skip := l.ignore[key]; skip {
			continue
		}
		params[key] = append([]string(nil), values...)
	}
	return l.WithParams(params)
}

// URI returns the URI reference set on this link, without query data.
func (l *Link) URI() string { return l.uri }

// Anchor returns the anchor set on this link.
func (l *Link) Anchor() string { return l.anchor }

// ContextURL returns the absolute URL of the application root, e.g.
// "http://myserver.net/myapp". Default ports are omitted. The result does
// not reflect any URI or query data set on this link.
func (l *Link) ContextURL() string {
	scheme := l.vc.Scheme()
	port := l.vc.Port()

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(l.vc.Host())
	if (scheme == "http" && port != 80) || (scheme == "https" && port != 443) {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(port))
	}
	b.WriteString(l.vc.ContextPath())
	return b.String()
}

// ContextPath returns the application root path, e.g. "/myapp".
func (l *Link) ContextPath() string { return l.vc.ContextPath() }

// RequestPath returns the path of the current request within the
// application.
func (l *Link) RequestPath() string { return l.vc.RequestPath() }

// BaseRef returns the absolute URL of the current request without query
// data, e.g. "http://myserver.net/myapp/stuff/view". Useful for the HTML
// base tag.
func (l *Link) BaseRef() string {
	return l.ContextURL() + l.RequestPath()
}

// Self returns a self-referencing link for the current request. By default
// this resolves the request path relative to the application root; the
// tool can be configured to use an absolute URI and/or to fold in the
// current request's parameters (minus the ignore set).
func (l *Link) Self() *Link {
	var c *Link
	if l.selfAbsolute {
		c = l.WithURI(l.BaseRef())
	} else {
		c = l.WithRelative(l.vc.RequestPath())
	}
	if l.selfParams {
		c = c.WithAllParameters()
	}
	return c
}

// QueryString returns the link's query data as a url-encoded string, e.g.
// "key=value&foo=this+is+encoded". It is "" when the link has no query
// parameters.
func (l *Link) QueryString() string {
	if len(l.params) == 0 {
		return ""
	}
	parts := make([]string, len(l.params))
	for i, p := range l.params {
		parts[i] = l.renderParam(p)
	}
	return strings.Join(parts, l.delim)
}

// renderParam serializes one query pair. Keys and values are
// percent-encoded in the response charset; the "=" separators are not.
func (l *Link) renderParam(p Param) string {
	key := l.vc.Encode(p.Key)
	switch p.Value.kind {
	case KindScalar:
		return key + "=" + l.vc.Encode(p.Value.scalar)
	case KindList:
		segs := make([]string, len(p.Value.list))
		for i, elem := range p.Value.list {
			if elem == nil {
				segs[i] = key + "="
			} else {
				segs[i] = key + "=" + l.vc.Encode(*elem)
			}
		}
		return strings.Join(segs, l.delim)
	default:
		return key + "="
	}
}

// String renders the full link: URI, query string and encoded anchor. If
// the URI already contains a "?", additional query data is attached with
// the configured delimiter instead of a second "?". The result is passed
// through the host's rewrite hook, except that an empty result is
// returned as-is.
func (l *Link) String() string {
	var b strings.Builder

	if l.hasURI {
		b.WriteString(l.uri)
	}

	if len(l.params) > 0 {
		if !l.hasURI || !strings.Contains(l.uri, "?") {
			b.WriteByte('?')
		} else {
			b.WriteString(l.delim)
		}
		b.WriteString(l.QueryString())
	}

	if l.hasAnchor {
		b.WriteByte('#')
		b.WriteString(l.vc.Encode(l.anchor))
	}

	out := b.String()
	if out == "" {
		return out
	}
	return l.vc.Rewrite(out)
}
