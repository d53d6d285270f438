package host

import "testing"

func TestSessionRewriterRewriteURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []RewriterOption
		want string
	}{
		{"plain path", "/foo", nil, "/foo?sid=abc123"},
		{"existing query", "/foo?a=1", nil, "/foo?a=1&sid=abc123"},
		{"fragment kept last", "/foo#top", nil, "/foo?sid=abc123#top"},
		{"query and fragment", "/foo?a=1#top", nil, "/foo?a=1&sid=abc123#top"},
		{"empty input passes through", "", nil, ""},
		{
			"xhtml delimiter",
			"/foo?a=1",
			[]RewriterOption{WithRewriteDelimiter("&amp;")},
			"/foo?a=1&amp;sid=abc123",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSessionRewriter("sid", "abc123", tt.opts...)
			if got := r.RewriteURL(tt.in); got != tt.want {
				t.Errorf("RewriteURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSessionRewriterEmptyID(t *testing.T) {
	r := NewSessionRewriter("sid", "")
	if got := r.RewriteURL("/foo"); got != "/foo" {
		t.Errorf("RewriteURL = %q, want /foo", got)
	}
}

func TestSessionRewriterEscapesID(t *testing.T) {
	r := NewSessionRewriter("sid", "a b")
	if got, want := r.RewriteURL("/foo"), "/foo?sid=a+b"; got != want {
		t.Errorf("RewriteURL = %q, want %q", got, want)
	}
}

func TestSessionRewriterDefaultParam(t *testing.T) {
	r := NewSessionRewriter("", "x")
	if got, want := r.RewriteURL("/foo"), "/foo?sid=x"; got != want {
		t.Errorf("RewriteURL = %q, want %q", got, want)
	}
}
