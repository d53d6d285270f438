package host

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/viewkit-dev/viewkit"
	"github.com/viewkit-dev/viewkit/internal/errors"
	"github.com/viewkit-dev/viewkit/pkg/link"
	"github.com/viewkit-dev/viewkit/pkg/render"
)

// linkEvaluator replaces the marker "@self" with the link tool's rendered
// self link, which is enough to observe scope wiring and URL rewriting
// without a real template engine.
func linkEvaluator() render.Evaluator {
	return render.EvaluatorFunc(func(ctx context.Context, scope render.Scope, src string) (string, error) {
		l, _ := scope["link"].(*link.Link)
		if l == nil {
			return src, nil
		}
		return strings.ReplaceAll(src, "@self", l.Self().String()), nil
	})
}

type pageSource map[string]string

func (p pageSource) Load(_ context.Context, name string) ([]byte, error) {
	body, ok := p[name]
	if !ok {
		return nil, errors.New("L001", name)
	}
	return []byte(body), nil
}

func newTestServer(t *testing.T, pages map[string]string, opts ...ServerOption) *Server {
	t.Helper()
	box := viewkit.NewToolbox()
	if err := box.Register("link", link.NewTool(), viewkit.ScopeRequest); err != nil {
		t.Fatal(err)
	}
	return New(box, pageSource(pages), linkEvaluator(), opts...)
}

func TestTemplateName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "index.html"},
		{"/about", "about.html"},
		{"/about.html", "about.html"},
		{"/docs/", "docs/index.html"},
		{"/docs/guide", "docs/guide.html"},
		{"/feed.xml", "feed.xml"},
	}
	for _, tt := range tests {
		if got := templateName(tt.path); got != tt.want {
			t.Errorf("templateName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestServerRendersPage(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"index.html": "<a href=\"@self\">here</a>",
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "http://h/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=UTF-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "href=\"/") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestServerNotFound(t *testing.T) {
	srv := newTestServer(t, map[string]string{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "http://h/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServerSessionRewriting(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"index.html": "<a href=\"@self\">here</a>",
	})

	// First visit: no cookie, so a session is issued and links carry it.
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "http://h/", nil))

	if !strings.Contains(rec.Body.String(), "sid=") {
		t.Fatalf("first visit body lacks session id: %q", rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	var sid string
	for _, c := range cookies {
		if c.Name == SessionCookie {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatal("no session cookie set")
	}

	// Second visit with the cookie: the client supports cookies, links
	// stay clean.
	req := httptest.NewRequest("GET", "http://h/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sid})
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if strings.Contains(rec.Body.String(), "sid=") {
		t.Errorf("cookie visit still rewrites links: %q", rec.Body.String())
	}
}

func TestServerSessionFromQueryParam(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"index.html": "<a href=\"@self\">here</a>",
	})

	id, err := srv.Sessions().Issue()
	if err != nil {
		t.Fatal(err)
	}

	// A cookieless client following a rewritten link keeps its session.
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "http://h/?sid="+id, nil))

	if !strings.Contains(rec.Body.String(), "sid="+id) {
		t.Errorf("existing session not reused: %q", rec.Body.String())
	}
}

func TestServerCharsetHeader(t *testing.T) {
	srv := newTestServer(t, map[string]string{"index.html": "ok"},
		WithCharset("ISO-8859-1"))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "http://h/", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=ISO-8859-1" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestServerMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, map[string]string{}, WithMetricsEndpoint(true))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "http://h/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d", rec.Code)
	}
}
