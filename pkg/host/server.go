package host

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/viewkit-dev/viewkit"
	"github.com/viewkit-dev/viewkit/pkg/loader"
	"github.com/viewkit-dev/viewkit/pkg/render"
	"github.com/viewkit-dev/viewkit/pkg/view"
)

// SessionCookie is the cookie carrying the session id.
const SessionCookie = "viewkit_sid"

// Server renders templates from a Source with the toolbox in scope.
type Server struct {
	addr         string
	root         string
	charset      string
	staticDir    string
	sessionParam string
	metrics      bool
	trustProxy   bool
	xhtmlDelim   bool

	toolbox  *viewkit.Toolbox
	source   loader.Source
	eval     render.Evaluator
	sessions *SessionStore
	reload   http.HandlerFunc
	logger   *slog.Logger

	router chi.Router
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAddr sets the listen address (default ":8080").
func WithAddr(addr string) ServerOption {
	return func(s *Server) { s.addr = addr }
}

// WithRoot sets the application root path the server is mounted under.
func WithRoot(root string) ServerOption {
	return func(s *Server) { s.root = root }
}

// WithCharset sets the response character encoding (default UTF-8).
func WithCharset(charset string) ServerOption {
	return func(s *Server) { s.charset = charset }
}

// WithStatic serves files from dir under /static/.
func WithStatic(dir string) ServerOption {
	return func(s *Server) { s.staticDir = dir }
}

// WithMetricsEndpoint mounts the Prometheus handler at /metrics.
func WithMetricsEndpoint(enable bool) ServerOption {
	return func(s *Server) { s.metrics = enable }
}

// WithSessionParam sets the query parameter used for cookieless session
// tracking (default "sid").
func WithSessionParam(param string) ServerOption {
	return func(s *Server) { s.sessionParam = param }
}

// WithSessionTTL sets the session lifetime.
func WithSessionTTL(ttl time.Duration) ServerOption {
	return func(s *Server) { s.sessions = NewSessionStore(ttl) }
}

// WithTrustedProxy makes view contexts honor forwarding headers.
func WithTrustedProxy(trust bool) ServerOption {
	return func(s *Server) { s.trustProxy = trust }
}

// WithXHTMLRewrite makes the session rewriter use the "&amp;" separator.
func WithXHTMLRewrite(xhtml bool) ServerOption {
	return func(s *Server) { s.xhtmlDelim = xhtml }
}

// WithReloadHandler mounts a live-reload websocket handler at
// /_viewkit/reload (used by the dev server).
func WithReloadHandler(h http.HandlerFunc) ServerOption {
	return func(s *Server) { s.reload = h }
}

// WithServerLogger sets the server logger.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// New creates a Server rendering templates from source with the given
// toolbox and evaluator.
func New(toolbox *viewkit.Toolbox, source loader.Source, eval render.Evaluator, opts ...ServerOption) *Server {
	s := &Server{
		addr:         ":8080",
		sessionParam: DefaultSessionParam,
		toolbox:      toolbox,
		source:       source,
		eval:         eval,
		sessions:     NewSessionStore(DefaultSessionTTL),
		logger:       slog.Default().With("component", "host"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	if s.metrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	if s.reload != nil {
		r.Get("/_viewkit/reload", s.reload)
	}
	if s.staticDir != "" {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir)))
		r.Handle("/static/*", fileServer)
	}
	r.Get("/*", s.handlePage)
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Sessions returns the session store.
func (s *Server) Sessions() *SessionStore { return s.sessions }

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("serving", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// templateName maps a request path to a template name. Directory paths get
// index.html, extensionless paths get .html.
func templateName(requestPath string) string {
	name := strings.TrimPrefix(requestPath, "/")
	if name == "" || strings.HasSuffix(name, "/") {
		name += "index.html"
	}
	if path.Ext(name) == "" {
		name += ".html"
	}
	return name
}

// sessionRewriter resolves the session for the request and returns the
// rewriter to install, or nil when the client proved cookie support.
func (s *Server) sessionRewriter(w http.ResponseWriter, r *http.Request) *SessionRewriter {
	if c, err := r.Cookie(SessionCookie); err == nil && s.sessions.Valid(c.Value) {
		// The cookie came back: no URL rewriting needed.
		return nil
	}

	id := r.URL.Query().Get(s.sessionParam)
	if id == "" || !s.sessions.Valid(id) {
		issued, err := s.sessions.Issue()
		if err != nil {
			s.logger.Error("session issue failed", "error", err)
			return nil
		}
		id = issued
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	opts := []RewriterOption{}
	if s.xhtmlDelim {
		opts = append(opts, WithRewriteDelimiter("&amp;"))
	}
	return NewSessionRewriter(s.sessionParam, id, opts...)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := templateName(r.URL.Path)

	src, err := s.source.Load(r.Context(), name)
	if err != nil {
		s.logger.Warn("template not found", "name", name, "error", err)
		http.NotFound(w, r)
		return
	}

	viewOpts := []view.Option{
		view.WithRoot(s.root),
		view.WithCharset(s.charset),
		view.WithTrustedProxy(s.trustProxy),
	}
	if rw := s.sessionRewriter(w, r); rw != nil {
		viewOpts = append(viewOpts, view.WithRewriter(rw))
	}
	vc := view.NewContext(r, viewOpts...)

	scope, err := s.toolbox.ScopeFor(vc)
	if err != nil {
		s.logger.Error("scope assembly failed", "name", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	out, err := s.eval.Evaluate(r.Context(), scope, string(src))
	if err != nil {
		s.logger.Error("render failed", "name", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	charset := s.charset
	if charset == "" {
		charset = "UTF-8"
	}
	w.Header().Set("Content-Type", "text/html; charset="+charset)
	if _, err := w.Write([]byte(out)); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug("response write failed", "error", err)
	}
}
