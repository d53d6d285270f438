package viewkit

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/viewkit-dev/viewkit/internal/errors"
	"github.com/viewkit-dev/viewkit/pkg/view"
)

// Scope determines the lifecycle of a registered tool.
type Scope int

const (
	// ScopeApplication tools are shared by all requests. They must be safe
	// for concurrent use.
	ScopeApplication Scope = iota

	// ScopeRequest tools produce a fresh value per request via their
	// ForRequest method.
	ScopeRequest
)

// String returns a human-readable name for the scope.
func (s Scope) String() string {
	switch s {
	case ScopeApplication:
		return "application"
	case ScopeRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Configurable is implemented by tools that accept configuration options.
type Configurable interface {
	Configure(conf Config) error
}

// RequestTool is implemented by request-scoped tools. ForRequest returns
// the value placed into the template scope for one request.
type RequestTool interface {
	ForRequest(vc *view.Context) (any, error)
}

type entry struct {
	key   string
	scope Scope
	tool  any
}

// Toolbox holds named view tools and assembles per-request template scopes.
// Registration and configuration happen once at startup; afterwards a
// Toolbox is read-only and safe for concurrent use.
type Toolbox struct {
	mu     sync.RWMutex
	tools  map[string]*entry
	logger *slog.Logger
}

// ToolboxOption configures a Toolbox.
type ToolboxOption func(*Toolbox)

// WithLogger sets the logger used by the toolbox.
func WithLogger(logger *slog.Logger) ToolboxOption {
	return func(b *Toolbox) { b.logger = logger }
}

// NewToolbox creates an empty Toolbox.
func NewToolbox(opts ...ToolboxOption) *Toolbox {
	b := &Toolbox{
		tools:  make(map[string]*entry),
		logger: slog.Default().With("component", "toolbox"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register adds a tool under the given key. Registering the same key twice
// is an error.
func (b *Toolbox) Register(key string, tool any, scope Scope) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.tools[key]; exists {
		return errors.New("T001", key)
	}
	b.tools[key] = &entry{key: key, scope: scope, tool: tool}
	b.logger.Debug("tool registered", "key", key, "scope", scope.String())
	return nil
}

// Tool returns the registered tool for key.
func (b *Toolbox) Tool(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.tools[key]
	if !ok {
		return nil, false
	}
	return e.tool, true
}

// Keys returns the registered tool keys in sorted order.
func (b *Toolbox) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.tools))
	for k := range b.tools {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Configure distributes per-tool option maps to the registered tools.
// Entries for unregistered keys are an error; registered tools without an
// entry keep their defaults.
func (b *Toolbox) Configure(conf map[string]Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, toolConf := range conf {
		e, ok := b.tools[key]
		if !ok {
			return errors.New("T002", key)
		}
		c, ok := e.tool.(Configurable)
		if !ok {
			b.logger.Warn("tool does not accept configuration", "key", key)
			continue
		}
		if err := c.Configure(toolConf); err != nil {
			return err
		}
	}
	return nil
}

// ScopeFor assembles the template scope for one request: application tools
// are shared as-is, request tools are instantiated against vc.
func (b *Toolbox) ScopeFor(vc *view.Context) (map[string]any, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	scope := make(map[string]any, len(b.tools))
	for key, e := range b.tools {
		if e.scope == ScopeApplication {
			scope[key] = e.tool
			continue
		}
		rt, ok := e.tool.(RequestTool)
		if !ok {
			scope[key] = e.tool
			continue
		}
		if vc == nil {
			return nil, errors.New("T003", key)
		}
		v, err := rt.ForRequest(vc)
		if err != nil {
			return nil, err
		}
		scope[key] = v
	}
	return scope, nil
}
