package link

import (
	"log/slog"

	"github.com/viewkit-dev/viewkit"
	"github.com/viewkit-dev/viewkit/internal/errors"
	"github.com/viewkit-dev/viewkit/pkg/view"
)

// Configuration keys understood by Tool.Configure.
const (
	// SelfAbsoluteKey makes Self produce an absolute URI.
	SelfAbsoluteKey = "self-absolute"

	// SelfIncludeParametersKey makes Self fold in the current request's
	// parameters.
	SelfIncludeParametersKey = "self-include-parameters"

	// AutoIgnoreParametersKey controls whether explicitly added parameter
	// names are automatically excluded by WithAllParameters.
	AutoIgnoreParametersKey = "auto-ignore-parameters"

	// XHTMLKey selects the markup-escaped query delimiter.
	XHTMLKey = "xhtml"
)

// Query data delimiters.
const (
	// HTMLDelimiter is the standard delimiter for query data.
	HTMLDelimiter = "&"

	// XHTMLDelimiter is the markup-escaped delimiter required inside
	// XHTML attribute values.
	XHTMLDelimiter = "&amp;"
)

// Tool holds the application-scoped link configuration and creates the
// request-scoped root Link values. It is safe for concurrent use after
// configuration.
type Tool struct {
	selfAbsolute bool
	selfParams   bool
	autoIgnore   bool
	xhtml        bool
	logger       *slog.Logger
}

// ToolOption configures a Tool.
type ToolOption func(*Tool)

// WithSelfAbsolute controls whether Self returns an absolute URI.
func WithSelfAbsolute(absolute bool) ToolOption {
	return func(t *Tool) { t.selfAbsolute = absolute }
}

// WithSelfIncludeParameters controls whether Self includes the current
// request's parameters.
func WithSelfIncludeParameters(include bool) ToolOption {
	return func(t *Tool) { t.selfParams = include }
}

// WithAutoIgnore controls whether explicitly added parameters are
// automatically added to the ignore set. Enabled by default.
func WithAutoIgnore(auto bool) ToolOption {
	return func(t *Tool) { t.autoIgnore = auto }
}

// WithXHTML selects the "&amp;" query delimiter. The delimiter is fixed at
// initialization; it is deliberately not a per-call option.
func WithXHTML(xhtml bool) ToolOption {
	return func(t *Tool) { t.xhtml = xhtml }
}

// WithToolLogger sets the logger used by the tool.
func WithToolLogger(logger *slog.Logger) ToolOption {
	return func(t *Tool) { t.logger = logger }
}

// NewTool creates a link tool with default configuration: relative self
// links without parameters, auto-ignore enabled, plain "&" delimiter.
func NewTool(opts ...ToolOption) *Tool {
	t := &Tool{
		autoIgnore: true,
		logger:     slog.Default().With("component", "link"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Configure applies the tool's option map. All keys are optional.
func (t *Tool) Configure(conf viewkit.Config) error {
	t.selfAbsolute = conf.Bool(SelfAbsoluteKey, t.selfAbsolute)
	t.selfParams = conf.Bool(SelfIncludeParametersKey, t.selfParams)
	t.autoIgnore = conf.Bool(AutoIgnoreParametersKey, t.autoIgnore)
	t.xhtml = conf.Bool(XHTMLKey, t.xhtml)
	return nil
}

// NewLink creates the root link value for one request.
func (t *Tool) NewLink(vc *view.Context) *Link {
	delim := HTMLDelimiter
	if t.xhtml {
		delim = XHTMLDelimiter
	}
	return &Link{
		vc:           vc,
		delim:        delim,
		autoIgnore:   t.autoIgnore,
		selfAbsolute: t.selfAbsolute,
		selfParams:   t.selfParams,
	}
}

// ForRequest implements the toolbox request-tool contract.
func (t *Tool) ForRequest(vc *view.Context) (any, error) {
	if vc == nil {
		return nil, errors.New("T003", "link")
	}
	return t.NewLink(vc), nil
}
