package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (C001-C099)
	// ============================================

	"C001": {
		Category:   CategoryConfig,
		Message:    "cannot read configuration file %q",
		Detail:     "The configuration file exists but could not be read.",
		Suggestion: "Check the file permissions, or pass --config with a readable path.",
	},
	"C002": {
		Category:   CategoryConfig,
		Message:    "invalid configuration file %q",
		Detail:     "The configuration file is not valid YAML or does not match the expected schema.",
		Suggestion: "Validate the YAML syntax and compare the keys against the documented schema.",
	},
	"C003": {
		Category:   CategoryConfig,
		Message:    "invalid value for option %q",
		Detail:     "A tool option has a value that cannot be converted to the expected type.",
		Suggestion: "Booleans accept true/false, integers accept numbers or numeric strings.",
	},

	// ============================================
	// Toolbox Errors (T001-T099)
	// ============================================

	"T001": {
		Category:   CategoryToolbox,
		Message:    "tool %q is already registered",
		Detail:     "Each tool key may be registered only once per toolbox.",
		Suggestion: "Use a different key or remove the duplicate registration.",
	},
	"T002": {
		Category:   CategoryToolbox,
		Message:    "unknown tool %q",
		Detail:     "No tool with this key has been registered in the toolbox.",
		Suggestion: "Register the tool before configuring or using it.",
	},
	"T003": {
		Category:   CategoryToolbox,
		Message:    "tool %q cannot be initialized without a view context",
		Detail:     "Request-scoped tools require a non-nil view.Context.",
		Suggestion: "Build a view.Context from the current request before collecting the scope.",
	},

	// ============================================
	// Loader Errors (L001-L099)
	// ============================================

	"L001": {
		Category:   CategoryLoader,
		Message:    "template %q not found",
		Detail:     "The template source has no entry with this name.",
		Suggestion: "Check the template name and the configured templates directory or bucket prefix.",
	},
}
