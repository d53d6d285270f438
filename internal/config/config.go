package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/viewkit-dev/viewkit"
	"github.com/viewkit-dev/viewkit/internal/errors"
)

const (
	// FileName is the default name of the configuration file.
	FileName = "viewkit.yaml"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultTemplates is the default templates directory.
	DefaultTemplates = "templates"
)

// Config represents the complete viewkit.yaml configuration.
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr,omitempty"`

	// Templates is the directory containing template files.
	Templates string `yaml:"templates,omitempty"`

	// Static is the directory served under /static/, if any.
	Static string `yaml:"static,omitempty"`

	// Root is the application root path the server is mounted under.
	Root string `yaml:"root,omitempty"`

	// Charset is the response character encoding.
	Charset string `yaml:"charset,omitempty"`

	// Metrics mounts the Prometheus endpoint at /metrics.
	Metrics bool `yaml:"metrics,omitempty"`

	// TrustProxy honors X-Forwarded-* headers from a fronting proxy.
	TrustProxy bool `yaml:"trustProxy,omitempty"`

	// Session configures cookieless session tracking.
	Session SessionConfig `yaml:"session,omitempty"`

	// Tools holds the per-tool option maps, keyed by tool key.
	Tools map[string]map[string]any `yaml:"tools,omitempty"`
}

// SessionConfig configures session tracking.
type SessionConfig struct {
	// Param is the query parameter carrying the session id in rewritten
	// links (default "sid").
	Param string `yaml:"param,omitempty"`

	// TTL is the session lifetime (e.g. "30m").
	TTL string `yaml:"ttl,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Addr:      DefaultAddr,
		Templates: DefaultTemplates,
	}
}

// Load reads the configuration from path. A missing file at the default
// location yields the defaults; a missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, errors.Wrap("C001", err, path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap("C002", err, path)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Templates == "" {
		cfg.Templates = DefaultTemplates
	}
	return cfg, nil
}

// ToolConfigs converts the raw tool maps into the toolbox form.
func (c *Config) ToolConfigs() map[string]viewkit.Config {
	if len(c.Tools) == 0 {
		return nil
	}
	out := make(map[string]viewkit.Config, len(c.Tools))
	for key, m := range c.Tools {
		out[key] = viewkit.Config(m)
	}
	return out
}

// SessionTTL parses the configured session lifetime, defaulting to zero
// (which lets the host apply its own default).
func (c *Config) SessionTTL() (time.Duration, error) {
	if c.Session.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Session.TTL)
	if err != nil {
		return 0, errors.Wrap("C003", err, "session.ttl")
	}
	return d, nil
}
