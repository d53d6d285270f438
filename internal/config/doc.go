// Package config loads the viewkit.yaml project configuration: server
// settings plus the per-tool option maps distributed through the toolbox.
package config
