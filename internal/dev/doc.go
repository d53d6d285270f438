// Package dev implements the development-mode live reload: a filesystem
// watcher over the templates directory and a websocket broadcaster that
// tells connected browsers to refresh when a template changes.
package dev
