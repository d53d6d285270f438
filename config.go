package viewkit

import (
	"strconv"
	"strings"
)

// Config carries the option map for one tool. Values typically come from a
// decoded YAML document, so the typed getters accept the loose forms YAML
// produces (bool, int, float64, string) and convert as needed.
type Config map[string]any

// Bool returns the boolean value for key, or def if the key is absent or
// the value cannot be interpreted as a boolean.
func (c Config) Bool(key string, def bool) bool {
	v, ok := c[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
	}
	return def
}

// Int returns the integer value for key, or def if the key is absent or
// the value cannot be interpreted as an integer.
func (c Config) Int(key string, def int) int {
	v, ok := c[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return def
}

// String returns the string value for key, or def if the key is absent.
// Non-string scalars are converted to their string form.
func (c Config) String(key string, def string) string {
	v, ok := c[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return def
}
