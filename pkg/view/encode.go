package view

import (
	"net/url"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// QueryEscape percent-encodes s in the given character encoding. Charset
// names are resolved the way browsers resolve them (via the WHATWG encoding
// index), so "latin1", "ISO-8859-1" and friends all work. An empty or
// UTF-8 charset takes the fast path. If the charset is unknown or the
// string cannot be represented in it, the UTF-8 encoding is used instead.
func QueryEscape(s, charset string) string {
	if s == "" {
		return ""
	}
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return url.QueryEscape(s)
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return url.QueryEscape(s)
	}
	converted, err := enc.NewEncoder().String(s)
	if err != nil {
		return url.QueryEscape(s)
	}
	return url.QueryEscape(converted)
}
