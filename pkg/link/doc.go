// Package link builds and URL-encodes hyperlinks inside server-rendered
// templates.
//
// A Link is an immutable snapshot of a URI, an anchor and an ordered list
// of query parameters. Every mutator returns a new Link and never changes
// the receiver, so a base link can be shared and extended independently:
//
//	base := l.Relative("search").Anchor("results")
//	first := base.Param("page", 1)
//	second := base.Param("page", 2)
//
// first and second share nothing mutable with base or with each other.
// Rendering with String joins the URI, the encoded query string and the
// encoded anchor, then passes the result through the host's link rewrite
// hook (used for cookieless session tracking).
package link
