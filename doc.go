// Package viewkit provides a toolbox of view tools for server-rendered Go
// template applications: an immutable, chainable link builder and a
// recursive template evaluator, plus the plumbing to configure them and
// place them into a template scope per request.
//
// Tools are registered in a Toolbox under a key, configured once from a
// map of options, and then either shared across requests
// (application scope) or instantiated per request against a view.Context
// (request scope).
package viewkit
