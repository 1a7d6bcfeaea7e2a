// Package web exposes the board and messaging core over a JSON HTTP API.
// It is the trust boundary for admin operations: the shared admin secret is
// checked here, before any core model runs, and never re-checked inside
// the core.
package web

import "crypto/subtle"

// checkAdmin reports whether the supplied password exactly matches the
// configured admin secret. An empty configured secret disables all admin
// paths rather than allowing empty-for-empty matches. Comparison is
// constant-time.
func checkAdmin(configured, supplied string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(supplied)) == 1
}
