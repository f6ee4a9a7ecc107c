// Package htmlsanitize strips dangerous markup from user-supplied text.
//
// Post details and student notes arrive from the admin SPA as free text;
// anything that could execute in another admin's browser is removed before
// it is stored.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// ugc permits common formatting tags (p, strong, em, a, lists).
	ugc = bluemonday.UGCPolicy()

	// strict strips all tags, leaving only text content.
	strict = bluemonday.StrictPolicy()
)

// Sanitize removes unsafe HTML (scripts, event handlers, javascript:
// URLs) while preserving basic formatting.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Text strips all markup, returning plain text only.
func Text(s string) string {
	return strict.Sanitize(s)
}
