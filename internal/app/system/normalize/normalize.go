// Package normalize canonicalizes user-supplied identity fields before
// they are stored or used in lookups.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Username lowercases and trims a login name.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Code uppercases and trims a course code so "py101" and "PY101" are the
// same catalog key.
func Code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Phone strips spaces and common separators from a phone number,
// preserving a leading +.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
