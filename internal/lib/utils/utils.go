// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import "strings"

// NormalizeEmail trims and lowercases an email address so that lookups and
// the unique constraint see one spelling per mailbox.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NilIfBlank trims s and returns nil when nothing is left. Optional text
// columns are stored as NULL rather than as empty strings.
func NilIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
