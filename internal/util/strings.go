// Package util provides small helpers shared across the sshc application.
// This package is intentionally kept dependency-free (no imports from other
// internal/* packages) so it can serve as a shared foundation without
// introducing circular dependencies.
package util

import "strings"

// DefaultString returns the fallback value if v is empty or consists entirely
// of whitespace; otherwise it returns v unchanged.
//
// Examples:
//
//	DefaultString("hello", "world")  → "hello"   // non-empty → kept
//	DefaultString("",      "world")  → "world"   // empty → fallback
//	DefaultString("  ",    "world")  → "world"   // whitespace-only → fallback
func DefaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// EmptyDash returns "-" if s is empty or consists entirely of whitespace;
// otherwise it returns s unchanged.
//
// Used by the CLI tables and the TUI detail panel to show a visible
// placeholder for optional fields (User, IdentityFile, Folder) instead of
// an ambiguous blank cell.
func EmptyDash(s string) string {
	return DefaultString(s, "-")
}
