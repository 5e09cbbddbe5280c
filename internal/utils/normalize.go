package utils

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeKey trims and case-folds a user-supplied identifier (username or
// email) so that uniqueness and lookups are case-insensitive. Unicode case
// folding handles characters where a plain ToLower round-trip is lossy.
//
// A cases.Caser is stateful, so a fresh one is created per call.
func NormalizeKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
