// Package slug converts free-text display names into lowercase,
// dash-separated tokens that are safe to use as directory names and
// project identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Make converts a display name into a slug.
//
// The transformation rules are:
//   - Input is NFC-normalized and lowercased
//   - Letters and digits are kept
//   - Runs of whitespace, underscores, and dashes become a single dash
//   - Every other character is dropped
//   - The result carries no leading or trailing dash
//
// Make is total (never fails) and idempotent: Make(Make(x)) == Make(x).
// Empty or all-punctuation input yields the empty string; callers must
// substitute a placeholder before using the result as a path component.
//
// Example:
//
//	Make("Acme Co.")       // "acme-co"
//	Make("  Über GmbH  ")  // "über-gmbh"
//	Make("unnamed_brand")  // "unnamed-brand"
func Make(name string) string {
	s := strings.ToLower(norm.NFC.String(name))

	var b strings.Builder
	b.Grow(len(s))
	pendingDash := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == '-':
			pendingDash = true
		}
	}
	return b.String()
}
