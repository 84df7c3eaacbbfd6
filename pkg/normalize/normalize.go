// Package normalize turns display names into the comparison keys used to
// deduplicate catalog entities.
package normalize

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var combining = runes.Predicate(IsCombining)

// Key lower-cases text, applies compatibility decomposition and drops every
// combining mark. "Café", "CAFE" and "Café" all share the key "cafe".
func Key(text string) string {
	// chains keep internal buffers, so one is built per call
	t := transform.Chain(norm.NFKD, runes.Remove(combining))
	// norm and runes transformers do not fail on string input
	out, _, _ := transform.String(t, strings.ToLower(text))
	return out
}

// IsCombining reports whether r has a nonzero canonical combining class.
func IsCombining(r rune) bool {
	return norm.NFKD.PropertiesString(string(r)).CCC() != 0
}

// Decompose returns the NFKD form of text.
func Decompose(text string) string {
	return norm.NFKD.String(text)
}
