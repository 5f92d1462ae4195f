// Package textfmt prepares free text for the cipher core, which accepts
// only the letters A-Z.
package textfmt

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Report is the outcome of Normalize.
type Report struct {
	// Text is the normalized text, A-Z only.
	Text string

	// Folded counts input characters that were kept after case folding or
	// diacritic removal ("é" -> "E").
	Folded int

	// Stripped counts input characters that were dropped.
	Stripped int
}

// Modified reports whether the input had to be changed. Callers surface it
// as a warning; it is never an error.
func (r Report) Modified() bool {
	return r.Folded > 0 || r.Stripped > 0
}

// Normalize upper-cases s, removes diacritics and drops every character
// that does not then fall in A-Z.
func Normalize(s string) Report {
	var (
		rep   Report
		b     strings.Builder
		fold  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		upper = cases.Upper(language.Und)
	)
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			continue
		}
		folded, _, err := transform.String(fold, string(r))
		if err != nil {
			rep.Stripped++
			continue
		}
		folded = upper.String(folded)
		if folded == "" || strings.IndexFunc(folded, notLetter) >= 0 {
			rep.Stripped++
			continue
		}
		b.WriteString(folded)
		rep.Folded++
	}
	rep.Text = b.String()
	return rep
}

// IsNormalized reports whether s already consists of A-Z only.
func IsNormalized(s string) bool {
	return strings.IndexFunc(s, notLetter) < 0
}

func notLetter(r rune) bool {
	return r < 'A' || r > 'Z'
}
