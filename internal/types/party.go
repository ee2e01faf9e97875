package types

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// PartyRecord names a director or the compilation signatory as they appear
// in the declaration and signatory blocks of a report.
type PartyRecord struct {
	Name  string
	Title string
}

// SameAs reports whether two records name the same person in the same
// role. Comparison is by normalized name and title, never raw strings:
// prior-year reports vary in casing and spacing around the same name.
func (p PartyRecord) SameAs(other PartyRecord) bool {
	return NormalizeName(p.Name) == NormalizeName(other.Name) &&
		NormalizeName(p.Title) == NormalizeName(other.Title)
}

var foldCaser = cases.Fold()

// NormalizeName canonicalizes a person or entity name for comparison:
// case-folded, punctuation dropped, runs of whitespace collapsed to a
// single space.
func NormalizeName(s string) string {
	folded := foldCaser.String(s)
	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r), unicode.IsPunct(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// ContainsParty reports whether the slice holds a record naming the same
// person in the same role.
func ContainsParty(records []PartyRecord, target PartyRecord) bool {
	for _, r := range records {
		if r.SameAs(target) {
			return true
		}
	}
	return false
}
