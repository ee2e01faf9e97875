package extract

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MatchStrategy resolves one configured alias against the names actually
// present in a workbook. Strategies are tried in a fixed order and the
// first hit wins, so cheap exact matching always runs before fuzzy
// matching gets a chance to misfire.
type MatchStrategy interface {
	// Name identifies the strategy in log output.
	Name() string

	// Match returns the workbook name the alias resolves to, if any.
	Match(alias string, names []string) (string, bool)
}

type exactMatch struct{}

func (exactMatch) Name() string { return "exact" }

func (exactMatch) Match(alias string, names []string) (string, bool) {
	for _, n := range names {
		if n == alias {
			return n, true
		}
	}
	return "", false
}

type caseInsensitiveMatch struct{}

func (caseInsensitiveMatch) Name() string { return "case-insensitive" }

func (caseInsensitiveMatch) Match(alias string, names []string) (string, bool) {
	for _, n := range names {
		if strings.EqualFold(n, alias) {
			return n, true
		}
	}
	return "", false
}

// fuzzyMatch tolerates the small spelling drift that shows up in real
// workbooks ("ConsolPL" for "Consol PL"). Both sides are lowercased and
// space-stripped before the edit distance is measured.
type fuzzyMatch struct {
	maxDistance int
}

func (fuzzyMatch) Name() string { return "fuzzy" }

func (f fuzzyMatch) Match(alias string, names []string) (string, bool) {
	target := squash(alias)
	best := ""
	bestDist := f.maxDistance + 1
	for _, n := range names {
		d := levenshtein.ComputeDistance(target, squash(n))
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	if bestDist <= f.maxDistance {
		return best, true
	}
	return "", false
}

type substringMatch struct{}

func (substringMatch) Name() string { return "substring" }

func (substringMatch) Match(alias string, names []string) (string, bool) {
	target := squash(alias)
	for _, n := range names {
		sq := squash(n)
		if strings.Contains(sq, target) || strings.Contains(target, sq) {
			return n, true
		}
	}
	return "", false
}

func squash(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// DefaultStrategies returns the standard resolution ladder: exact, then
// case-insensitive, then fuzzy within the given edit distance, then
// substring containment.
func DefaultStrategies(fuzzyDistance int) []MatchStrategy {
	return []MatchStrategy{
		exactMatch{},
		caseInsensitiveMatch{},
		fuzzyMatch{maxDistance: fuzzyDistance},
		substringMatch{},
	}
}

// ResolveName finds the first workbook name that any alias in the family
// resolves to. The whole alias family is tried under each strategy before
// the next strategy runs, so an exact match on a later alias beats a fuzzy
// match on an earlier one.
func ResolveName(aliases, names []string, strategies []MatchStrategy) (name, strategy string, ok bool) {
	for _, s := range strategies {
		for _, alias := range aliases {
			if n, found := s.Match(alias, names); found {
				return n, s.Name(), true
			}
		}
	}
	return "", "", false
}
