// Package names implements the team-name normalizer that bridges the
// schedule, odds, and rankings sources — each of which spells team names
// differently. Ported from the conventions of the teacher's
// internal/core/ticker package (diacritic stripping, alias table, fuzzy
// fallback) and generalized from market tickers to college/pro team names.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var suffixWords = []string{
	"university", "college", "athletics", "athletic department",
}

// abbrevRewrites expands institutional shorthand before mascot stripping,
// so "Ohio St" and "Ohio State" converge before the disambiguation table
// ever sees them.
var abbrevRewrites = []struct{ from, to string }{
	{" st.", " state"},
	{" st ", " state "},
	{" tech", " institute of technology"},
	{" a&m", " agricultural and mechanical"},
	{" a & m", " agricultural and mechanical"},
	{"&", " and "},
}

// Normalize lowercases, strips diacritics, collapses whitespace, and
// rewrites institutional abbreviations. When forMatching is true, a
// trailing mascot word is also stripped; Canonical builds on that form, so
// "Miami Ohio RedHawks" and "Miami (OH)" reach the same table entry.
func Normalize(name string, forMatching bool) string {
	if name == "" {
		return ""
	}
	s := stripDiacritics(name)
	s = strings.ToLower(strings.TrimSpace(s))
	s = collapseWhitespace(s)

	for _, r := range abbrevRewrites {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	s = collapseWhitespace(s)

	for _, suf := range suffixWords {
		s = strings.TrimSuffix(s, " "+suf)
	}

	if forMatching {
		s = stripMascot(s)
	}

	return strings.TrimSpace(s)
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripMascot drops a trailing mascot token when the remaining prefix is
// still at least two words long (avoids mangling single-word school names
// like "Syracuse" or "Duke" that have no separate mascot in common usage).
func stripMascot(s string) string {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return s
	}
	last := fields[len(fields)-1]
	if knownMascots[last] {
		return strings.Join(fields[:len(fields)-1], " ")
	}
	return s
}
