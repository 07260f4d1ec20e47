package names

// FuzzyThreshold is the partial-ratio floor below which two names are
// considered unrelated (§4.1, §8 invariant 6).
const FuzzyThreshold = 75

// Match reports whether a and b name the same team: exact iff their
// canonical forms agree, else a fuzzy partial-ratio >= FuzzyThreshold on
// their matching-normalized forms (§4.1).
func Match(a, b string) bool {
	if Canonical(a) == Canonical(b) {
		return true
	}
	na := Normalize(a, true)
	nb := Normalize(b, true)
	return partialRatio(na, nb) >= FuzzyThreshold
}

// MatchScore returns the partial-ratio score used by Match, for callers
// that want to log or rank near-misses (e.g. event-to-game matching, §4.4).
func MatchScore(a, b string) int {
	return partialRatio(Normalize(a, true), Normalize(b, true))
}
