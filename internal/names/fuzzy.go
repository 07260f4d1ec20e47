package names

import "github.com/sahilm/fuzzy"

// partialRatio emulates a fuzzywuzzy-style partial ratio on top of
// sahilm/fuzzy's subsequence matcher: score the shorter string as a
// fuzzy-search pattern against the longer string and normalize the
// match's rune coverage to a 0-100 scale. sahilm/fuzzy scores subsequence
// matches, not substrings, so this is an approximation of partial_ratio —
// good enough for the 75-threshold "close enough" matches §4.1 asks for,
// not a byte-for-byte port of the Python algorithm.
func partialRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	pattern, target := a, b
	if len(pattern) > len(target) {
		pattern, target = target, pattern
	}

	matches := fuzzy.Find(pattern, []string{target})
	if len(matches) == 0 {
		return 0
	}
	m := matches[0]

	coverage := float64(len(m.MatchedIndexes)) / float64(len([]rune(pattern)))
	// sahilm/fuzzy's Score rewards contiguous runs; blend it in lightly as a
	// bonus on top of coverage. Only subsequence matches score at all:
	// "manchester united" vs "man utd fc" finds no match and scores 0.
	bonus := 0.0
	if m.Score > 0 {
		bonus = 0.15
	}
	ratio := (coverage + bonus) * 100
	if ratio > 100 {
		ratio = 100
	}
	return int(ratio)
}
