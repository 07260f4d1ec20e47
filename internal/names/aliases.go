package names

import "strings"

// knownMascots lists common-enough mascot tokens that stripMascot can
// safely drop them (Normalize with forMatching, which Canonical builds on).
// Not exhaustive — a best-effort list.
var knownMascots = map[string]bool{
	"tigers": true, "bulldogs": true, "wildcats": true, "eagles": true,
	"hawks": true, "redhawks": true, "hurricanes": true, "cardinals": true,
	"panthers": true, "bears": true, "bobcats": true, "cougars": true,
	"gamecocks": true, "aggies": true, "spartans": true, "wolverines": true,
	"huskies": true, "terrapins": true, "hoyas": true, "musketeers": true,
	"friars": true, "pirates": true, "gaels": true, "bulls": true,
	"golden eagles": true, "blue devils": true, "volunteers": true,
	"razorbacks": true, "gators": true, "seminoles": true,
}

// disambiguate resolves homonym school names that Normalize alone cannot
// tell apart, ported from the curated table described in §4.1. Keys are
// the mascot-stripped normalized form with parentheses removed (so "&" is
// already spelled " and "); values are the canonical key.
var disambiguate = map[string]string{
	"miami":      "miami fl",
	"miami oh":   "miami oh",
	"miami ohio": "miami oh",
	"miami fl":   "miami fl",
	"miami florida": "miami fl",

	"north carolina":        "north carolina",
	"unc":                   "north carolina",
	"nc a and t":             "nc a&t",
	"north carolina a and t": "nc a&t",
	"north carolina agricultural and mechanical": "nc a&t",
	"nc central":            "nc central",
	"north carolina central": "nc central",

	"st johns": "st johns",
	"saint johns": "st johns",

	"st marys": "st marys",
	"saint marys": "st marys",

	"st josephs": "st josephs",
	"saint josephs": "st josephs",
}

// Canonical applies Normalize(name, true), drops parentheses, and then
// looks the result up in the disambiguation table, producing the stable key
// used across every cache (§4.1).
func Canonical(name string) string {
	n := Normalize(name, true)
	n = collapseWhitespace(strings.NewReplacer("(", "", ")", "").Replace(n))
	if canon, ok := disambiguate[n]; ok {
		return canon
	}
	return n
}

// Variations returns alternate spellings worth trying on a cache-lookup
// miss: the raw normalized form, the matching-normalized form (mascot
// stripped), and the canonical form, de-duplicated, canonical last so
// callers trying "canonical, then normalized, then variations" in order
// naturally exhaust cheap, clean lookups before approximate ones.
func Variations(name string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(Normalize(name, false))
	add(Normalize(name, true))
	add(Canonical(name))
	return out
}
