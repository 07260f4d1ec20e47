package odds

import (
	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/names"
)

// RawOutcome is one side of a vendor market quote before team-label
// recovery: a free-text team string (possibly blank for totals) paired
// with a line/odds pair.
type RawOutcome struct {
	TeamText string
	Line     float64
	Odds     domain.AmericanOdds
}

// RecoverSpread applies §4.4's team-label recovery rules to a two-sided
// spread market. canonicalHome/canonicalAway are the game's two canonical
// team names. Returns one Selection per outcome, in the same order as the
// input slice.
func RecoverSpread(outcomes [2]RawOutcome, canonicalHome, canonicalAway string) [2]domain.Selection {
	matched := [2]string{} // "" | "home" | "away"
	for i, o := range outcomes {
		switch {
		case o.TeamText == "":
			matched[i] = ""
		case names.Match(o.TeamText, canonicalHome):
			matched[i] = "home"
		case names.Match(o.TeamText, canonicalAway):
			matched[i] = "away"
		}
	}

	// Rule 2: exactly one side matched -> force the other to the remaining team.
	if matched[0] != "" && matched[1] == "" {
		matched[1] = otherSide(matched[0])
	} else if matched[1] != "" && matched[0] == "" {
		matched[0] = otherSide(matched[1])
	}

	// Rule 3: neither matched -> infer from sign. Negative spread/moneyline
	// is the favorite, conventionally listed as the home side in the
	// absence of any other signal.
	if matched[0] == "" && matched[1] == "" {
		for i, o := range outcomes {
			if o.Line < 0 {
				matched[i] = "home"
			} else if o.Line > 0 {
				matched[i] = "away"
			}
		}
		// still ambiguous (both zero or same sign): leave unresolved.
	}

	var out [2]domain.Selection
	for i, m := range matched {
		switch m {
		case "home":
			out[i] = domain.Selection{Team: canonicalHome}
		case "away":
			out[i] = domain.Selection{Team: canonicalAway}
		default:
			out[i] = domain.Selection{}
		}
	}
	return out
}

func otherSide(s string) string {
	if s == "home" {
		return "away"
	}
	return "home"
}

// RecoverMoneyline applies the same sign-based fallback as spreads (§4.4
// rule 3 applies to "negative spread / negative moneyline" identically),
// but moneyline markets are usually already labeled by team, so the
// forced-pairing rule (rule 2) does not apply — an unmatched, unlabeled
// side is left empty rather than guessed from its sibling.
func RecoverMoneyline(o RawOutcome, canonicalHome, canonicalAway string) domain.Selection {
	switch {
	case names.Match(o.TeamText, canonicalHome):
		return domain.Selection{Team: canonicalHome}
	case names.Match(o.TeamText, canonicalAway):
		return domain.Selection{Team: canonicalAway}
	case o.TeamText == "":
		if o.Odds < 0 {
			return domain.Selection{Team: canonicalHome}
		} else if o.Odds > 0 {
			return domain.Selection{Team: canonicalAway}
		}
	}
	return domain.Selection{}
}

// RecoverTotal labels an over/under outcome. Rule 4: if the vendor omits
// the label, do not guess — return the zero Selection.
func RecoverTotal(label string) domain.Selection {
	switch label {
	case "over":
		return domain.Selection{Side: domain.SideOver}
	case "under":
		return domain.Selection{Side: domain.SideUnder}
	default:
		return domain.Selection{}
	}
}
