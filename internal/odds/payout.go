// Package odds implements the Odds Source (§4.4): primary/fallback line
// selection, team-label recovery, and the American-odds math shared by the
// Model stage's edge calculations and the Auditor's settlement.
package odds

import "github.com/tpham/dailycard/internal/domain"

// ImpliedProbability converts American odds to a vig-included implied
// probability: |odds|/(|odds|+100) for negative, 100/(odds+100) for positive.
func ImpliedProbability(o domain.AmericanOdds) float64 {
	if o > 0 {
		return 100.0 / (float64(o) + 100.0)
	}
	return float64(-o) / (float64(-o) + 100.0)
}

// RemoveVig2 strips the bookmaker's overround from two mutually exclusive
// implied probabilities, ported from the teacher's devigging routine
// (internal/core/odds/vig.go) and generalized from decimal to American odds.
func RemoveVig2(a, b domain.AmericanOdds) (float64, float64) {
	rawA := ImpliedProbability(a)
	rawB := ImpliedProbability(b)
	total := rawA + rawB
	if total == 0 {
		return 0.5, 0.5
	}
	return rawA / total, rawB / total
}

// ExpectedValue computes EV = p_win*payout - (1-p_win)*stake for a unit
// stake (GLOSSARY: EV).
func ExpectedValue(modelProb float64, o domain.AmericanOdds, stake float64) float64 {
	payout := o.Payout() * stake
	return modelProb*payout - (1-modelProb)*stake
}

// Edge is the Model stage's read of modelProb against the market's implied
// probability, used to populate MarketEdge.Edge.
func Edge(modelProb float64, o domain.AmericanOdds) float64 {
	return modelProb - ImpliedProbability(o)
}
