// Package betting sizes approved picks into unit stakes.
package betting

import "github.com/tpham/dailycard/internal/domain"

// KellyUnits converts a model edge into a fraction-of-bankroll stake,
// scaled down by kellyFraction (config §6, a conservative multiple of full
// Kelly — full Kelly is well known to be too aggressive against a model
// that is only approximately calibrated). Never returns a negative stake;
// a non-positive edge means no bet, not a short.
func KellyUnits(edge, modelProb float64, odds domain.AmericanOdds, kellyFraction float64) float64 {
	if edge <= 0 || modelProb <= 0 {
		return 0
	}
	b := odds.Payout() - 1 // net fractional odds
	if b <= 0 {
		return 0
	}

	// Full Kelly: f* = (bp - q) / b, where q = 1-p.
	q := 1 - modelProb
	full := (b*modelProb - q) / b
	if full <= 0 {
		return 0
	}

	fraction := full * kellyFraction
	units := fraction * domain.DefaultUnits * 10 // scale so a 10% stake (after kellyFraction) reads as 1 unit
	if units > 3*domain.DefaultUnits {
		units = 3 * domain.DefaultUnits // hard cap: no single pick exceeds 3 units
	}
	return units
}
