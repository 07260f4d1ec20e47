package domain

import "time"

// BetType is a closed sum over the three market families the pipeline
// understands. Keep this closed — a new bet type is a schema change
// across every downstream stage (§6: "JSON schemas are canonical ...
// changing a schema is a breaking interface change").
type BetType string

const (
	BetSpread    BetType = "spread"
	BetTotal     BetType = "total"
	BetMoneyline BetType = "moneyline"
)

// Side is one of "over"/"under", used only by total markets.
type Side string

const (
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// Selection is the tagged variant called for in §9's design notes: a
// dynamically-typed payload in the source becomes a variant that carries
// only the shape each bet type actually needs.
//
//   - Spread:    Team is set, Side is empty.
//   - Total:     Side is set ("over"/"under"), Team is empty.
//   - Moneyline: Team is set, Side is empty.
type Selection struct {
	Team string `json:"team,omitempty"`
	Side Side   `json:"side,omitempty"`
}

// IsEmpty reports whether neither a team nor a side could be resolved —
// the "do not guess" terminal state of team-label recovery (§4.4 rule 4).
func (s Selection) IsEmpty() bool {
	return s.Team == "" && s.Side == ""
}

// AmericanOdds is an integer in (-inf,-100] U [+100,+inf).
type AmericanOdds int

// Payout returns the multiplier applied to stake on a win: odds/100+1 if
// positive, 100/|odds|+1 if negative (GLOSSARY: American odds).
func (o AmericanOdds) Payout() float64 {
	if o > 0 {
		return float64(o)/100.0 + 1.0
	}
	return 100.0/float64(-o) + 1.0
}

// BettingLine is one market quote for one (game, book, bet_type).
//
// Invariant (§3): for a given (game_id, book), the spread and moneyline
// markets name exactly the two game teams; the total market names
// "over"/"under". When the vendor doesn't label an outcome, Selection is
// inferred per §4.4 and may be the zero value if inference was refused.
type BettingLine struct {
	GameID     GameID       `json:"game_id"`
	Book       string       `json:"book"`
	BetType    BetType      `json:"bet_type"`
	Line       float64      `json:"line"`
	Odds       AmericanOdds `json:"odds"`
	Selection  Selection    `json:"selection"`
	Timestamp  time.Time    `json:"ts"`
}
