package domain

// Pick is the Picker stage's one-per-game output. Every pick must carry
// positive model EV on its chosen side (§3) — the Picker is responsible
// for only emitting picks that satisfy this before they ever reach President.
type Pick struct {
	GameID          GameID    `json:"game_id"`
	BetType         BetType   `json:"bet_type"`
	Selection       Selection `json:"selection"`
	SelectionText   string    `json:"selection_text"`
	Line            float64   `json:"line"`
	Odds            AmericanOdds `json:"odds"`
	Rationale       string    `json:"rationale"`
	Confidence      float64   `json:"confidence"`       // 0..1
	ConfidenceScore int       `json:"confidence_score"` // 1..10, see §9 open question
	EdgeEstimate    float64   `json:"edge_estimate"`
	Book            string    `json:"book"`
	RedFlag         bool      `json:"red_flag,omitempty"`

	DataUnavailable bool `json:"data_unavailable,omitempty"`
}

// ApprovedPick is the President stage's per-pick decision, always carrying
// the embedded Pick plus a unit size and best-bet flag.
type ApprovedPick struct {
	Pick
	Units                  float64 `json:"units"`
	BestBet                bool    `json:"best_bet"`
	FinalDecisionReasoning string  `json:"final_decision_reasoning"`
}

// DefaultUnits is applied when a President response omits Units (§8 invariant 5).
const DefaultUnits = 1.0

// MaxBestBets enforces count(best_bet) <= min(5, len(picks)) (§8 invariant 4).
func MaxBestBets(numPicks int) int {
	if numPicks < 5 {
		return numPicks
	}
	return 5
}
