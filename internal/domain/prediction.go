package domain

// WinProbs must sum to 1 within 1e-6 (§8 invariant 2).
type WinProbs struct {
	Away float64 `json:"away"`
	Home float64 `json:"home"`
}

// PredictedScores is the Model's projected final score for a game.
type PredictedScores struct {
	Away float64 `json:"away"`
	Home float64 `json:"home"`
}

// Predictions is the core numeric output of the Model stage.
//
// Invariants (§3, §8):
//   - Margin == Home - Away (within 0.01)
//   - Total == Home + Away (within 0.01)
//   - WinProbs.Away + WinProbs.Home == 1 (within 1e-6)
type Predictions struct {
	Scores     PredictedScores `json:"scores"`
	Margin     float64         `json:"margin"`
	Total      float64         `json:"total"`
	WinProbs   WinProbs        `json:"win_probs"`
	Confidence float64         `json:"confidence"`
}

// MarketEdge is the Model's read of one market against the priced line.
type MarketEdge struct {
	MarketType     BetType `json:"market_type"`
	MarketLine     float64 `json:"market_line"`
	ModelProb      float64 `json:"model_prob"`
	ImpliedProb    float64 `json:"implied_prob"`
	Edge           float64 `json:"edge"`
	EdgeConfidence float64 `json:"edge_confidence"`
}

// Prediction is the Model stage's one-per-game output.
type Prediction struct {
	GameID      GameID       `json:"game_id"`
	Predictions Predictions  `json:"predictions"`
	MarketEdges []MarketEdge `json:"market_edges"`
	EVEstimate  float64      `json:"ev_estimate"`
	ModelNotes  []string     `json:"model_notes"`

	DataUnavailable bool `json:"data_unavailable,omitempty"`
}

// ConfidenceCapped reports whether the 0.3 cap from §4.6 applies: neither
// side had advanced stats available in the source GameInsight.
func ConfidenceCapped(insight GameInsight) bool {
	return !insight.Adv.Away.Available && !insight.Adv.Home.Available
}

const LowConfidenceCap = 0.3
