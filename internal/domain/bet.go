package domain

import "time"

// BetResult is the settled outcome of a bet. Pending until the Auditor runs.
type BetResult string

const (
	ResultPending BetResult = "pending"
	ResultWin     BetResult = "win"
	ResultLoss    BetResult = "loss"
	ResultPush    BetResult = "push"
)

// Bet tracks a simulated wager against one ApprovedPick. Result and
// ProfitLoss are set exactly once, by the Auditor, and never touched again
// (§3 lifecycle note).
type Bet struct {
	PickID     string    `json:"pick_id"`
	PlacedAt   time.Time `json:"placed_at"`
	Stake      float64   `json:"stake"`
	Result     BetResult `json:"result"`
	ProfitLoss float64   `json:"profit_loss"`
}

// Bankroll is an append-only daily snapshot (§3).
type Bankroll struct {
	Date         time.Time `json:"date"`
	Balance      float64   `json:"balance"`
	TotalWagered float64   `json:"total_wagered"`
	TotalProfit  float64   `json:"total_profit"`
	ActiveBets   int       `json:"active_bets"`
}
