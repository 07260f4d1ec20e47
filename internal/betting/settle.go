package betting

import (
	"fmt"

	"github.com/tpham/dailycard/internal/domain"
)

// Settle grades one approved pick against a final game score using §4.10's
// deterministic, bet-type-specific rules. No LLM is involved: settlement is
// arithmetic on the final score, the pick's line, and its selection.
func Settle(pick domain.ApprovedPick, game domain.Game) (domain.BetResult, float64, error) {
	if !game.IsFinal() {
		return "", 0, fmt.Errorf("betting: settle: game %s is not final", game.ID)
	}

	homeScore := float64(game.Result.HomeScore)
	awayScore := float64(game.Result.AwayScore)

	var result domain.BetResult
	switch pick.BetType {
	case domain.BetSpread:
		result = settleSpread(pick, game, homeScore, awayScore)
	case domain.BetTotal:
		result = settleTotal(pick, homeScore, awayScore)
	case domain.BetMoneyline:
		result = settleMoneyline(pick, game, homeScore, awayScore)
	default:
		return "", 0, fmt.Errorf("betting: settle: unknown bet type %q", pick.BetType)
	}

	return result, ProfitLoss(result, pick.Units, pick.Odds), nil
}

// settleSpread: home covers iff home_score - away_score + spread > 0; push
// iff == 0 (§4.10). The away side of the same line is the mirror image.
func settleSpread(pick domain.ApprovedPick, game domain.Game, homeScore, awayScore float64) domain.BetResult {
	var coverMargin float64
	switch pick.Selection.Team {
	case game.TeamHome:
		coverMargin = homeScore - awayScore + pick.Line
	case game.TeamAway:
		coverMargin = awayScore - homeScore + pick.Line
	}
	switch {
	case coverMargin > 0:
		return domain.ResultWin
	case coverMargin < 0:
		return domain.ResultLoss
	default:
		return domain.ResultPush
	}
}

// settleTotal: over wins iff home+away > line; push iff == (§4.10).
func settleTotal(pick domain.ApprovedPick, homeScore, awayScore float64) domain.BetResult {
	total := homeScore + awayScore
	diff := total - pick.Line
	if pick.Selection.Side == domain.SideUnder {
		diff = -diff
	}
	switch {
	case diff > 0:
		return domain.ResultWin
	case diff < 0:
		return domain.ResultLoss
	default:
		return domain.ResultPush
	}
}

// settleMoneyline: the named team must win outright; no push (§4.10).
func settleMoneyline(pick domain.ApprovedPick, game domain.Game, homeScore, awayScore float64) domain.BetResult {
	homeWon := homeScore > awayScore
	switch pick.Selection.Team {
	case game.TeamHome:
		if homeWon {
			return domain.ResultWin
		}
		return domain.ResultLoss
	case game.TeamAway:
		if !homeWon {
			return domain.ResultWin
		}
		return domain.ResultLoss
	default:
		return domain.ResultLoss
	}
}

// ProfitLoss converts a settled result into a profit/loss figure on a
// stake of units using standard American-odds payout (§4.10, §8 invariant
// 9: win > 0, loss < 0, push == 0).
func ProfitLoss(result domain.BetResult, units float64, odds domain.AmericanOdds) float64 {
	switch result {
	case domain.ResultWin:
		return units * (odds.Payout() - 1)
	case domain.ResultLoss:
		return -units
	default:
		return 0
	}
}
