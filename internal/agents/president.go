package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tpham/dailycard/internal/agent"
	"github.com/tpham/dailycard/internal/betting"
	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/llm"
)

// MaxRevisions bounds the Picker/President back-and-forth (§C): the
// President can reject a card and ask for changes, but only up to this
// many rounds; a card still rejected after the last one yields no picks.
const MaxRevisions = 2

// President reviews a candidate card and either approves it (sizing every
// pick into units and flagging best bets) or asks the Picker to revise.
type President struct {
	Provider      llm.Provider
	Model         string
	KellyFraction float64
}

func (p *President) newAgent() *agent.Agent {
	return &agent.Agent{
		Name:         "president",
		Provider:     p.Provider,
		Model:        p.Model,
		SystemPrompt: presidentSystemPrompt,
		Schema:       presidentReviewSchema,
		Temperature:  0.2,
	}
}

// Review returns the approved card (sized into units) and whether the
// President wants a revision instead. On revision, reasoning explains what
// the Picker should change.
func (p *President) Review(ctx context.Context, picks []domain.Pick, predictions map[domain.GameID]domain.Prediction) ([]domain.ApprovedPick, bool, string, error) {
	a := p.newAgent()

	picksJSON, _ := json.Marshal(picks)
	prompt := fmt.Sprintf("Candidate card: %s", picksJSON)

	content, err := a.Run(ctx, prompt)
	if err != nil {
		return nil, false, "", fmt.Errorf("president: %w", err)
	}

	var parsed struct {
		Approved  bool     `json:"approved"`
		Reasoning string   `json:"reasoning"`
		BestBets  []string `json:"best_bets"`
	}
	if !llm.ParseStructured(content, "approved", &parsed) {
		return nil, false, "", fmt.Errorf("president: could not parse output")
	}

	if !parsed.Approved {
		return nil, true, parsed.Reasoning, nil
	}

	bestBetSet := make(map[string]bool, len(parsed.BestBets))
	for _, id := range parsed.BestBets {
		bestBetSet[id] = true
	}
	maxBest := domain.MaxBestBets(len(picks))
	bestBetCount := 0

	approved := make([]domain.ApprovedPick, 0, len(picks))
	for _, pick := range picks {
		pred := predictions[pick.GameID]
		marketEdge, found := edgeFor(pred, pick.BetType)
		modelProb := pick.Confidence
		edge := marketEdge.Edge
		if found {
			modelProb = marketEdge.ModelProb
		}

		units := betting.KellyUnits(edge, modelProb, pick.Odds, p.KellyFraction)
		if units <= 0 {
			units = domain.DefaultUnits
		}

		isBest := bestBetSet[string(pick.GameID)] && bestBetCount < maxBest
		if isBest {
			bestBetCount++
		}

		approved = append(approved, domain.ApprovedPick{
			Pick:                   pick,
			Units:                  units,
			BestBet:                isBest,
			FinalDecisionReasoning: parsed.Reasoning,
		})
	}

	return approved, false, parsed.Reasoning, nil
}

func edgeFor(pred domain.Prediction, betType domain.BetType) (domain.MarketEdge, bool) {
	for _, e := range pred.MarketEdges {
		if e.MarketType == betType {
			return e, true
		}
	}
	return domain.MarketEdge{}, false
}
