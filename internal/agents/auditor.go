package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tpham/dailycard/internal/agent"
	"github.com/tpham/dailycard/internal/betting"
	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/llm"
	"github.com/tpham/dailycard/internal/telemetry"
)

// Auditor grades yesterday's approved picks against final scores and
// writes a short retrospective (§O3, §C). Grading itself is deterministic
// (betting.Settle, §4.10) — the agent only narrates the already-settled
// results, it never decides them.
type Auditor struct {
	Provider llm.Provider
	Model    string
}

// GradedPick is one pick's deterministic settlement outcome.
type GradedPick struct {
	GameID     domain.GameID
	BetType    domain.BetType
	Result     domain.BetResult
	ProfitLoss float64
}

func (au *Auditor) newAgent() *agent.Agent {
	return &agent.Agent{
		Name:         "auditor",
		Provider:     au.Provider,
		Model:        au.Model,
		SystemPrompt: auditorSystemPrompt,
		Schema:       auditorRetrospectiveSchema,
		Temperature:  0.2,
	}
}

// Run settles every pick whose game has a final score, then asks the agent
// for a short narrative recap of the settled card.
func (au *Auditor) Run(ctx context.Context, picks []domain.ApprovedPick, finals []domain.Game) ([]GradedPick, string, error) {
	gameByID := make(map[domain.GameID]domain.Game, len(finals))
	for _, g := range finals {
		gameByID[g.ID] = g
	}

	graded := make([]GradedPick, 0, len(picks))
	for _, pick := range picks {
		game, ok := gameByID[pick.GameID]
		if !ok || !game.IsFinal() {
			telemetry.Warnf("auditor: no final score for %s, skipping settlement", pick.GameID)
			continue
		}
		result, pl, err := betting.Settle(pick, game)
		if err != nil {
			telemetry.Warnf("auditor: settle %s: %v", pick.GameID, err)
			continue
		}
		graded = append(graded, GradedPick{GameID: pick.GameID, BetType: pick.BetType, Result: result, ProfitLoss: pl})
	}

	a := au.newAgent()
	gradedJSON, _ := json.Marshal(graded)
	prompt := fmt.Sprintf("Yesterday's settled results: %s", gradedJSON)

	content, err := a.Run(ctx, prompt)
	if err != nil {
		return graded, "", fmt.Errorf("auditor: %w", err)
	}

	var parsed struct {
		Retrospective string `json:"retrospective"`
	}
	if !llm.ParseStructured(content, "retrospective", &parsed) {
		return graded, "", fmt.Errorf("auditor: could not parse output")
	}

	return graded, parsed.Retrospective, nil
}
