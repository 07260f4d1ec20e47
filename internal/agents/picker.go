package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tpham/dailycard/internal/agent"
	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/llm"
)

// Picker reviews the day's predictions and market lines together (not
// batched per game — it needs the whole slate to compare relative edges,
// §4.9) and returns the subset worth recommending.
type Picker struct {
	Provider llm.Provider
	Model    string
}

func (p *Picker) newAgent() *agent.Agent {
	return &agent.Agent{
		Name:         "picker",
		Provider:     p.Provider,
		Model:        p.Model,
		SystemPrompt: pickerSystemPrompt,
		Schema:       pickListSchema,
		Temperature:  0.3,
	}
}

func (p *Picker) Run(ctx context.Context, predictions []domain.Prediction, lines map[domain.GameID][]domain.BettingLine) ([]domain.Pick, error) {
	a := p.newAgent()

	predJSON, _ := json.Marshal(predictions)
	linesJSON, _ := json.Marshal(lines)
	prompt := fmt.Sprintf("Today's predictions: %s\nMarket lines: %s", predJSON, linesJSON)

	content, err := a.Run(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}

	var parsed struct {
		Picks []struct {
			GameID          string  `json:"game_id"`
			BetType         string  `json:"bet_type"`
			SelectionText   string  `json:"selection_text"`
			Rationale       string  `json:"rationale"`
			Confidence      float64 `json:"confidence"`
			RedFlag         bool    `json:"red_flag"`
			DataUnavailable bool    `json:"data_unavailable"`
		} `json:"picks"`
	}
	if !llm.ParseStructured(content, "picks", &parsed) {
		return nil, fmt.Errorf("picker: could not parse output")
	}

	lineByGameAndType := indexLines(lines)

	out := make([]domain.Pick, 0, len(parsed.Picks))
	for _, pp := range parsed.Picks {
		gameID := domain.GameID(pp.GameID)
		betType := domain.BetType(pp.BetType)
		line := lineByGameAndType[gameID][betType]

		out = append(out, domain.Pick{
			GameID:        gameID,
			BetType:       betType,
			SelectionText: pp.SelectionText,
			Line:          line.Line,
			Odds:          line.Odds,
			Selection:     line.Selection,
			Book:          line.Book,
			Rationale:     pp.Rationale,
			Confidence:    pp.Confidence,
			RedFlag:       pp.RedFlag,
			DataUnavailable: pp.DataUnavailable,
		})
	}
	return out, nil
}

func indexLines(lines map[domain.GameID][]domain.BettingLine) map[domain.GameID]map[domain.BetType]domain.BettingLine {
	out := make(map[domain.GameID]map[domain.BetType]domain.BettingLine, len(lines))
	for gameID, ls := range lines {
		out[gameID] = make(map[domain.BetType]domain.BettingLine, len(ls))
		for _, l := range ls {
			out[gameID][l.BetType] = l
		}
	}
	return out
}
