package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tpham/dailycard/internal/agent"
	"github.com/tpham/dailycard/internal/batch"
	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/llm"
	"github.com/tpham/dailycard/internal/telemetry"
)

// Researcher runs the Research agent over the day's slate, one tool-enabled
// LLM call per chunk of up to batch.DefaultBatchSize games, batched with
// retry-and-fallback (§4.7, §4.8, §O1).
type Researcher struct {
	Provider llm.Provider
	Model    string
	Tools    []llm.Tool
	Handlers map[string]agent.ToolHandler
}

func (r *Researcher) newAgent() *agent.Agent {
	return &agent.Agent{
		Name:         "research",
		Provider:     r.Provider,
		Model:        r.Model,
		SystemPrompt: researchSystemPrompt,
		Tools:        r.Tools,
		Schema:       insightSchema,
		Temperature:  0.3,
		Handlers:     r.Handlers,
	}
}

func (r *Researcher) Run(ctx context.Context, games []domain.Game) []domain.GameInsight {
	return batch.Process(ctx, games, batch.DefaultBatchSize, batch.DefaultMaxRetries,
		func(g domain.Game) string { return string(g.ID) },
		func(in domain.GameInsight) string { return string(in.GameID) },
		r.researchChunk,
		func(g domain.Game) domain.GameInsight {
			return domain.GameInsight{GameID: g.ID, DataUnavailable: true}
		},
	)
}

type researchMatchup struct {
	GameID string `json:"game_id"`
	Home   string `json:"home"`
	Away   string `json:"away"`
	Date   string `json:"date"`
}

// researchChunk makes one LLM call covering every game in chunk and asks
// for one game_id-keyed research record per game (§4.8).
func (r *Researcher) researchChunk(ctx context.Context, chunk []domain.Game) ([]domain.GameInsight, error) {
	a := r.newAgent()

	matchups := make([]researchMatchup, len(chunk))
	for i, g := range chunk {
		matchups[i] = researchMatchup{GameID: string(g.ID), Home: g.TeamHome, Away: g.TeamAway, Date: g.Date.Format("2006-01-02")}
	}
	matchupJSON, _ := json.Marshal(matchups)
	prompt := fmt.Sprintf("Research each of these matchups and return one record per game_id: %s", matchupJSON)

	content, err := a.Run(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Games []struct {
			GameID                string   `json:"game_id"`
			AwayAdvancedAvailable bool     `json:"away_advanced_available"`
			AwayAdjOffense        float64  `json:"away_adj_offense"`
			AwayAdjDefense        float64  `json:"away_adj_defense"`
			AwayAdjTempo          float64  `json:"away_adj_tempo"`
			HomeAdvancedAvailable bool     `json:"home_advanced_available"`
			HomeAdjOffense        float64  `json:"home_adj_offense"`
			HomeAdjDefense        float64  `json:"home_adj_defense"`
			HomeAdjTempo          float64  `json:"home_adj_tempo"`
			Injuries              []string `json:"injuries"`
			RecentFormAway        string   `json:"recent_form_away"`
			RecentFormHome        string   `json:"recent_form_home"`
			ExpertNotes           string   `json:"expert_notes"`
			DataUnavailable       bool     `json:"data_unavailable"`
		} `json:"games"`
	}
	if !llm.ParseStructured(content, "games", &parsed) || len(parsed.Games) == 0 {
		return nil, fmt.Errorf("research: could not parse batch output")
	}

	teamsByID := make(map[domain.GameID][2]string, len(chunk))
	for _, g := range chunk {
		teamsByID[g.ID] = [2]string{g.TeamAway, g.TeamHome}
	}

	out := make([]domain.GameInsight, 0, len(parsed.Games))
	for _, pg := range parsed.Games {
		gameID := domain.GameID(pg.GameID)
		teams, ok := teamsByID[gameID]
		if !ok {
			telemetry.Warnf("research: ignoring record for unrequested game_id %q", pg.GameID)
			continue
		}

		insight := domain.GameInsight{
			GameID:          gameID,
			Teams:           teams,
			DataUnavailable: pg.DataUnavailable,
		}
		if pg.ExpertNotes != "" {
			insight.Experts = []string{pg.ExpertNotes}
		}
		insight.Adv.Away = domain.AdvancedSide{
			Available: pg.AwayAdvancedAvailable, AdjOffense: pg.AwayAdjOffense,
			AdjDefense: pg.AwayAdjDefense, AdjTempo: pg.AwayAdjTempo,
		}
		insight.Adv.Home = domain.AdvancedSide{
			Available: pg.HomeAdvancedAvailable, AdjOffense: pg.HomeAdjOffense,
			AdjDefense: pg.HomeAdjDefense, AdjTempo: pg.HomeAdjTempo,
		}
		insight.Recent = domain.RecentForm{Away: pg.RecentFormAway, Home: pg.RecentFormHome}
		for _, note := range pg.Injuries {
			insight.Injuries = append(insight.Injuries, domain.Injury{Note: note})
		}
		out = append(out, insight)
	}
	return out, nil
}
