package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/tpham/dailycard/internal/agent"
	"github.com/tpham/dailycard/internal/batch"
	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/llm"
	"github.com/tpham/dailycard/internal/odds"
)

// pointsStdDev is a fixed college-basketball scoring-variance estimate used
// to turn a predicted margin/total into a cover probability against a
// market line (logistic approximation of the usual normal-CDF cover model).
const pointsStdDev = 11.0

// Modeler turns one game's insight plus its market lines into a calibrated
// Prediction, enforcing the §4.6 confidence cap before returning.
type Modeler struct {
	Provider llm.Provider
	Model    string
}

// ModelInput bundles one game with its research insight and market
// lines — everything the Model agent needs for one prediction.
type ModelInput struct {
	Game    domain.Game
	Insight domain.GameInsight
	Lines   []domain.BettingLine
}

func (m *Modeler) newAgent() *agent.Agent {
	return &agent.Agent{
		Name:         "model",
		Provider:     m.Provider,
		Model:        m.Model,
		SystemPrompt: modelSystemPrompt,
		Schema:       predictionSchema,
		Temperature:  0.2,
	}
}

func (m *Modeler) Run(ctx context.Context, inputs []ModelInput) []domain.Prediction {
	return batch.Process(ctx, inputs, batch.DefaultBatchSize, batch.DefaultMaxRetries,
		func(in ModelInput) string { return string(in.Game.ID) },
		func(p domain.Prediction) string { return string(p.GameID) },
		m.modelChunk,
		func(in ModelInput) domain.Prediction {
			return domain.Prediction{GameID: in.Game.ID, DataUnavailable: true}
		},
	)
}

type modelGamePayload struct {
	GameID  string                `json:"game_id"`
	Away    string                `json:"away"`
	Home    string                `json:"home"`
	Date    string                `json:"date"`
	Insight domain.GameInsight    `json:"insight"`
	Lines   []domain.BettingLine  `json:"lines"`
}

// modelChunk makes one LLM call covering every game in chunk and asks for
// one game_id-keyed prediction record per game (§4.8).
func (m *Modeler) modelChunk(ctx context.Context, chunk []ModelInput) ([]domain.Prediction, error) {
	a := m.newAgent()

	payload := make([]modelGamePayload, len(chunk))
	for i, in := range chunk {
		payload[i] = modelGamePayload{
			GameID: string(in.Game.ID), Away: in.Game.TeamAway, Home: in.Game.TeamHome,
			Date: in.Game.Date.Format("2006-01-02"), Insight: in.Insight, Lines: in.Lines,
		}
	}
	payloadJSON, _ := json.Marshal(payload)
	prompt := fmt.Sprintf("Predict each of these games and return one record per game_id: %s", payloadJSON)

	content, err := a.Run(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Predictions []struct {
			GameID             string  `json:"game_id"`
			PredictedAwayScore float64 `json:"predicted_away_score"`
			PredictedHomeScore float64 `json:"predicted_home_score"`
			WinProbAway        float64 `json:"win_prob_away"`
			WinProbHome        float64 `json:"win_prob_home"`
			Confidence         float64 `json:"confidence"`
			ModelNotes         string  `json:"model_notes"`
		} `json:"predictions"`
	}
	if !llm.ParseStructured(content, "predictions", &parsed) || len(parsed.Predictions) == 0 {
		return nil, fmt.Errorf("model: could not parse batch output")
	}

	inputByID := make(map[domain.GameID]ModelInput, len(chunk))
	for _, in := range chunk {
		inputByID[in.Game.ID] = in
	}

	out := make([]domain.Prediction, 0, len(parsed.Predictions))
	for _, pp := range parsed.Predictions {
		gameID := domain.GameID(pp.GameID)
		in, ok := inputByID[gameID]
		if !ok {
			continue
		}

		pred := domain.Prediction{
			GameID: gameID,
			Predictions: domain.Predictions{
				Scores:     domain.PredictedScores{Away: pp.PredictedAwayScore, Home: pp.PredictedHomeScore},
				Margin:     pp.PredictedHomeScore - pp.PredictedAwayScore,
				Total:      pp.PredictedHomeScore + pp.PredictedAwayScore,
				WinProbs:   normalizeWinProbs(pp.WinProbAway, pp.WinProbHome),
				Confidence: pp.Confidence,
			},
		}
		if pp.ModelNotes != "" {
			pred.ModelNotes = []string{pp.ModelNotes}
		}

		agent.EnforceConfidenceCap(&pred, in.Insight)
		pred.MarketEdges = buildMarketEdges(pred, in.Game, in.Lines)
		pred.EVEstimate = bestEdgeEV(pred.MarketEdges, in.Lines)
		out = append(out, pred)
	}
	return out, nil
}

// normalizeWinProbs rescales so the two sides sum to exactly 1 (§8
// invariant 2), absorbing small model arithmetic drift rather than
// rejecting an otherwise-usable prediction.
func normalizeWinProbs(away, home float64) domain.WinProbs {
	sum := away + home
	if sum <= 0 {
		return domain.WinProbs{Away: 0.5, Home: 0.5}
	}
	return domain.WinProbs{Away: away / sum, Home: home / sum}
}

func buildMarketEdges(pred domain.Prediction, game domain.Game, lines []domain.BettingLine) []domain.MarketEdge {
	var edges []domain.MarketEdge
	for _, l := range lines {
		modelProb := modelProbFor(pred, game, l)
		implied := odds.ImpliedProbability(l.Odds)
		edges = append(edges, domain.MarketEdge{
			MarketType:     l.BetType,
			MarketLine:     l.Line,
			ModelProb:      modelProb,
			ImpliedProb:    implied,
			Edge:           modelProb - implied,
			EdgeConfidence: pred.Predictions.Confidence,
		})
	}
	return edges
}

// bestEdgeEV reports the expected value of the single most attractive
// market edge, used as the prediction's headline EV figure in reports.
func bestEdgeEV(edges []domain.MarketEdge, lines []domain.BettingLine) float64 {
	oddsFor := make(map[domain.BetType]domain.AmericanOdds, len(lines))
	for _, l := range lines {
		oddsFor[l.BetType] = l.Odds
	}

	var best float64
	var found bool
	for _, e := range edges {
		o, ok := oddsFor[e.MarketType]
		if !ok {
			continue
		}
		ev := odds.ExpectedValue(e.ModelProb, o, 1.0)
		if !found || ev > best {
			best = ev
			found = true
		}
	}
	return best
}

// modelProbFor converts the Model's score/margin/total prediction into a
// probability of the specific market selection winning, resolving which
// side of the game the line's Selection names.
func modelProbFor(pred domain.Prediction, game domain.Game, l domain.BettingLine) float64 {
	switch l.BetType {
	case domain.BetMoneyline:
		switch l.Selection.Team {
		case game.TeamHome:
			return pred.Predictions.WinProbs.Home
		case game.TeamAway:
			return pred.Predictions.WinProbs.Away
		default:
			return 0.5
		}
	case domain.BetSpread:
		margin := pred.Predictions.Margin // home - away
		var edgeMargin float64
		switch l.Selection.Team {
		case game.TeamHome:
			edgeMargin = margin + l.Line
		case game.TeamAway:
			edgeMargin = -margin + l.Line
		default:
			return 0.5
		}
		return logisticCDF(edgeMargin / pointsStdDev)
	case domain.BetTotal:
		diff := pred.Predictions.Total - l.Line
		if l.Selection.Side == domain.SideUnder {
			diff = -diff
		}
		return logisticCDF(diff / pointsStdDev)
	default:
		return 0.5
	}
}

// logisticCDF approximates the normal CDF with a logistic curve — close
// enough for sizing purposes and avoids pulling in a stats library for one
// formula.
func logisticCDF(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-1.7*z))
}
