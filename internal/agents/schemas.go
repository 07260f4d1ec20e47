package agents

import "github.com/tpham/dailycard/internal/llm"

func str(desc string) *llm.Schema { return &llm.Schema{Type: "string", Description: desc} }
func num(desc string) *llm.Schema { return &llm.Schema{Type: "number", Description: desc} }
func boolean(desc string) *llm.Schema { return &llm.Schema{Type: "boolean", Description: desc} }

// insightSchema covers a whole chunk of games in one call (§4.8): the model
// returns one game_id-keyed record per game it was given.
var insightSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"games": {
			Type: "array",
			Items: &llm.Schema{
				Type: "object",
				Properties: map[string]*llm.Schema{
					"game_id":                 str("the game_id this record is for"),
					"away_advanced_available": boolean("whether advanced stats were found for the away team"),
					"away_adj_offense":        num("away team adjusted offensive efficiency"),
					"away_adj_defense":        num("away team adjusted defensive efficiency"),
					"away_adj_tempo":          num("away team adjusted tempo"),
					"home_advanced_available": boolean("whether advanced stats were found for the home team"),
					"home_adj_offense":        num("home team adjusted offensive efficiency"),
					"home_adj_defense":        num("home team adjusted defensive efficiency"),
					"home_adj_tempo":          num("home team adjusted tempo"),
					"injuries":                {Type: "array", Items: str("one injury note")},
					"recent_form_away":        str("away team's recent form summary"),
					"recent_form_home":        str("home team's recent form summary"),
					"expert_notes":            str("summary of expert commentary found, if any"),
					"data_unavailable":        boolean("true if key data could not be found"),
				},
				Required: []string{"game_id", "away_advanced_available", "home_advanced_available", "data_unavailable"},
			},
		},
	},
	Required: []string{"games"},
}

// predictionSchema covers a whole chunk of games in one call (§4.8): one
// game_id-keyed prediction record per game it was given.
var predictionSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"predictions": {
			Type: "array",
			Items: &llm.Schema{
				Type: "object",
				Properties: map[string]*llm.Schema{
					"game_id":              str("the game_id this prediction is for"),
					"predicted_away_score": num("projected away team score"),
					"predicted_home_score": num("projected home team score"),
					"win_prob_away":        num("away team win probability, 0 to 1"),
					"win_prob_home":        num("home team win probability, 0 to 1"),
					"confidence":           num("model confidence in this prediction, 0 to 1"),
					"model_notes":          str("brief reasoning behind the prediction"),
				},
				Required: []string{"game_id", "predicted_away_score", "predicted_home_score", "win_prob_away", "win_prob_home", "confidence"},
			},
		},
	},
	Required: []string{"predictions"},
}

var pickListSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"picks": {
			Type: "array",
			Items: &llm.Schema{
				Type: "object",
				Properties: map[string]*llm.Schema{
					"game_id":         str("the game this pick is for"),
					"bet_type":        {Type: "string", Enum: []string{"spread", "total", "moneyline"}},
					"selection_text":  str("human-readable description of the side taken"),
					"rationale":       str("why this pick has value"),
					"confidence":      num("0 to 1"),
					"red_flag":        boolean("true if something about this pick looks off"),
					"data_unavailable": boolean("true if this pick relies on incomplete data"),
				},
				Required: []string{"game_id", "bet_type", "selection_text", "rationale", "confidence"},
			},
		},
	},
	Required: []string{"picks"},
}

var presidentReviewSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"approved":  boolean("whether the card is approved as-is"),
		"reasoning": str("explanation of the decision, with specific fixes if rejected"),
		"best_bets": {Type: "array", Items: str("game_id of a pick promoted to best bet")},
	},
	Required: []string{"approved", "reasoning"},
}

// auditorRetrospectiveSchema only asks the Auditor agent to narrate already
// -settled results (§4.10 settlement is pure arithmetic, done in Go by
// betting.Settle — the LLM never decides win/loss/push).
var auditorRetrospectiveSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"retrospective": str("short summary of what worked and what to flag for tomorrow, given the settled results"),
	},
	Required: []string{"retrospective"},
}
