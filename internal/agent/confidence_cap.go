package agent

import (
	"strings"

	"github.com/tpham/dailycard/internal/domain"
)

// redundantPhrases are confidence-qualifying phrases the Model sometimes
// emits in model_notes that become misleading once the confidence field
// itself is force-capped — keeping both says the same thing twice with a
// contradictory number attached.
var redundantPhrases = []string{
	"high confidence",
	"very confident",
	"strong conviction",
}

// EnforceConfidenceCap applies §4.6: only when advanced stats are missing
// for *both* teams does a prediction's reported confidence get capped at
// domain.LowConfidenceCap, with model_notes saying why. One side having
// stats is enough for the Model to reason from, so the cap does not fire
// on a single-side miss (§8 invariant 3).
func EnforceConfidenceCap(pred *domain.Prediction, insight domain.GameInsight) {
	if insight.Adv.Away.Available || insight.Adv.Home.Available {
		return
	}
	if pred.Predictions.Confidence <= domain.LowConfidenceCap {
		return
	}

	pred.Predictions.Confidence = domain.LowConfidenceCap
	pred.ModelNotes = stripRedundantConfidencePhrases(pred.ModelNotes)
	pred.ModelNotes = append(pred.ModelNotes, "confidence capped: advanced stats unavailable for both teams")
}

func stripRedundantConfidencePhrases(notes []string) []string {
	out := notes[:0:0]
	for _, note := range notes {
		lower := strings.ToLower(note)
		redundant := false
		for _, phrase := range redundantPhrases {
			if strings.Contains(lower, phrase) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, note)
		}
	}
	return out
}
