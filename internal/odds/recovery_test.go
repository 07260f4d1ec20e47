package odds

import (
	"testing"

	"github.com/tpham/dailycard/internal/domain"
)

func TestRecoverSpreadForcesUnmatchedSide(t *testing.T) {
	outcomes := [2]RawOutcome{
		{TeamText: "Duke Blue Devils", Line: -4.5, Odds: -110},
		{TeamText: "", Line: 4.5, Odds: -110},
	}
	sels := RecoverSpread(outcomes, "Duke", "North Carolina")
	if sels[0].Team != "Duke" {
		t.Errorf("expected outcome 0 to match Duke, got %+v", sels[0])
	}
	if sels[1].Team != "North Carolina" {
		t.Errorf("expected outcome 1 forced to North Carolina, got %+v", sels[1])
	}
}

func TestRecoverSpreadInfersFromSignWhenUnlabeled(t *testing.T) {
	outcomes := [2]RawOutcome{
		{TeamText: "", Line: -3, Odds: -120},
		{TeamText: "", Line: 3, Odds: 100},
	}
	sels := RecoverSpread(outcomes, "HomeTeam", "AwayTeam")
	if sels[0].Team != "HomeTeam" {
		t.Errorf("expected negative-line side inferred as home, got %+v", sels[0])
	}
	if sels[1].Team != "AwayTeam" {
		t.Errorf("expected positive-line side inferred as away, got %+v", sels[1])
	}
}

func TestRecoverTotalDoesNotGuess(t *testing.T) {
	sel := RecoverTotal("")
	if !sel.IsEmpty() {
		t.Errorf("expected empty selection when totals label is omitted, got %+v", sel)
	}
}

func TestMatchesGameEitherOrientation(t *testing.T) {
	ev := VendorEvent{HomeTeam: "North Carolina", AwayTeam: "Duke"}
	if !MatchesGame(ev, "Duke", "North Carolina") {
		t.Errorf("expected crossed orientation to match")
	}
}

func TestImpliedProbability(t *testing.T) {
	p := ImpliedProbability(domain.AmericanOdds(-110))
	if p < 0.52 || p > 0.53 {
		t.Errorf("expected ~0.524 implied probability for -110, got %f", p)
	}
}
