// Package pipeline wires the daily DAG together: Schedule → Odds →
// Research → Model → Picker → President → persist → reports → bankroll →
// Auditor(yesterday) (§4.9).
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tpham/dailycard/internal/agents"
	"github.com/tpham/dailycard/internal/config"
	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/odds"
	"github.com/tpham/dailycard/internal/rankings"
	"github.com/tpham/dailycard/internal/reporting"
	"github.com/tpham/dailycard/internal/schedule"
	"github.com/tpham/dailycard/internal/storage"
	"github.com/tpham/dailycard/internal/telemetry"
)

// Coordinator holds every collaborator one daily run needs.
type Coordinator struct {
	Cfg      *config.PipelineConfig
	Schedule schedule.Source
	Odds     odds.Source
	Rankings rankings.Source
	DB       *storage.DB
	Reports  *reporting.Writer
	Bus      *reporting.Bus

	Researcher *agents.Researcher
	Modeler    *agents.Modeler
	Picker     *agents.Picker
	President  *agents.President
	Auditor    *agents.Auditor
}

// RunOptions carries the CLI-level knobs that narrow or reset a run
// without changing the DAG itself.
type RunOptions struct {
	MaxGames int    // 0 = no limit (--test N)
	GameID   string // "" = every game on the slate
}

// RunDaily executes one day's full pipeline and, as a final step, audits
// the prior day's card once all of its games are final (§4.9). The audit
// does not check whether that card was already graded.
func (c *Coordinator) RunDaily(ctx context.Context, date time.Time) error {
	return c.RunDailyWithOptions(ctx, date, RunOptions{})
}

// RunDailyWithOptions is RunDaily with --test/--game-id support layered on
// top. (--force-refresh is handled by the CLI, which clears the cache
// before the run.)
func (c *Coordinator) RunDailyWithOptions(ctx context.Context, date time.Time, opts RunOptions) error {
	dateStr := date.Format("2006-01-02")
	runID := uuid.NewString()
	telemetry.Banner(true, "dailycard: starting run %s for %s", runID, dateStr)
	telemetry.ResetTokenUsage()

	games, err := c.Schedule.ScrapeGames(ctx, date)
	if err != nil {
		return fmt.Errorf("pipeline: schedule: %w", err)
	}
	games = filterGames(games, opts)
	if len(games) == 0 {
		telemetry.Infof("pipeline: no games scheduled for %s, nothing to do", dateStr)
		return nil
	}
	for _, g := range games {
		_ = c.DB.SaveGame(g)
	}

	lines, err := c.Odds.ScrapeLines(ctx, games)
	if err != nil {
		return fmt.Errorf("pipeline: odds: %w", err)
	}
	linesByGame := make(map[domain.GameID][]domain.BettingLine)
	for _, l := range lines {
		linesByGame[l.GameID] = append(linesByGame[l.GameID], l)
		_ = c.DB.SaveBettingLine(l)
	}

	insights := c.Researcher.Run(ctx, games)
	for i, g := range games {
		enrichFromRankings(ctx, c.Rankings, &insights[i], g, date)
		_ = c.DB.SaveGameInsight(g.ID, insights[i])
	}
	c.Bus.Publish(reporting.StageEvent{Type: reporting.StageResearchComplete, Date: dateStr, Payload: insights})

	modelInputs := make([]agents.ModelInput, len(games))
	for i, g := range games {
		modelInputs[i] = agents.ModelInput{Game: g, Insight: insights[i], Lines: linesByGame[g.ID]}
	}
	predictions := c.Modeler.Run(ctx, modelInputs)
	for _, p := range predictions {
		_ = c.DB.SavePrediction(p.GameID, p)
	}
	c.Bus.Publish(reporting.StageEvent{Type: reporting.StageModelComplete, Date: dateStr, Payload: predictions})

	approved, err := c.runPickerPresidentLoop(ctx, predictions, linesByGame, dateStr)
	if err != nil {
		return fmt.Errorf("pipeline: picker/president: %w", err)
	}

	for _, p := range approved {
		_ = c.DB.SaveApprovedPick(date, p)
	}
	if err := c.Reports.WriteBettingCard(dateStr, approved); err != nil {
		telemetry.Warnf("pipeline: write betting card: %v", err)
	}

	bankroll := c.updateBankroll(date, approved)
	if err := c.Reports.WriteDailyReport(dateStr, telemetry.TokenUsageSummary(), bankroll); err != nil {
		telemetry.Warnf("pipeline: write daily report: %v", err)
	}
	c.logTokenUsage(date)

	c.auditPreviousDay(ctx, date)

	telemetry.Banner(true, "dailycard: run %s for %s complete — %d picks approved", runID, dateStr, len(approved))
	return nil
}

// logTokenUsage persists one agent_logs row per role for this run, so the
// cumulative summary telemetry prints can be reconstructed historically
// from the database rather than only from in-memory counters (§C).
func (c *Coordinator) logTokenUsage(date time.Time) {
	roles := []struct {
		name string
		tu   *telemetry.TokenUsage
	}{
		{"researcher", &telemetry.Metrics.ResearcherTokens},
		{"modeler", &telemetry.Metrics.ModelerTokens},
		{"picker", &telemetry.Metrics.PickerTokens},
		{"president", &telemetry.Metrics.PresidentTokens},
		{"auditor", &telemetry.Metrics.AuditorTokens},
	}
	for _, r := range roles {
		if r.tu.Calls.Value() == 0 {
			continue
		}
		if err := c.DB.LogAgentCall(r.name, date, int(r.tu.PromptTokens.Value()), int(r.tu.CompletionTokens.Value())); err != nil {
			telemetry.Warnf("pipeline: log agent call for %s: %v", r.name, err)
		}
	}
}

func enrichFromRankings(ctx context.Context, src rankings.Source, insight *domain.GameInsight, g domain.Game, date time.Time) {
	if src == nil {
		return
	}
	if away, err := src.GetTeamStats(ctx, g.TeamAway, date); err == nil && away != nil {
		insight.Adv.Away = *away
	}
	if home, err := src.GetTeamStats(ctx, g.TeamHome, date); err == nil && home != nil {
		insight.Adv.Home = *home
	}
}

// runPickerPresidentLoop bounces the card between Picker and President up
// to agents.MaxRevisions times (§C: bounded revision loop). A rejected
// review carries no approved picks, so a card still rejected after the
// last revision ends the loop with no approved picks.
func (c *Coordinator) runPickerPresidentLoop(ctx context.Context, predictions []domain.Prediction, linesByGame map[domain.GameID][]domain.BettingLine, dateStr string) ([]domain.ApprovedPick, error) {
	predByGame := make(map[domain.GameID]domain.Prediction, len(predictions))
	for _, p := range predictions {
		predByGame[p.GameID] = p
	}

	var lastApproved []domain.ApprovedPick
	for revision := 0; revision <= agents.MaxRevisions; revision++ {
		picks, err := c.Picker.Run(ctx, predictions, linesByGame)
		if err != nil {
			return nil, err
		}
		c.Bus.Publish(reporting.StageEvent{Type: reporting.StagePickerComplete, Date: dateStr, Payload: picks})

		approved, needsRevision, reasoning, err := c.President.Review(ctx, picks, predByGame)
		if err != nil {
			return nil, err
		}
		_ = c.DB.SaveCardReview(storage.CardReview{
			Date: mustParseDate(dateStr), Approved: !needsRevision, Reasoning: reasoning, Revision: revision,
		})
		if err := c.Reports.WritePresidentsReport(dateStr, !needsRevision, reasoning, revision); err != nil {
			telemetry.Warnf("pipeline: write president's report: %v", err)
		}

		if !needsRevision {
			c.Bus.Publish(reporting.StageEvent{Type: reporting.StagePresidentComplete, Date: dateStr, Payload: approved})
			return approved, nil
		}
		lastApproved = approved
		telemetry.Infof("pipeline: president requested revision %d/%d: %s", revision+1, agents.MaxRevisions, reasoning)
	}

	telemetry.Warnf("pipeline: exhausted %d revisions, card still rejected, no picks approved", agents.MaxRevisions)
	return lastApproved, nil
}

func (c *Coordinator) updateBankroll(date time.Time, approved []domain.ApprovedPick) domain.Bankroll {
	prev, err := c.DB.LatestBankroll()
	balance := c.Cfg.Bankroll.Initial
	if err == nil && prev != nil {
		balance = prev.Balance
	}

	var wagered float64
	for _, p := range approved {
		wagered += p.Units
		key := storage.PickID(p.GameID, p.BetType)
		_ = c.DB.SaveBet(key, domain.Bet{
			PickID: key, PlacedAt: date, Stake: p.Units, Result: domain.ResultPending,
		})
	}

	b := domain.Bankroll{Date: date, Balance: balance, TotalWagered: wagered, ActiveBets: len(approved)}
	_ = c.DB.SaveBankroll(b)
	return b
}

// auditPreviousDay grades yesterday's card once its games are final. A
// missing or still-live prior slate is not an error — the Auditor simply
// has nothing to do yet.
func (c *Coordinator) auditPreviousDay(ctx context.Context, date time.Time) {
	yesterday := date.AddDate(0, 0, -1)
	picks, err := c.DB.PicksForDate(yesterday)
	if err != nil || len(picks) == 0 {
		return
	}

	finals, err := c.DB.GamesForDate(yesterday)
	if err != nil {
		return
	}
	for _, g := range finals {
		if !g.IsFinal() {
			telemetry.Infof("pipeline: skipping audit for %s, not all games final", yesterday.Format("2006-01-02"))
			return
		}
	}

	graded, retro, err := c.Auditor.Run(ctx, picks, finals)
	if err != nil {
		telemetry.Warnf("pipeline: auditor: %v", err)
	}
	for _, g := range graded {
		key := storage.PickID(g.GameID, g.BetType)
		_ = c.DB.SaveBet(key, domain.Bet{PickID: key, Result: g.Result, ProfitLoss: g.ProfitLoss, PlacedAt: yesterday})
	}
	if err != nil {
		return
	}
	c.Bus.Publish(reporting.StageEvent{Type: reporting.StageAuditorComplete, Date: yesterday.Format("2006-01-02"), Payload: retro})
	_ = c.Reports.WriteAgentReport("auditor", yesterday.Format("2006-01-02"), retro)
}

// filterGames applies --game-id and --test N narrowing before any
// downstream stage sees the slate.
func filterGames(games []domain.Game, opts RunOptions) []domain.Game {
	if opts.GameID != "" {
		for _, g := range games {
			if string(g.ID) == opts.GameID {
				return []domain.Game{g}
			}
		}
		return nil
	}
	if opts.MaxGames > 0 && opts.MaxGames < len(games) {
		return games[:opts.MaxGames]
	}
	return games
}

func mustParseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
