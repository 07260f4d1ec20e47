package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/telemetry"
)

// Writer renders the day's artifacts to data/reports/. One text file per
// agent per day plus three rollups, matching the layout the original
// (pre-distillation) implementation used (§C).
type Writer struct {
	root string
}

func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

func (w *Writer) agentReportPath(agentName, date string) string {
	return filepath.Join(w.root, "reports", agentName, fmt.Sprintf("%s_%s.txt", agentName, date))
}

func (w *Writer) WriteAgentReport(agentName, date, body string) error {
	path := w.agentReportPath(agentName, date)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("reporting: create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("reporting: write %s: %w", path, err)
	}
	telemetry.Infof("reporting: wrote %s", path)
	return nil
}

func (w *Writer) WriteBettingCard(date string, picks []domain.ApprovedPick) error {
	var b strings.Builder
	fmt.Fprintf(&b, "BETTING CARD — %s\n", date)
	fmt.Fprintf(&b, "%d picks\n\n", len(picks))

	for _, p := range picks {
		tag := ""
		if p.BestBet {
			tag = " [BEST BET]"
		}
		fmt.Fprintf(&b, "%s — %s%s\n", p.GameID, p.SelectionText, tag)
		fmt.Fprintf(&b, "  %s @ %s (%d)  units=%.2f  confidence=%.2f\n", p.BetType, p.Book, p.Odds, p.Units, p.Confidence)
		fmt.Fprintf(&b, "  %s\n", p.Rationale)
		if p.DataUnavailable {
			b.WriteString("  [data unavailable — treat with caution]\n")
		}
		if p.RedFlag {
			b.WriteString("  [RED FLAG]\n")
		}
		b.WriteString("\n")
	}

	path := filepath.Join(w.root, "reports", fmt.Sprintf("betting_card_%s.txt", date))
	return writeFile(path, b.String())
}

func (w *Writer) WritePresidentsReport(date string, approved bool, reasoning string, revision int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "PRESIDENT'S REPORT — %s (revision %d)\n\n", date, revision)
	fmt.Fprintf(&b, "Decision: %s\n\n", decisionLabel(approved))
	b.WriteString(reasoning)
	b.WriteString("\n")

	path := filepath.Join(w.root, "reports", fmt.Sprintf("presidents_report_%s.txt", date))
	return writeFile(path, b.String())
}

func (w *Writer) WriteDailyReport(date string, tokenSummary string, bankroll domain.Bankroll) error {
	var b strings.Builder
	fmt.Fprintf(&b, "DAILY REPORT — %s\n\n", date)
	fmt.Fprintf(&b, "Bankroll: $%s (wagered $%s, profit $%s, active bets %d)\n\n",
		humanize.Commaf(bankroll.Balance), humanize.Commaf(bankroll.TotalWagered),
		humanize.Commaf(bankroll.TotalProfit), bankroll.ActiveBets)
	b.WriteString("Token usage:\n")
	b.WriteString(tokenSummary)
	b.WriteString("\n")

	path := filepath.Join(w.root, "reports", fmt.Sprintf("daily_report_%s.txt", date))
	return writeFile(path, b.String())
}

func decisionLabel(approved bool) string {
	if approved {
		return "APPROVED"
	}
	return "REJECTED — revision requested"
}

func writeFile(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("reporting: create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("reporting: write %s: %w", path, err)
	}
	telemetry.Infof("reporting: wrote %s", path)
	return nil
}
