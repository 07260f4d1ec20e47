package storage

import (
	"time"

	"github.com/tpham/dailycard/internal/domain"
)

func (d *DB) SaveBet(pickID string, bet domain.Bet) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.conn.Exec(`
		INSERT INTO bets (pick_id, placed_at, stake, result, profit_loss) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(pick_id) DO UPDATE SET result = excluded.result, profit_loss = excluded.profit_loss`,
		pickID, bet.PlacedAt.Format(time.RFC3339), bet.Stake, string(bet.Result), bet.ProfitLoss)
	return err
}

func (d *DB) PendingBets() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rows, err := d.conn.Query(`SELECT pick_id FROM bets WHERE result = ?`, string(domain.ResultPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (d *DB) SaveBankroll(b domain.Bankroll) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.conn.Exec(`
		INSERT INTO bankroll (date, balance, total_wagered, total_profit, active_bets) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET balance = excluded.balance, total_wagered = excluded.total_wagered,
			total_profit = excluded.total_profit, active_bets = excluded.active_bets`,
		b.Date.Format("2006-01-02"), b.Balance, b.TotalWagered, b.TotalProfit, b.ActiveBets)
	return err
}

func (d *DB) LatestBankroll() (*domain.Bankroll, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var b domain.Bankroll
	var dateStr string
	err := d.conn.QueryRow(`SELECT date, balance, total_wagered, total_profit, active_bets
		FROM bankroll ORDER BY date DESC LIMIT 1`).Scan(&dateStr, &b.Balance, &b.TotalWagered, &b.TotalProfit, &b.ActiveBets)
	if err != nil {
		return nil, err
	}
	b.Date, _ = time.Parse("2006-01-02", dateStr)
	return &b, nil
}
