package storage

import (
	"encoding/json"
	"time"

	"github.com/tpham/dailycard/internal/domain"
)

// PickID builds the storage key shared by the picks and bets tables:
// (game_id, bet_type) uniquely identifies one pick within a day's card.
func PickID(gameID domain.GameID, betType domain.BetType) string {
	return string(gameID) + "|" + string(betType)
}

func pickID(p domain.ApprovedPick) string {
	return PickID(p.GameID, p.BetType)
}

func (d *DB) SaveApprovedPick(date time.Time, p domain.ApprovedPick) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err = d.conn.Exec(`
		INSERT INTO picks (id, game_id, date, best_bet, units, payload) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET best_bet = excluded.best_bet, units = excluded.units, payload = excluded.payload`,
		pickID(p), string(p.GameID), date.Format("2006-01-02"), boolToInt(p.BestBet), p.Units, string(payload))
	return err
}

func (d *DB) PicksForDate(date time.Time) ([]domain.ApprovedPick, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rows, err := d.conn.Query(`SELECT payload FROM picks WHERE date = ? ORDER BY best_bet DESC`, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ApprovedPick
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var p domain.ApprovedPick
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
