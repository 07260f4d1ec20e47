package storage

import (
	"time"

	"github.com/tpham/dailycard/internal/domain"
)

func (d *DB) SaveBettingLine(l domain.BettingLine) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.conn.Exec(`
		INSERT INTO betting_lines (game_id, book, bet_type, line, odds, selection, side, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(l.GameID), l.Book, string(l.BetType), l.Line, int(l.Odds), l.Selection.Team, string(l.Selection.Side), l.Timestamp.Format(time.RFC3339))
	return err
}

func (d *DB) LinesForGame(gameID domain.GameID) ([]domain.BettingLine, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rows, err := d.conn.Query(`SELECT game_id, book, bet_type, line, odds, selection, side, recorded_at
		FROM betting_lines WHERE game_id = ? ORDER BY recorded_at DESC`, string(gameID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BettingLine
	for rows.Next() {
		var l domain.BettingLine
		var gameID, betType, selection, side, recordedAt string
		var odds int
		if err := rows.Scan(&gameID, &l.Book, &betType, &l.Line, &odds, &selection, &side, &recordedAt); err != nil {
			return nil, err
		}
		l.GameID = domain.GameID(gameID)
		l.BetType = domain.BetType(betType)
		l.Odds = domain.AmericanOdds(odds)
		l.Selection = domain.Selection{Team: selection, Side: domain.Side(side)}
		l.Timestamp, _ = time.Parse(time.RFC3339, recordedAt)
		out = append(out, l)
	}
	return out, rows.Err()
}
