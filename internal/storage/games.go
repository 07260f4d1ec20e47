package storage

import (
	"database/sql"
	"time"

	"github.com/tpham/dailycard/internal/domain"
)

func (d *DB) SaveGame(g domain.Game) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var start sql.NullString
	if g.StartTime != nil {
		start = sql.NullString{String: g.StartTime.Format(time.RFC3339), Valid: true}
	}
	var homeScore, awayScore sql.NullInt64
	if g.Result != nil {
		homeScore = sql.NullInt64{Int64: int64(g.Result.HomeScore), Valid: true}
		awayScore = sql.NullInt64{Int64: int64(g.Result.AwayScore), Valid: true}
	}

	_, err := d.conn.Exec(`
		INSERT INTO games (id, date, team_home, team_away, venue, start_time, status, home_score, away_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status, home_score = excluded.home_score, away_score = excluded.away_score`,
		string(g.ID), g.Date.Format("2006-01-02"), g.TeamHome, g.TeamAway, g.Venue, start, string(g.Status), homeScore, awayScore)
	return err
}

func (d *DB) GamesForDate(date time.Time) ([]domain.Game, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rows, err := d.conn.Query(`SELECT id, date, team_home, team_away, venue, start_time, status, home_score, away_score
		FROM games WHERE date = ?`, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Game
	for rows.Next() {
		var g domain.Game
		var id, dateStr, status string
		var start sql.NullString
		var homeScore, awayScore sql.NullInt64
		if err := rows.Scan(&id, &dateStr, &g.TeamHome, &g.TeamAway, &g.Venue, &start, &status, &homeScore, &awayScore); err != nil {
			return nil, err
		}
		g.ID = domain.GameID(id)
		g.Date, _ = time.Parse("2006-01-02", dateStr)
		g.Status = domain.GameStatus(status)
		if start.Valid {
			t, _ := time.Parse(time.RFC3339, start.String)
			g.StartTime = &t
		}
		if homeScore.Valid {
			g.Result = &domain.Score{HomeScore: int(homeScore.Int64), AwayScore: int(awayScore.Int64)}
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
