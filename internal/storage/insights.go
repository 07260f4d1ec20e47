package storage

import (
	"encoding/json"

	"github.com/tpham/dailycard/internal/domain"
)

// Insights and Predictions are stored as opaque JSON payloads rather than
// normalized columns: both are append-once research artifacts consumed
// whole by the next agent in the chain, never queried by individual field.

func (d *DB) SaveGameInsight(gameID domain.GameID, insight domain.GameInsight) error {
	payload, err := json.Marshal(insight)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err = d.conn.Exec(`
		INSERT INTO game_insights (game_id, payload) VALUES (?, ?)
		ON CONFLICT(game_id) DO UPDATE SET payload = excluded.payload`,
		string(gameID), string(payload))
	return err
}

func (d *DB) GetGameInsight(gameID domain.GameID) (*domain.GameInsight, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var payload string
	err := d.conn.QueryRow(`SELECT payload FROM game_insights WHERE game_id = ?`, string(gameID)).Scan(&payload)
	if err != nil {
		return nil, err
	}
	var insight domain.GameInsight
	if err := json.Unmarshal([]byte(payload), &insight); err != nil {
		return nil, err
	}
	return &insight, nil
}

func (d *DB) SavePrediction(gameID domain.GameID, pred domain.Prediction) error {
	payload, err := json.Marshal(pred)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err = d.conn.Exec(`
		INSERT INTO predictions (game_id, payload) VALUES (?, ?)
		ON CONFLICT(game_id) DO UPDATE SET payload = excluded.payload`,
		string(gameID), string(payload))
	return err
}

func (d *DB) GetPrediction(gameID domain.GameID) (*domain.Prediction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var payload string
	err := d.conn.QueryRow(`SELECT payload FROM predictions WHERE game_id = ?`, string(gameID)).Scan(&payload)
	if err != nil {
		return nil, err
	}
	var pred domain.Prediction
	if err := json.Unmarshal([]byte(payload), &pred); err != nil {
		return nil, err
	}
	return &pred, nil
}
