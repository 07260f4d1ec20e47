// Package storage persists the pipeline's daily artifacts to SQLite:
// games, lines, insights, predictions, picks, settled bets, bankroll
// snapshots, the president's card reviews, and per-agent debug logs.
// Grounded on the teacher's tracking store (single-connection WAL SQLite,
// auto_vacuum enabled once at open) but reshaped for append-mostly daily
// batch writes instead of a FIFO-evicted order ledger.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/tpham/dailycard/internal/telemetry"
)

type DB struct {
	conn *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("storage: create db dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1)

	var avMode int
	if err := conn.QueryRow(`PRAGMA auto_vacuum`).Scan(&avMode); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: read auto_vacuum: %w", err)
	}
	if avMode != 2 {
		if _, err := conn.Exec(`PRAGMA auto_vacuum = INCREMENTAL`); err != nil {
			conn.Close()
			return nil, fmt.Errorf("storage: set auto_vacuum: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: init schema: %w", err)
	}

	telemetry.Plainf("storage: opened %s", path)
	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	date       TEXT NOT NULL,
	team_home  TEXT NOT NULL,
	team_away  TEXT NOT NULL,
	venue      TEXT NOT NULL DEFAULT '',
	start_time TEXT,
	status     TEXT NOT NULL,
	home_score INTEGER,
	away_score INTEGER
);

CREATE TABLE IF NOT EXISTS betting_lines (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id    TEXT NOT NULL,
	book       TEXT NOT NULL,
	bet_type   TEXT NOT NULL,
	line       REAL NOT NULL DEFAULT 0,
	odds       INTEGER NOT NULL,
	selection  TEXT NOT NULL DEFAULT '',
	side       TEXT NOT NULL DEFAULT '',
	recorded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS game_insights (
	game_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS predictions (
	game_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS picks (
	id               TEXT PRIMARY KEY,
	game_id          TEXT NOT NULL,
	date             TEXT NOT NULL,
	best_bet         INTEGER NOT NULL DEFAULT 0,
	units            REAL NOT NULL DEFAULT 0,
	payload          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bets (
	pick_id    TEXT PRIMARY KEY,
	placed_at  TEXT NOT NULL,
	stake      REAL NOT NULL,
	result     TEXT NOT NULL,
	profit_loss REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS bankroll (
	date          TEXT PRIMARY KEY,
	balance       REAL NOT NULL,
	total_wagered REAL NOT NULL,
	total_profit  REAL NOT NULL,
	active_bets   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS card_reviews (
	date      TEXT PRIMARY KEY,
	approved  INTEGER NOT NULL,
	reasoning TEXT NOT NULL DEFAULT '',
	revision  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS agent_logs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	agent      TEXT NOT NULL,
	date       TEXT NOT NULL,
	prompt_tokens     INTEGER NOT NULL DEFAULT 0,
	completion_tokens INTEGER NOT NULL DEFAULT 0,
	logged_at  TEXT NOT NULL
);
`
