package storage

import "time"

// CardReview records one President sign-off pass over the day's card,
// including how many revision rounds it took (§4.9's bounded revision loop).
type CardReview struct {
	Date      time.Time
	Approved  bool
	Reasoning string
	Revision  int
}

func (d *DB) SaveCardReview(r CardReview) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.conn.Exec(`
		INSERT INTO card_reviews (date, approved, reasoning, revision) VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET approved = excluded.approved, reasoning = excluded.reasoning, revision = excluded.revision`,
		r.Date.Format("2006-01-02"), boolToInt(r.Approved), r.Reasoning, r.Revision)
	return err
}

// LogAgentCall appends one token usage row for an agent (§C: "agent_logs
// table"). The coordinator writes one row per agent per run, carrying that
// run's cumulative prompt and completion totals.
func (d *DB) LogAgentCall(agent string, date time.Time, promptTokens, completionTokens int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.conn.Exec(`
		INSERT INTO agent_logs (agent, date, prompt_tokens, completion_tokens, logged_at) VALUES (?, ?, ?, ?, ?)`,
		agent, date.Format("2006-01-02"), promptTokens, completionTokens, time.Now().Format(time.RFC3339))
	return err
}
