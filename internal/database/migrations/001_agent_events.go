package migrations

import (
	"database/sql"
)

func init() {
	Register(Migration{
		Version: 1,
		Name:    "agent_events",
		Up:      agentEvents,
	})
}

func agentEvents(db *sql.DB) error {
	statements := []string{
		// One row per calendar event created through the bot. event_id is the
		// identifier assigned by Google Calendar at creation time.
		`CREATE TABLE IF NOT EXISTS agent_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id TEXT UNIQUE NOT NULL,
			summary TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_events_start_time ON agent_events(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_events_summary ON agent_events(summary)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
