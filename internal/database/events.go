package database

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// StoredEvent is the persisted mirror of a calendar event created through the
// bot. The calendar is the source of truth for identifiers; this table is the
// source of truth for resolving date/title queries.
type StoredEvent struct {
	ID        int64     `json:"id"`
	EventID   string    `json:"event_id"`
	Summary   string    `json:"summary"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertEvent inserts or updates the mirror row for a calendar event.
// It never fails the caller: errors are logged and reported as false, so a
// lagging mirror does not abort an action the calendar already accepted.
func (d *DB) UpsertEvent(ev StoredEvent) bool {
	_, err := d.Exec(`
		INSERT INTO agent_events (event_id, summary, start_time, end_time)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(event_id) DO UPDATE SET
			summary = excluded.summary,
			start_time = excluded.start_time,
			end_time = excluded.end_time
	`, ev.EventID, ev.Summary, ev.StartTime, ev.EndTime)
	if err != nil {
		log.Printf("DB error: failed to upsert event %s: %v", ev.EventID, err)
		return false
	}
	return true
}

// DeleteEvent removes the mirror row for a calendar event. Returns true when
// a row was actually deleted.
func (d *DB) DeleteEvent(eventID string) bool {
	res, err := d.Exec(`DELETE FROM agent_events WHERE event_id = ?`, eventID)
	if err != nil {
		log.Printf("DB error: failed to delete event %s: %v", eventID, err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		log.Printf("DB error: failed to read rows affected for %s: %v", eventID, err)
		return false
	}
	return n > 0
}

// GetEventsByDate returns events whose start falls on the given day
// ("2006-01-02"), interpreted in the store's operating timezone.
func (d *DB) GetEventsByDate(date string) ([]StoredEvent, error) {
	day, err := time.ParseInLocation("2006-01-02", date, d.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	// Next calendar day, not day+24h: on DST transition days the local day
	// is 23 or 25 hours long.
	dayEnd := day.AddDate(0, 0, 1)

	rows, err := d.Query(`
		SELECT id, event_id, summary, start_time, end_time, created_at
		FROM agent_events
		WHERE start_time >= ? AND start_time < ?
		ORDER BY start_time ASC
	`, day, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by date: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetEventsBySummary returns events whose summary contains the given text,
// case-insensitively. The fold happens in Go because SQLite's LOWER() only
// handles ASCII and titles carry accented Italian.
func (d *DB) GetEventsBySummary(summary string) ([]StoredEvent, error) {
	events, err := d.ListEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to query events by summary: %w", err)
	}

	needle := strings.ToLower(summary)
	var matched []StoredEvent
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Summary), needle) {
			matched = append(matched, ev)
		}
	}
	return matched, nil
}

// ListEvents returns all mirrored events ordered by start time ascending.
func (d *DB) ListEvents() ([]StoredEvent, error) {
	rows, err := d.Query(`
		SELECT id, event_id, summary, start_time, end_time, created_at
		FROM agent_events
		ORDER BY start_time ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows rowScanner) ([]StoredEvent, error) {
	var events []StoredEvent
	for rows.Next() {
		var ev StoredEvent
		if err := rows.Scan(&ev.ID, &ev.EventID, &ev.Summary, &ev.StartTime, &ev.EndTime, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}
