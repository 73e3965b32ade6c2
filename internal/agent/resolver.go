package agent

import (
	"strings"
	"time"

	"github.com/gcanale/agendabot/internal/database"
	"github.com/gcanale/agendabot/internal/timeutil"
)

// EventStore is the persisted mirror the resolver queries. Upsert and delete
// never fail the caller; they report success as a boolean.
type EventStore interface {
	UpsertEvent(ev database.StoredEvent) bool
	DeleteEvent(eventID string) bool
	GetEventsByDate(date string) ([]database.StoredEvent, error)
	GetEventsBySummary(summary string) ([]database.StoredEvent, error)
	ListEvents() ([]database.StoredEvent, error)
}

// Resolver reduces a date/time/title filter combination to a candidate set
// of stored events.
type Resolver struct {
	store EventStore
	loc   *time.Location
}

func NewResolver(store EventStore, loc *time.Location) *Resolver {
	return &Resolver{store: store, loc: loc}
}

// Resolve applies a deterministic filter cascade, each stage narrowing the
// previous stage's output and never widening it:
//
//  1. all events whose start date equals date (empty result is final);
//  2. if timePrefix is given, events whose start time-of-day begins with it —
//     adopted only when the narrowed set is non-empty (advisory filter);
//  3. if title is given, events whose summary contains it case-insensitively —
//     same adopt-only-if-non-empty policy.
//
// The caller acts on cardinality: zero means not found, one proceeds
// directly, more than one requires disambiguation.
func (r *Resolver) Resolve(date, timePrefix, title string) ([]database.StoredEvent, error) {
	events, err := r.store.GetEventsByDate(date)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	if timePrefix != "" {
		var narrowed []database.StoredEvent
		for _, ev := range events {
			if strings.HasPrefix(timeutil.TimeOfDay(ev.StartTime, r.loc), timePrefix) {
				narrowed = append(narrowed, ev)
			}
		}
		if len(narrowed) > 0 {
			events = narrowed
		}
	}

	if title != "" {
		var narrowed []database.StoredEvent
		for _, ev := range events {
			if strings.Contains(strings.ToLower(ev.Summary), strings.ToLower(title)) {
				narrowed = append(narrowed, ev)
			}
		}
		if len(narrowed) > 0 {
			events = narrowed
		}
	}

	return events, nil
}
