package agent

import (
	"testing"
	"time"

	"github.com/gcanale/agendabot/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedResolverDB(t *testing.T) (*database.DB, *time.Location) {
	t.Helper()
	db := database.NewTestDB(t)
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	seed := []database.StoredEvent{
		{EventID: "ev-dentista", Summary: "Dentista", StartTime: time.Date(2026, 6, 5, 9, 30, 0, 0, loc), EndTime: time.Date(2026, 6, 5, 10, 30, 0, 0, loc)},
		{EventID: "ev-riunione", Summary: "Riunione con il team", StartTime: time.Date(2026, 6, 5, 15, 0, 0, 0, loc), EndTime: time.Date(2026, 6, 5, 16, 0, 0, 0, loc)},
		{EventID: "ev-cena", Summary: "Cena con Marco", StartTime: time.Date(2026, 6, 5, 20, 0, 0, 0, loc), EndTime: time.Date(2026, 6, 5, 22, 0, 0, 0, loc)},
		{EventID: "ev-palestra", Summary: "Palestra", StartTime: time.Date(2026, 6, 6, 18, 0, 0, 0, loc), EndTime: time.Date(2026, 6, 6, 19, 0, 0, 0, loc)},
	}
	for _, ev := range seed {
		require.True(t, db.UpsertEvent(ev))
	}
	return db, loc
}

func eventIDs(events []database.StoredEvent) []string {
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.EventID)
	}
	return ids
}

func TestResolveCascade(t *testing.T) {
	db, loc := seedResolverDB(t)
	resolver := NewResolver(db, loc)

	tests := []struct {
		name  string
		date  string
		time  string
		title string
		want  []string
	}{
		{"date only", "2026-06-05", "", "", []string{"ev-dentista", "ev-riunione", "ev-cena"}},
		{"date and time", "2026-06-05", "09:30", "", []string{"ev-dentista"}},
		{"time prefix matches seconds", "2026-06-05", "15:00", "", []string{"ev-riunione"}},
		{"time filter advisory when nothing matches", "2026-06-05", "11:00", "", []string{"ev-dentista", "ev-riunione", "ev-cena"}},
		{"title case-insensitive substring", "2026-06-05", "", "riunione", []string{"ev-riunione"}},
		{"title filter advisory when nothing matches", "2026-06-05", "", "parrucchiere", []string{"ev-dentista", "ev-riunione", "ev-cena"}},
		{"time then title narrow together", "2026-06-05", "20:00", "marco", []string{"ev-cena"}},
		{"no events on date", "2026-06-07", "14:00", "dentista", nil},
		{"other date untouched", "2026-06-06", "", "", []string{"ev-palestra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(tt.date, tt.time, tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.want, eventIDs(got))
		})
	}
}

func TestResolveNeverWidens(t *testing.T) {
	db, loc := seedResolverDB(t)
	resolver := NewResolver(db, loc)

	base, err := resolver.Resolve("2026-06-05", "", "")
	require.NoError(t, err)

	narrowed, err := resolver.Resolve("2026-06-05", "09:30", "palestra")
	require.NoError(t, err)

	assert.LessOrEqual(t, len(narrowed), len(base))
	baseIDs := eventIDs(base)
	for _, id := range eventIDs(narrowed) {
		assert.Contains(t, baseIDs, id)
	}
}

func TestResolveMalformedDate(t *testing.T) {
	db, loc := seedResolverDB(t)
	resolver := NewResolver(db, loc)

	_, err := resolver.Resolve("non-una-data", "", "")
	assert.Error(t, err)
}
