package gcal

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gcanale/agendabot/internal/database"
)

// ReconcileStore defines the store operations the reconcile worker needs.
type ReconcileStore interface {
	ListEvents() ([]database.StoredEvent, error)
	UpsertEvent(ev database.StoredEvent) bool
	DeleteEvent(eventID string) bool
}

// EventGetter fetches single events from the calendar of record.
type EventGetter interface {
	GetEvent(ctx context.Context, eventID string) (*EventDetails, error)
}

// Reconciler periodically re-syncs the store mirror against Google Calendar
// by identifier. The calendar is always mutated first during normal
// operation, so the mirror can lag behind after a partial failure; this
// worker is the documented path that converges the two again.
type Reconciler struct {
	calendar EventGetter
	store    ReconcileStore
	cron     *cron.Cron
	interval time.Duration
}

// NewReconciler creates a reconcile worker polling at the given interval.
func NewReconciler(calendar EventGetter, store ReconcileStore, interval time.Duration) *Reconciler {
	return &Reconciler{
		calendar: calendar,
		store:    store,
		cron:     cron.New(),
		interval: interval,
	}
}

// Start schedules the periodic reconcile run. A non-positive interval
// disables the worker.
func (r *Reconciler) Start() error {
	if r.interval <= 0 {
		fmt.Println("Reconcile worker: disabled (no interval configured)")
		return nil
	}

	spec := fmt.Sprintf("@every %s", r.interval)
	if _, err := r.cron.AddFunc(spec, func() {
		updated, removed, err := r.RunOnce(context.Background())
		if err != nil {
			fmt.Printf("Reconcile worker: run failed: %v\n", err)
			return
		}
		fmt.Printf("Reconcile worker: run complete (updated=%d, removed=%d)\n", updated, removed)
	}); err != nil {
		return fmt.Errorf("failed to schedule reconcile worker: %w", err)
	}

	r.cron.Start()
	fmt.Printf("Reconcile worker: started with %v interval\n", r.interval)
	return nil
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (r *Reconciler) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// RunOnce walks every mirrored event and converges it with the calendar copy:
// drifted rows are rewritten, rows whose event is gone are dropped.
func (r *Reconciler) RunOnce(ctx context.Context) (updated, removed int, err error) {
	events, err := r.store.ListEvents()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list mirrored events: %w", err)
	}

	for _, ev := range events {
		details, err := r.calendar.GetEvent(ctx, ev.EventID)
		if IsEventNotFound(err) {
			if r.store.DeleteEvent(ev.EventID) {
				removed++
			}
			continue
		}
		if err != nil {
			// Leave the row alone on transient failures; the next run retries.
			fmt.Printf("Reconcile worker: could not fetch %s: %v\n", ev.EventID, err)
			continue
		}

		if details.Summary == ev.Summary &&
			details.StartTime.Equal(ev.StartTime) &&
			details.EndTime.Equal(ev.EndTime) {
			continue
		}

		if r.store.UpsertEvent(database.StoredEvent{
			EventID:   ev.EventID,
			Summary:   details.Summary,
			StartTime: details.StartTime,
			EndTime:   details.EndTime,
		}) {
			updated++
		}
	}

	return updated, removed, nil
}
