package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

var ErrEventNotFound = errors.New("google calendar event not found")

// IsEventNotFound returns true when a Google Calendar event no longer exists.
func IsEventNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}

// CreatedEvent is what the calendar hands back after a mutation: the event
// identifier and the canonical link shown to the user.
type CreatedEvent struct {
	ID       string
	HTMLLink string
}

// EventDetails represents a single Google Calendar event.
type EventDetails struct {
	ID        string
	Summary   string
	StartTime time.Time
	EndTime   time.Time
	HTMLLink  string
}

// CreateEvent creates a new event in the primary calendar.
func (c *Client) CreateEvent(ctx context.Context, summary string, start, end time.Time) (CreatedEvent, error) {
	if c.service == nil {
		return CreatedEvent{}, fmt.Errorf("calendar service not initialized")
	}

	// RFC3339 includes the offset, so Google Calendar can infer the timezone
	event := &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}

	created, err := c.service.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return CreatedEvent{}, fmt.Errorf("failed to create event: %w", err)
	}

	return CreatedEvent{ID: created.Id, HTMLLink: created.HtmlLink}, nil
}

// UpdateEvent updates an existing event in the primary calendar.
func (c *Client) UpdateEvent(ctx context.Context, eventID, summary string, start, end time.Time) (CreatedEvent, error) {
	if c.service == nil {
		return CreatedEvent{}, fmt.Errorf("calendar service not initialized")
	}

	event := &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}

	updated, err := c.service.Events.Update("primary", eventID, event).Context(ctx).Do()
	if err != nil {
		return CreatedEvent{}, fmt.Errorf("failed to update event: %w", err)
	}

	return CreatedEvent{ID: updated.Id, HTMLLink: updated.HtmlLink}, nil
}

// DeleteEvent deletes an event from the primary calendar.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	if c.service == nil {
		return fmt.Errorf("calendar service not initialized")
	}

	if err := c.service.Events.Delete("primary", eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// GetEvent retrieves a single event from the primary calendar. Returns
// ErrEventNotFound for deleted or cancelled events.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*EventDetails, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}
	if eventID == "" {
		return nil, fmt.Errorf("event id is required")
	}

	item, err := c.service.Events.Get("primary", eventID).Context(ctx).Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && (gErr.Code == http.StatusNotFound || gErr.Code == http.StatusGone) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	// Cancelled means the event was deleted on the Google Calendar side.
	if item.Status == "cancelled" {
		return nil, ErrEventNotFound
	}

	if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
		return nil, fmt.Errorf("event %s is missing start or end", eventID)
	}

	startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start datetime: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end datetime: %w", err)
	}

	return &EventDetails{
		ID:        item.Id,
		Summary:   item.Summary,
		StartTime: startTime,
		EndTime:   endTime,
		HTMLLink:  item.HtmlLink,
	}, nil
}
