package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// The pending confirmation lives entirely in the callback payload attached to
// the prompt's buttons; there is no server-side session. The payload carries
// the original date/time filter pair, not the resolved identifiers: the
// candidate set is recomputed at confirmation time so a stale prompt cannot
// delete events that changed in the meantime.
const (
	confirmPrefix = "delete_confirm:"
	cancelPayload = "delete_cancel"
)

var (
	// ErrMalformedCallback reports a confirm payload that does not parse
	// into the expected triple or carries a degenerate date/time.
	ErrMalformedCallback = errors.New("dati di callback non validi")
	// ErrUnknownCallback reports a payload this agent never produced.
	ErrUnknownCallback = errors.New("azione non riconosciuta")
)

// Callback is a decoded confirm/cancel payload.
type Callback struct {
	Confirmed bool
	Date      string // "2006-01-02"
	Time      string // "15:04", may be empty
}

// ConfirmPayload encodes the filter pair for the confirm button.
func ConfirmPayload(date, timePrefix string) string {
	return fmt.Sprintf("%s%s:%s", confirmPrefix, date, timePrefix)
}

// CancelPayload returns the cancel button payload.
func CancelPayload() string {
	return cancelPayload
}

// ParseCallback decodes and validates a callback payload. The date/time pair
// is checked strictly before it may reach the store layer as a query filter.
func ParseCallback(data string) (Callback, error) {
	if data == cancelPayload {
		return Callback{Confirmed: false}, nil
	}

	if !strings.HasPrefix(data, confirmPrefix) {
		return Callback{}, ErrUnknownCallback
	}

	// Split only on the first two separators: the time part contains one.
	parts := strings.SplitN(data, ":", 3)
	if len(parts) < 3 {
		return Callback{}, ErrMalformedCallback
	}

	date, timePrefix := parts[1], parts[2]
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return Callback{}, fmt.Errorf("%w: data %q", ErrMalformedCallback, date)
	}
	if timePrefix != "" {
		if _, err := time.Parse("15:04", timePrefix); err != nil {
			return Callback{}, fmt.Errorf("%w: ora %q", ErrMalformedCallback, timePrefix)
		}
	}

	return Callback{Confirmed: true, Date: date, Time: timePrefix}, nil
}
