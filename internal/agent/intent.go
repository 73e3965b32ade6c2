package agent

import "errors"

// Action tags an Intent and determines which of its fields are meaningful.
type Action string

const (
	ActionAdd    Action = "add"
	ActionDelete Action = "delete"
	ActionModify Action = "modify"
	ActionList   Action = "list"
)

// LookupSentinel is the event_id value the prompt instructs the model to emit
// when the target event has to be looked up in the store.
const LookupSentinel = "ID_DA_CERCARE_IN_DB"

// ErrParse reports that the completion service's response could not be turned
// into an Intent: missing, non-conforming, or lacking the action field.
var ErrParse = errors.New("risposta del modello non riconosciuta")

// Intent is the structured output of parsing a user utterance. Field names
// match the JSON contract of the prompt.
//
// Summary carries only the bare event title, never temporal fragments; those
// belong in Date/Time (the event's original schedule, used purely for lookup)
// or Start/End (the new schedule, used for mutation).
type Intent struct {
	Action  Action `json:"action"`
	Summary string `json:"summary,omitempty"`
	Start   string `json:"start,omitempty"`    // "2006-01-02T15:04:05"
	End     string `json:"end,omitempty"`      // "2006-01-02T15:04:05"
	EventID string `json:"event_id,omitempty"` // bypasses resolution when set
	Date    string `json:"date,omitempty"`     // "2006-01-02", original date
	Time    string `json:"time,omitempty"`     // "15:04", original time
}

// NeedsLookup reports whether the target event must be resolved against the
// store instead of addressed by identifier.
func (i *Intent) NeedsLookup() bool {
	return i.EventID == "" || i.EventID == LookupSentinel
}
