package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gcanale/agendabot/internal/database"
	"github.com/gcanale/agendabot/internal/timeutil"
)

// Calendar is the calendar of record. It is always mutated before the store,
// which mirrors it best-effort.
type Calendar interface {
	CreateEvent(ctx context.Context, summary string, start, end time.Time) (CreatedEvent, error)
	UpdateEvent(ctx context.Context, eventID, summary string, start, end time.Time) (CreatedEvent, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// CreatedEvent is the calendar's answer to a create/update call.
type CreatedEvent struct {
	ID       string
	HTMLLink string
}

// Notifier delivers best-effort notification mail. Failures are logged by the
// implementation and never abort the action in progress.
type Notifier interface {
	Notify(ctx context.Context, subject, body string)
}

// User-facing reply strings. Plain text, Italian, no fault details ever.
const (
	msgGenericError    = "❌ Errore durante l'operazione."
	msgUnsupported     = "❌ Azione non supportata."
	msgNoEvents        = "🗓️ Nessun evento trovato."
	msgNotFound        = "❌ Nessun evento trovato."
	msgNoDeleteDate    = "❌ Data non specificata per la cancellazione."
	msgCancelled       = "❌ Cancellazione annullata."
	msgBadCallback     = "❌ Dati di callback non validi."
	msgUnknownCallback = "❌ Azione non riconosciuta."
	msgModifyNotFound  = "❌ Nessun evento trovato con questo titolo."
	msgModifyAmbiguous = "🔍 Trovati più eventi. Specifica quale vuoi modificare:"
)

// maxCandidates bounds how many candidate summaries a disambiguation prompt
// lists.
const maxCandidates = 5

// ConfirmButtons describes the two-button confirm/cancel affordance attached
// to a disambiguation prompt.
type ConfirmButtons struct {
	ConfirmLabel string
	ConfirmData  string
	CancelLabel  string
	CancelData   string
}

// Reply is the agent's answer to one inbound message. When Confirm is set the
// transport renders the text with the confirm/cancel buttons and the flow
// suspends until the matching callback arrives.
type Reply struct {
	Text    string
	Confirm *ConfirmButtons
}

// Agent wires the intent parser, the event resolver and the collaborators
// into the message-handling pipeline. Collaborators are injected so tests can
// substitute fakes; the clock is injected so parsing stays deterministic.
type Agent struct {
	parser   *Parser
	resolver *Resolver
	calendar Calendar
	store    EventStore
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
}

func New(parser *Parser, calendar Calendar, store EventStore, notifier Notifier, loc *time.Location, now func() time.Time) *Agent {
	if now == nil {
		now = time.Now
	}
	return &Agent{
		parser:   parser,
		resolver: NewResolver(store, loc),
		calendar: calendar,
		store:    store,
		notifier: notifier,
		loc:      loc,
		now:      now,
	}
}

// HandleMessage runs one utterance through the pipeline and returns the reply
// to surface. Parse failures return the generic error without touching any
// collaborator; execution failures additionally trigger a best-effort error
// notification before the generic error is returned.
func (a *Agent) HandleMessage(ctx context.Context, text string) Reply {
	intent, err := a.parser.Parse(ctx, text, a.now().In(a.loc).Year())
	if err != nil {
		log.Printf("Errore di parsing: %v", err)
		return Reply{Text: msgGenericError}
	}

	reply, err := a.execute(ctx, intent)
	if err != nil {
		log.Printf("Errore durante %s: %v", intent.Action, err)
		a.notifier.Notify(ctx, "Errore operazione",
			fmt.Sprintf("Errore durante %s: %v", intent.Action, err))
		return Reply{Text: msgGenericError}
	}
	return reply
}

func (a *Agent) execute(ctx context.Context, intent *Intent) (Reply, error) {
	switch intent.Action {
	case ActionAdd:
		return a.addEvent(ctx, intent)
	case ActionDelete:
		return a.confirmDelete(intent)
	case ActionModify:
		return a.modifyEvent(ctx, intent)
	case ActionList:
		return a.listEvents()
	default:
		return Reply{Text: msgUnsupported}, nil
	}
}

// addEvent creates the event on the calendar, mirrors it in the store and
// sends the notification mail. A calendar failure aborts before any store
// write.
func (a *Agent) addEvent(ctx context.Context, intent *Intent) (Reply, error) {
	start, err := timeutil.ParseDateTime(intent.Start, a.loc)
	if err != nil {
		return Reply{}, fmt.Errorf("orario di inizio non valido: %w", err)
	}
	end, err := timeutil.ParseDateTime(intent.End, a.loc)
	if err != nil {
		return Reply{}, fmt.Errorf("orario di fine non valido: %w", err)
	}

	created, err := a.calendar.CreateEvent(ctx, intent.Summary, start, end)
	if err != nil {
		return Reply{}, err
	}

	if !a.store.UpsertEvent(database.StoredEvent{
		EventID:   created.ID,
		Summary:   intent.Summary,
		StartTime: start,
		EndTime:   end,
	}) {
		log.Printf("Evento %s creato sul calendario ma non salvato nel database", created.ID)
	}

	a.notifier.Notify(ctx, "Nuovo evento creato",
		fmt.Sprintf("Evento creato: %s\nOra: %s", intent.Summary, intent.Start))

	return Reply{Text: fmt.Sprintf("✅ Evento creato: %s", created.HTMLLink)}, nil
}

// modifyEvent updates an event's schedule. When the intent carries no usable
// identifier the target is resolved from the store first; zero matches and
// ambiguity are normal results, not errors.
func (a *Agent) modifyEvent(ctx context.Context, intent *Intent) (Reply, error) {
	eventID := intent.EventID

	if intent.NeedsLookup() {
		events, err := a.lookupForModify(intent)
		if err != nil {
			return Reply{}, err
		}
		if len(events) == 0 {
			return Reply{Text: msgModifyNotFound}, nil
		}
		if len(events) > 1 {
			// Deliberately no confirmation step here: the candidates are
			// surfaced as plain text and the user refines the request.
			var b strings.Builder
			b.WriteString(msgModifyAmbiguous)
			for _, ev := range events {
				b.WriteString(fmt.Sprintf("\n%s (%s)", ev.Summary, a.formatStart(ev)))
			}
			return Reply{Text: b.String()}, nil
		}
		eventID = events[0].EventID
	}

	start, err := timeutil.ParseDateTime(intent.Start, a.loc)
	if err != nil {
		return Reply{}, fmt.Errorf("nuovo orario di inizio non valido: %w", err)
	}
	end, err := timeutil.ParseDateTime(intent.End, a.loc)
	if err != nil {
		return Reply{}, fmt.Errorf("nuovo orario di fine non valido: %w", err)
	}

	updated, err := a.calendar.UpdateEvent(ctx, eventID, intent.Summary, start, end)
	if err != nil {
		return Reply{}, err
	}

	if !a.store.UpsertEvent(database.StoredEvent{
		EventID:   updated.ID,
		Summary:   intent.Summary,
		StartTime: start,
		EndTime:   end,
	}) {
		log.Printf("Evento %s modificato sul calendario ma non aggiornato nel database", updated.ID)
	}

	a.notifier.Notify(ctx, "Evento modificato",
		fmt.Sprintf("Evento modificato: %s\nNuovo orario: %s", intent.Summary, intent.Start))

	return Reply{Text: fmt.Sprintf("🔄 Evento modificato: %s", updated.HTMLLink)}, nil
}

// lookupForModify resolves the modify target: the full date/time/title
// cascade when the original date is known, a bare title search otherwise.
func (a *Agent) lookupForModify(intent *Intent) ([]database.StoredEvent, error) {
	if intent.Date != "" {
		return a.resolver.Resolve(intent.Date, intent.Time, intent.Summary)
	}
	return a.store.GetEventsBySummary(intent.Summary)
}

// confirmDelete suspends the deletion behind a confirm/cancel prompt. Even a
// single candidate goes through confirmation; nothing is ever auto-deleted.
func (a *Agent) confirmDelete(intent *Intent) (Reply, error) {
	if intent.Date == "" {
		return Reply{Text: msgNoDeleteDate}, nil
	}

	events, err := a.resolver.Resolve(intent.Date, intent.Time, intent.Summary)
	if err != nil {
		return Reply{}, err
	}
	if len(events) == 0 {
		return Reply{Text: fmt.Sprintf("❌ Nessun evento trovato per il %s.", intent.Date)}, nil
	}

	buttons := &ConfirmButtons{
		ConfirmLabel: "✅ Conferma",
		ConfirmData:  ConfirmPayload(intent.Date, intent.Time),
		CancelLabel:  "❌ Annulla",
		CancelData:   CancelPayload(),
	}

	if len(events) == 1 {
		ev := events[0]
		return Reply{
			Text: fmt.Sprintf("🗑️ Vuoi eliminare '%s' del %s alle %s?",
				ev.Summary, intent.Date, a.formatTime(ev)),
			Confirm: buttons,
		}, nil
	}

	buttons.ConfirmLabel = "✅ Elimina tutti"
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Trovati %d eventi per il %s:", len(events), intent.Date)
	for i, ev := range events {
		if i == maxCandidates {
			break
		}
		fmt.Fprintf(&b, "\n- %s (%s)", ev.Summary, a.formatTime(ev))
	}

	return Reply{Text: b.String(), Confirm: buttons}, nil
}

// HandleCallback resumes a suspended deletion from a confirm/cancel payload
// and returns the text the prompt message is replaced with. The candidate set
// is recomputed against the current store state, so a token whose events are
// already gone reports "not found" instead of erroring.
func (a *Agent) HandleCallback(ctx context.Context, data string) string {
	cb, err := ParseCallback(data)
	switch {
	case errors.Is(err, ErrUnknownCallback):
		return msgUnknownCallback
	case errors.Is(err, ErrMalformedCallback):
		log.Printf("Callback non valido %q: %v", data, err)
		return msgBadCallback
	case err != nil:
		log.Printf("Callback %q: %v", data, err)
		return msgBadCallback
	}

	if !cb.Confirmed {
		return msgCancelled
	}

	events, err := a.resolver.Resolve(cb.Date, cb.Time, "")
	if err != nil {
		log.Printf("Errore durante delete: %v", err)
		a.notifier.Notify(ctx, "Errore operazione", fmt.Sprintf("Errore durante delete: %v", err))
		return msgGenericError
	}
	if len(events) == 0 {
		return msgNotFound
	}

	deleted := make([]database.StoredEvent, 0, len(events))
	for _, ev := range events {
		if err := a.calendar.DeleteEvent(ctx, ev.EventID); err != nil {
			log.Printf("Errore durante delete di %s: %v", ev.EventID, err)
			a.notifier.Notify(ctx, "Errore operazione", fmt.Sprintf("Errore durante delete: %v", err))
			return msgGenericError
		}
		if !a.store.DeleteEvent(ev.EventID) {
			log.Printf("Evento %s eliminato dal calendario ma non dal database", ev.EventID)
		}
		deleted = append(deleted, ev)
	}

	for _, ev := range deleted {
		a.notifier.Notify(ctx, "Evento cancellato",
			fmt.Sprintf("È stato cancellato l'evento: %s\nData/ora: %s", ev.Summary, a.formatStart(ev)))
	}

	return fmt.Sprintf("🗑️ Eliminati %d eventi.", len(deleted))
}

// listEvents renders all mirrored events, one per line, start ascending.
func (a *Agent) listEvents() (Reply, error) {
	events, err := a.store.ListEvents()
	if err != nil {
		return Reply{}, err
	}
	if len(events) == 0 {
		return Reply{Text: msgNoEvents}, nil
	}

	lines := make([]string, 0, len(events))
	for _, ev := range events {
		lines = append(lines, fmt.Sprintf("%s (%s)", ev.Summary, a.formatStart(ev)))
	}
	return Reply{Text: strings.Join(lines, "\n")}, nil
}

func (a *Agent) formatStart(ev database.StoredEvent) string {
	return ev.StartTime.In(a.loc).Format(timeutil.DateTimeLayout)
}

func (a *Agent) formatTime(ev database.StoredEvent) string {
	return ev.StartTime.In(a.loc).Format(timeutil.TimeLayout)
}
