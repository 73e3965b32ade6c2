package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/gcanale/agendabot/internal/llm"
)

// Parser turns a raw utterance into an Intent by delegating the language
// understanding to the completion service and validating its output.
type Parser struct {
	llm llm.Client
}

func NewParser(client llm.Client) *Parser {
	return &Parser{llm: client}
}

// Parse builds the instruction prompt for the utterance, sends it to the
// completion service and deserializes the sanitized response. referenceYear
// is passed explicitly so relative dates resolve deterministically.
//
// Every failure mode (completion fault, invalid JSON, missing action) wraps
// ErrParse; the response is never coerced.
func (p *Parser) Parse(ctx context.Context, utterance string, referenceYear int) (*Intent, error) {
	raw, err := p.llm.Complete(ctx, buildPrompt(utterance, referenceYear))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	cleaned := sanitizeResponse(raw)

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()

	var intent Intent
	if err := dec.Decode(&intent); err != nil {
		log.Printf("Intent JSON non valido (raw=%q, cleaned=%q): %v", raw, cleaned, err)
		return nil, fmt.Errorf("%w: json non valido", ErrParse)
	}

	if intent.Action == "" {
		return nil, fmt.Errorf("%w: campo 'action' mancante", ErrParse)
	}

	// The prompt forbids temporal fragments in the summary; enforce it here
	// too so a sloppy completion cannot leak them into store lookups.
	intent.Summary = stripTemporalFragments(intent.Summary)

	return &intent, nil
}

// sanitizeResponse strips Markdown code fences and normalizes quote
// characters before deserialization.
func sanitizeResponse(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.ReplaceAll(s, "'", `"`)
	return strings.TrimSpace(s)
}

// temporalPatterns are the reserved date/time fragments that must never
// survive in an event title.
var temporalPatterns = []*regexp.Regexp{
	// "alle 15", "delle 9:30", "dalle ore 14"
	regexp.MustCompile(`(?i)\s*\b(?:alle|delle|dalle)\s+(?:ore\s+)?\d{1,2}(?:[:.]\d{2})?`),
	// "del 12 marzo", "il 5 giugno 2024"
	regexp.MustCompile(`(?i)\s*\b(?:del|dell|il)\s+\d{1,2}\s+(?:gennaio|febbraio|marzo|aprile|maggio|giugno|luglio|agosto|settembre|ottobre|novembre|dicembre)(?:\s+\d{4})?`),
	// bare ISO dates and datetimes
	regexp.MustCompile(`\s*\b\d{4}-\d{2}-\d{2}(?:T\d{2}:\d{2}(?::\d{2})?)?`),
	// "di oggi", "di domani", "di dopodomani"
	regexp.MustCompile(`(?i)\s*\b(?:di\s+)?(?:oggi|domani|dopodomani)\b`),
}

// stripTemporalFragments removes reserved date/time phrasing from an event
// title. Applying it twice yields the same result.
func stripTemporalFragments(summary string) string {
	s := summary
	for _, re := range temporalPatterns {
		s = re.ReplaceAllString(s, "")
	}
	return strings.Join(strings.Fields(s), " ")
}
