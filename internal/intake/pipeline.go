// Package intake turns free-form task text into a structured draft.
//
// Parsing runs four passes in a fixed order: recurrence, time of day, date,
// then title cleanup. Each pass removes the fragment it recognises so later
// passes never match the same text twice. Parsing never fails: text nothing
// recognises becomes the title of a floating one-off task.
package intake

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"task-planner/internal/model"
	"task-planner/pkg/datemath"
)

// gap replaces consumed fragments in the working text. It is not a word
// character and not whitespace, so later patterns cannot span it.
const gap = "\x00"

// Pass consumes one kind of fragment from text and records it in the draft.
type Pass func(text string, draft model.ParsedDraft) (string, model.ParsedDraft)

// Pipeline parses task text. It is safe for concurrent use.
type Pipeline struct {
	cal   *datemath.Calendar
	clock datemath.Clock
	cfg   Config
	dates *when.Parser
}

// New creates a Pipeline. A nil clock reads the system clock.
func New(cal *datemath.Calendar, clock datemath.Clock, cfg Config) *Pipeline {
	if cal == nil {
		cal = datemath.UTC()
	}
	if clock == nil {
		clock = datemath.SystemClock{}
	}
	if len(cfg.Periods) == 0 {
		cfg = DefaultConfig()
	}

	w := when.New(nil)
	w.Add(en.ExactMonthDate(rules.Override), common.SlashDMY(rules.Skip))

	return &Pipeline{
		cal:   cal,
		clock: clock,
		cfg:   cfg,
		dates: w,
	}
}

// Passes returns the ordered passes bound to the reference instant now.
func (p *Pipeline) Passes(now time.Time) []Pass {
	return []Pass{
		RecurrencePass(),
		TimePass(p.cal, now, p.cfg),
		DatePass(p.cal, now, p.dates),
		TitlePass(),
	}
}

// Parse extracts a draft from text using the pipeline's clock.
func (p *Pipeline) Parse(text string) model.ParsedDraft {
	return p.ParseAt(text, p.clock.Now())
}

// ParseAt extracts a draft from text relative to now.
func (p *Pipeline) ParseAt(text string, now time.Time) model.ParsedDraft {
	now = now.In(p.cal.Location())

	working := strings.Join(strings.Fields(text), " ")
	var draft model.ParsedDraft
	for _, pass := range p.Passes(now) {
		working, draft = pass(working, draft)
	}

	if draft.Title == "" {
		draft.Title = capitalize(strings.Join(strings.Fields(text), " "))
	}
	draft.IsFloating = !draft.IsRecurring && draft.ScheduledDate == nil && draft.ScheduledTime == nil
	return draft
}

// consume replaces text[start:end] with a gap.
func consume(text string, start, end int) string {
	return text[:start] + " " + gap + " " + text[end:]
}
