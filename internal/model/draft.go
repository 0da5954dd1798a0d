package model

import "time"

// ParsedDraft is the structured result of parsing free-form task text.
// It is created fresh per parse call and never persisted.
type ParsedDraft struct {
	Title         string
	ScheduledDate *time.Time
	ScheduledTime *time.Time
	IsFloating    bool

	IsRecurring bool
	Frequency   Frequency // empty unless IsRecurring
	Interval    int
	DaysOfWeek  []Weekday
	DayOfMonth  *int
}

// Rule builds the recurrence rule the draft describes, anchored at start.
// It returns nil for one-off drafts.
func (d ParsedDraft) Rule(start time.Time) *RecurrenceRule {
	if !d.IsRecurring {
		return nil
	}
	interval := d.Interval
	if interval < 1 {
		interval = 1
	}
	rule := &RecurrenceRule{
		Frequency: d.Frequency,
		Interval:  interval,
		StartDate: start,
	}
	if len(d.DaysOfWeek) > 0 {
		rule.DaysOfWeek = append([]Weekday(nil), d.DaysOfWeek...)
	}
	if d.DayOfMonth != nil {
		dom := *d.DayOfMonth
		rule.DayOfMonth = &dom
	}
	return rule
}
