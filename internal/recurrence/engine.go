// Package recurrence expands recurrence rules into concrete calendar days.
//
// The engine is a pure function of its inputs: it holds no mutable state and
// may be called concurrently. Every date computation is delegated to the
// datemath calendar so month lengths and week numbering come from one place.
package recurrence

import (
	"time"

	"task-planner/internal/model"
	"task-planner/pkg/datemath"
)

const (
	// maxWeekdayScanDays bounds the day-by-day weekday search. An impossible
	// weekday set ends the expansion instead of looping forever.
	maxWeekdayScanDays = 365

	// maxMonthSkips bounds how many consecutive months without the requested
	// day-of-month an expansion steps over before it gives up.
	maxMonthSkips = 12
)

// Engine computes occurrences of recurrence rules.
type Engine struct {
	cal *datemath.Calendar
}

// New creates an Engine using cal for all calendar arithmetic.
func New(cal *datemath.Calendar) *Engine {
	if cal == nil {
		cal = datemath.UTC()
	}
	return &Engine{cal: cal}
}

// Calendar returns the engine's calendar.
func (e *Engine) Calendar() *datemath.Calendar {
	return e.cal
}

// NextOccurrence returns the first day strictly after after that matches rule.
// ok is false when the rule has ended, when the weekday scan is exhausted, or
// when a monthly rule's day does not exist in the target month.
func (e *Engine) NextOccurrence(rule model.RecurrenceRule, after time.Time) (time.Time, bool) {
	after = e.cal.StartOfDay(after)
	if e.ended(rule, after) {
		return time.Time{}, false
	}

	step := rule.Step()
	var next time.Time

	switch rule.Frequency {
	case model.FrequencyDaily, model.FrequencyCustomInterval:
		next = e.cal.AddUnits(after, step, datemath.Day)

	case model.FrequencyWeekly:
		if len(rule.DaysOfWeek) == 0 {
			next = e.cal.AddUnits(after, step, datemath.Week)
			break
		}
		d, ok := e.scanWeekdays(rule, after)
		if !ok {
			return time.Time{}, false
		}
		next = d

	case model.FrequencyMonthly:
		if rule.DayOfMonth == nil {
			next = e.anchoredMonth(rule, after, step)
			break
		}
		d, ok := e.monthDay(after, step, *rule.DayOfMonth)
		if !ok {
			return time.Time{}, false
		}
		next = d

	case model.FrequencyYearly:
		next = e.cal.AddUnits(after, step, datemath.Year)

	default:
		return time.Time{}, false
	}

	if e.ended(rule, next) {
		return time.Time{}, false
	}
	return e.cal.StartOfDay(next), true
}

// Occurrences returns every occurrence d of rule with rangeStart <= d <= rangeEnd,
// ascending and without duplicates. rangeStart is compared by calendar day.
// OccurrenceCount caps the occurrences counted from StartDate, including the
// ones that fall before rangeStart.
func (e *Engine) Occurrences(rule model.RecurrenceRule, rangeStart, rangeEnd time.Time) []time.Time {
	out := make([]time.Time, 0)
	if rangeEnd.Before(rangeStart) {
		return out
	}

	limit := -1
	if rule.OccurrenceCount != nil {
		if *rule.OccurrenceCount <= 0 {
			return out
		}
		limit = *rule.OccurrenceCount
	}

	from := e.cal.StartOfDay(rangeStart)
	count := 0

	d, ok := e.first(rule)
	for ok && !d.After(rangeEnd) {
		count++
		if !d.Before(from) {
			out = append(out, d)
		}
		if limit >= 0 && count >= limit {
			break
		}
		d, ok = e.advance(rule, d)
	}

	return out
}

// first returns the earliest occurrence at or after the rule's start day.
func (e *Engine) first(rule model.RecurrenceRule) (time.Time, bool) {
	start := e.cal.StartOfDay(rule.StartDate)
	if e.ended(rule, start) {
		return time.Time{}, false
	}

	switch rule.Frequency {
	case model.FrequencyWeekly:
		if len(rule.DaysOfWeek) > 0 && !rule.HasDay(e.cal.WeekdayOf(start)) {
			return e.NextOccurrence(rule, start)
		}

	case model.FrequencyMonthly:
		if rule.DayOfMonth == nil {
			break
		}
		dom := *rule.DayOfMonth
		if start.Day() == dom {
			return start, true
		}
		if start.Day() < dom {
			if d, ok := e.cal.DateFromYMD(start.Year(), start.Month(), dom); ok {
				if e.ended(rule, d) {
					return time.Time{}, false
				}
				return d, true
			}
		}
		return e.advance(rule, start)

	case model.FrequencyDaily, model.FrequencyCustomInterval, model.FrequencyYearly:
	default:
		return time.Time{}, false
	}

	return start, true
}

// advance moves from one occurrence to the next. A monthly step that lands on
// a day the target month lacks is skipped instead of ending the expansion.
func (e *Engine) advance(rule model.RecurrenceRule, from time.Time) (time.Time, bool) {
	if next, ok := e.NextOccurrence(rule, from); ok {
		return next, true
	}
	if rule.Frequency != model.FrequencyMonthly || rule.DayOfMonth == nil {
		return time.Time{}, false
	}

	step := rule.Step()
	for k := 2; k <= maxMonthSkips; k++ {
		target := e.firstOfMonth(from, k*step)
		if e.ended(rule, target) {
			return time.Time{}, false
		}
		if d, ok := e.cal.DateFromYMD(target.Year(), target.Month(), *rule.DayOfMonth); ok {
			if e.ended(rule, d) {
				return time.Time{}, false
			}
			return d, true
		}
	}
	return time.Time{}, false
}

func (e *Engine) scanWeekdays(rule model.RecurrenceRule, after time.Time) (time.Time, bool) {
	anchor := e.startOfWeek(rule.StartDate)
	step := rule.Step()

	d := after
	for i := 0; i < maxWeekdayScanDays; i++ {
		d = e.cal.AddUnits(d, 1, datemath.Day)
		if !rule.HasDay(e.cal.WeekdayOf(d)) {
			continue
		}
		if step > 1 {
			week := floorDiv(e.cal.DaysBetween(anchor, d), 7)
			if week%step != 0 {
				continue
			}
		}
		return d, true
	}
	return time.Time{}, false
}

// monthDay moves step months from after and forces the day. It does not clamp.
func (e *Engine) monthDay(after time.Time, step, dom int) (time.Time, bool) {
	target := e.firstOfMonth(after, step)
	return e.cal.DateFromYMD(target.Year(), target.Month(), dom)
}

// anchoredMonth keeps the start date's day of month, clamped to short months.
func (e *Engine) anchoredMonth(rule model.RecurrenceRule, after time.Time, step int) time.Time {
	target := e.firstOfMonth(after, step)
	day := e.cal.StartOfDay(rule.StartDate).Day()
	if last := e.cal.DaysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	d, _ := e.cal.DateFromYMD(target.Year(), target.Month(), day)
	return d
}

func (e *Engine) firstOfMonth(t time.Time, months int) time.Time {
	t = e.cal.StartOfDay(t)
	first, _ := e.cal.DateFromYMD(t.Year(), t.Month(), 1)
	return e.cal.AddUnits(first, months, datemath.Month)
}

func (e *Engine) startOfWeek(t time.Time) time.Time {
	day := e.cal.StartOfDay(t)
	return e.cal.AddUnits(day, -(int(e.cal.WeekdayOf(day)) - 1), datemath.Day)
}

func (e *Engine) ended(rule model.RecurrenceRule, t time.Time) bool {
	return rule.EndDate != nil && !t.Before(*rule.EndDate)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
