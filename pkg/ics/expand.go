package ics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

const defaultMaxOccurrences = 5000

var ErrInvalidRange = errors.New("ics: range end before start")

// Occurrence is one concrete appearance of an Event.
type Occurrence struct {
	FeedID   string
	UID      string
	Summary  string
	Location string
	AllDay   bool
	Start    time.Time
	End      time.Time
}

// ExpandOptions bounds an expansion.
type ExpandOptions struct {
	From     time.Time
	To       time.Time
	Location *time.Location
	// MaxPerEvent caps the occurrences of one recurring event, 0 means the default.
	MaxPerEvent int
}

// Expand turns events into occurrences overlapping [From, To], applying
// EXDATE and RECURRENCE-ID overrides. Results are sorted by start.
// Events with an unparseable RRULE are returned in the error slice and skipped.
func Expand(events []Event, opts ExpandOptions) ([]Occurrence, []error, error) {
	if opts.To.Before(opts.From) {
		return nil, nil, ErrInvalidRange
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxPerEvent <= 0 {
		opts.MaxPerEvent = defaultMaxOccurrences
	}

	overrides := make(map[string][]Event)
	for _, ev := range events {
		if ev.IsOverride() {
			overrides[ev.UID] = append(overrides[ev.UID], ev)
		}
	}

	out := make([]Occurrence, 0)
	var errs []error
	for _, ev := range events {
		if ev.IsOverride() {
			continue
		}
		if ev.RRule == "" {
			if overlaps(ev.Start, ev.End, opts.From, opts.To) {
				out = append(out, occurrence(ev, ev.Start, ev.End, opts.Location))
			}
			continue
		}
		occ, err := expandRecurring(ev, overrides[ev.UID], opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, occ...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out, errs, nil
}

func expandRecurring(ev Event, overrides []Event, opts ExpandOptions) ([]Occurrence, error) {
	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		return nil, fmt.Errorf("ics: event %s: %w", ev.UID, err)
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	duration := ev.End.Sub(ev.Start)
	// Widen the lower bound so instances that started before From but are
	// still running are kept.
	from := opts.From.Add(-duration).In(ev.Start.Location())
	to := opts.To.In(ev.Start.Location())
	starts := set.Between(from, to, true)
	if len(starts) > opts.MaxPerEvent {
		starts = starts[:opts.MaxPerEvent]
	}

	out := make([]Occurrence, 0, len(starts))
	for _, start := range starts {
		end := start.Add(duration)
		if ev.AllDay {
			start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
			end = start.AddDate(0, 0, int(duration.Hours()/24+0.5))
		}
		base := ev
		if o, ok := findOverride(overrides, start); ok {
			base, start, end = o, o.Start, o.End
		}
		if !overlaps(start, end, opts.From, opts.To) {
			continue
		}
		out = append(out, occurrence(base, start, end, opts.Location))
	}
	return out, nil
}

func findOverride(overrides []Event, start time.Time) (Event, bool) {
	for _, o := range overrides {
		if o.Recurrence.Equal(start) {
			return o, true
		}
	}
	return Event{}, false
}

func occurrence(ev Event, start, end time.Time, loc *time.Location) Occurrence {
	return Occurrence{
		FeedID:   ev.FeedID,
		UID:      ev.UID,
		Summary:  ev.Summary,
		Location: ev.Location,
		AllDay:   ev.AllDay,
		Start:    start.In(loc),
		End:      end.In(loc),
	}
}

// overlaps treats zero-length events as points.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aEnd.Equal(aStart) {
		return !aStart.Before(bStart) && !aStart.After(bEnd)
	}
	return aStart.Before(bEnd) && aEnd.After(bStart) || aStart.Equal(bStart)
}
