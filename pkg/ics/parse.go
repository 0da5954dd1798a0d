package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

var ErrEmptyBody = errors.New("ics: empty body")

// Event is one VEVENT of a feed. Recurrences are kept as the raw RRULE and
// expanded by Expand.
type Event struct {
	FeedID   string
	UID      string
	Summary  string
	Location string

	Start  time.Time
	End    time.Time
	AllDay bool

	RRule      string
	ExDates    []time.Time
	Recurrence *time.Time // RECURRENCE-ID of an overridden instance
}

// IsOverride reports whether e replaces one instance of a recurring event.
func (e Event) IsOverride() bool {
	return e.Recurrence != nil
}

// Parse reads an ICS payload. Events without a UID or start are skipped and
// counted in the second return value.
func Parse(feedID string, body []byte, loc *time.Location) ([]Event, int, error) {
	if len(body) == 0 {
		return nil, 0, ErrEmptyBody
	}
	if loc == nil {
		loc = time.UTC
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("ics: parse calendar: %w", err)
	}

	events := make([]Event, 0)
	skipped := 0
	for _, ve := range cal.Events() {
		ev, ok := parseVEvent(feedID, ve, loc)
		if !ok {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	return events, skipped, nil
}

func parseVEvent(feedID string, ve *ical.VEvent, loc *time.Location) (Event, bool) {
	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return Event{}, false
	}
	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return Event{}, false
	}

	ev := Event{FeedID: feedID, UID: uid.Value}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		ev.Location = p.Value
	}

	ev.AllDay = isDateValue(dtStart)
	if ev.AllDay {
		start, err := parseDate(dtStart.Value, loc)
		if err != nil {
			return Event{}, false
		}
		ev.Start = start
		ev.End = start.AddDate(0, 0, 1)
		if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p != nil {
			if end, err := parseDate(p.Value, loc); err == nil && end.After(start) {
				ev.End = end
			}
		}
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return Event{}, false
		}
		ev.Start = start
		ev.End = start
		if end, err := ve.GetEndAt(); err == nil && end.After(start) {
			ev.End = end
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.RRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseTime(part, loc); err == nil {
				ev.ExDates = append(ev.ExDates, t)
			}
		}
	}
	if p := ve.GetProperty(ical.ComponentProperty("RECURRENCE-ID")); p != nil {
		if t, err := parseTime(p.Value, loc); err == nil {
			ev.Recurrence = &t
		}
	}
	return ev, true
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func parseDate(v string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("20060102", strings.TrimSpace(v), loc)
}

// parseTime handles the three basic DATE / DATE-TIME forms.
func parseTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("ics: empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return parseDate(v, loc)
	}
}
