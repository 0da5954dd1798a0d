package ics

import (
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"
)

const productID = "-//task-planner//planner feed//EN"

// ExportItem is one VEVENT of an exported feed.
type ExportItem struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	// RRule is the rule body without the "RRULE:" prefix, empty for single events.
	RRule     string
	Priority  int
	Completed bool
	Created   time.Time
	Modified  time.Time
}

// Export renders items as an iCalendar document.
func Export(name string, items []ExportItem, stamp time.Time) []byte {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	for _, it := range items {
		ev := cal.AddEvent(it.UID)
		ev.SetSummary(it.Summary)
		ev.SetDtStampTime(stamp.UTC())
		if !it.Created.IsZero() {
			ev.SetCreatedTime(it.Created.UTC())
		}
		if !it.Modified.IsZero() {
			ev.SetModifiedAt(it.Modified.UTC())
		}
		if it.Description != "" {
			ev.SetDescription(it.Description)
		}

		if it.AllDay {
			ev.SetAllDayStartAt(it.Start)
			end := it.End
			if !end.After(it.Start) {
				end = it.Start.AddDate(0, 0, 1)
			}
			ev.SetAllDayEndAt(end)
		} else {
			ev.SetStartAt(it.Start.UTC())
			end := it.End
			if end.Before(it.Start) {
				end = it.Start
			}
			ev.SetEndAt(end.UTC())
		}

		if it.RRule != "" {
			ev.AddRrule(it.RRule)
		}
		if it.Priority > 0 {
			ev.SetProperty(ical.ComponentPropertyPriority, strconv.Itoa(icalPriority(it.Priority)))
		}
		if it.Completed {
			ev.SetProperty(ical.ComponentPropertyStatus, "COMPLETED")
		}
	}

	return []byte(cal.Serialize())
}

// icalPriority maps high/medium/low onto the RFC 5545 1..9 scale.
func icalPriority(p int) int {
	switch {
	case p >= 3:
		return 1
	case p == 2:
		return 5
	default:
		return 9
	}
}
