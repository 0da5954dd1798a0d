package model

import "time"

// CalendarEvent is a read-only event pulled from an external calendar.
type CalendarEvent struct {
	SourceID string
	UID      string
	Title    string
	Location string
	AllDay   bool
	Start    time.Time
	End      time.Time
	Color    string
}
