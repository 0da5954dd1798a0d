package model

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is the unit a RecurrenceRule repeats in.
type Frequency string

const (
	FrequencyDaily          Frequency = "daily"
	FrequencyWeekly         Frequency = "weekly"
	FrequencyMonthly        Frequency = "monthly"
	FrequencyYearly         Frequency = "yearly"
	FrequencyCustomInterval Frequency = "custom"
)

// ParseFrequency maps a user supplied string onto a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencyDaily:
		return FrequencyDaily, nil
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	case FrequencyYearly:
		return FrequencyYearly, nil
	case FrequencyCustomInterval:
		return FrequencyCustomInterval, nil
	}
	return "", fmt.Errorf("unknown frequency %q", s)
}

// RecurrenceRule describes how a template repeats.
//
// Only the fields relevant to Frequency are read: DaysOfWeek for Weekly,
// DayOfMonth for Monthly. Anything else is ignored rather than rejected.
type RecurrenceRule struct {
	Frequency  Frequency
	Interval   int       // >= 1, treated as 1 when lower
	DaysOfWeek []Weekday // Weekly only
	DayOfMonth *int      // Monthly only, 1-31

	StartDate time.Time  // inclusive
	EndDate   *time.Time // exclusive

	// OccurrenceCount caps the lifetime number of occurrences counted from StartDate.
	OccurrenceCount *int
}

// Step returns the interval, never less than 1.
func (r RecurrenceRule) Step() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}

// HasDay reports whether wd is one of the rule's weekdays.
func (r RecurrenceRule) HasDay(wd Weekday) bool {
	for _, d := range r.DaysOfWeek {
		if d == wd {
			return true
		}
	}
	return false
}
