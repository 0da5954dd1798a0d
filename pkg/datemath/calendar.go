// Package datemath is the calendar arithmetic every date computation goes through.
// Month and year steps follow the host calendar rule of clamping to the last
// valid day of the target month; composing a date from components never
// normalises an impossible day into the next month.
package datemath

import (
	"fmt"
	"time"

	"task-planner/internal/model"
)

// Unit is a calendar step size.
type Unit int

const (
	Day Unit = iota
	Week
	Month
	Year
)

func (u Unit) String() string {
	switch u {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Calendar performs date arithmetic in a single timezone.
type Calendar struct {
	location *time.Location
}

// New creates a Calendar for the given IANA timezone string.
// e.g. "Asia/Ho_Chi_Minh"
func New(timezone string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Calendar{location: loc}, nil
}

// UTC returns a Calendar in UTC.
func UTC() *Calendar {
	return &Calendar{location: time.UTC}
}

// InLocation returns a Calendar for an already loaded location.
func InLocation(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{location: loc}
}

// Location returns the calendar's timezone.
func (c *Calendar) Location() *time.Location {
	return c.location
}

// StartOfDay returns midnight at the start of the given day in the calendar's timezone.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.location)
}

// EndOfDay returns 23:59:59 on the day of t.
func (c *Calendar) EndOfDay(t time.Time) time.Time {
	return c.StartOfDay(t).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// AddUnits moves t by amount units. Day and week steps keep the wall clock;
// month and year steps clamp the day to the target month's length.
func (c *Calendar) AddUnits(t time.Time, amount int, unit Unit) time.Time {
	t = t.In(c.location)
	switch unit {
	case Day:
		return t.AddDate(0, 0, amount)
	case Week:
		return t.AddDate(0, 0, amount*7)
	case Month:
		return c.addMonths(t, amount)
	case Year:
		return c.addMonths(t, amount*12)
	}
	return t
}

func (c *Calendar) addMonths(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)
	day := t.Day()
	if last := c.DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), c.location)
}

// WeekdayOf returns the weekday of t, 1=Sunday through 7=Saturday.
func (c *Calendar) WeekdayOf(t time.Time) model.Weekday {
	return model.WeekdayFromTime(t.In(c.location).Weekday())
}

// DaysInMonth returns the number of days in the given month.
func (c *Calendar) DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, c.location).Day()
}

// DateFromYMD builds the start of the given day. ok is false when the
// components do not name a real date (e.g. February 30).
func (c *Calendar) DateFromYMD(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December {
		return time.Time{}, false
	}
	if day < 1 || day > c.DaysInMonth(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, c.location), true
}

// AtTime returns date's calendar day at hour:minute.
func (c *Calendar) AtTime(date time.Time, hour, minute int) time.Time {
	d := date.In(c.location)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, c.location)
}

// SameDay reports whether a and b fall on the same calendar day.
func (c *Calendar) SameDay(a, b time.Time) bool {
	return c.DayKey(a) == c.DayKey(b)
}

// DayKey formats t's calendar day as YYYY-MM-DD.
func (c *Calendar) DayKey(t time.Time) string {
	return t.In(c.location).Format(DateFormatISO)
}

// NextWeekday returns the start of the next day after from that falls on wd.
// It never returns from's own day: a match today resolves a week ahead.
func (c *Calendar) NextWeekday(from time.Time, wd model.Weekday) time.Time {
	current := c.WeekdayOf(from)
	daysUntil := int(wd - current)
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return c.StartOfDay(from.In(c.location).AddDate(0, 0, daysUntil))
}

// DaysBetween counts whole calendar days from a to b.
func (c *Calendar) DaysBetween(a, b time.Time) int {
	sa, sb := c.StartOfDay(a), c.StartOfDay(b)
	ua := time.Date(sa.Year(), sa.Month(), sa.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(sb.Year(), sb.Month(), sb.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// DateFormatISO is the day key layout.
const DateFormatISO = "2006-01-02"
