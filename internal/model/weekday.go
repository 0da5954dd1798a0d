package model

import (
	"sort"
	"time"
)

// Weekday numbers days 1=Sunday through 7=Saturday.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekdayFromTime converts a time.Weekday (0=Sunday) into a Weekday.
func WeekdayFromTime(d time.Weekday) Weekday {
	return Weekday(int(d) + 1)
}

// Time converts back to time.Weekday.
func (w Weekday) Time() time.Weekday {
	return time.Weekday(int(w) - 1)
}

// Valid reports whether w is within 1..7.
func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Saturday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return "Weekday(?)"
	}
	return w.Time().String()
}

// Workdays is Monday through Friday.
func Workdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
}

// Weekend is Saturday and Sunday.
func Weekend() []Weekday {
	return []Weekday{Sunday, Saturday}
}

// SortedWeekdays returns a sorted copy of days without duplicates or invalid values.
func SortedWeekdays(days []Weekday) []Weekday {
	seen := make(map[Weekday]bool, len(days))
	out := make([]Weekday, 0, len(days))
	for _, d := range days {
		if !d.Valid() || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
