package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"task-planner/internal/model"
)

var inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)

var weekdayNames = map[string]model.Weekday{
	"sunday":    model.Sunday,
	"monday":    model.Monday,
	"tuesday":   model.Tuesday,
	"wednesday": model.Wednesday,
	"thursday":  model.Thursday,
	"friday":    model.Friday,
	"saturday":  model.Saturday,
}

// Resolve converts a relative day expression into the start of that day.
// The base is the reference point (usually now).
//
// Supported: today, tomorrow, yesterday, day after tomorrow,
// "in N days|weeks|months" and "next <weekday>".
func (c *Calendar) Resolve(relative string, base time.Time) (time.Time, error) {
	relative = strings.Join(strings.Fields(strings.ToLower(relative)), " ")
	relative = strings.TrimPrefix(relative, "the ")

	switch relative {
	case "today", "tonight":
		return c.StartOfDay(base), nil
	case "tomorrow", "tmrw", "tmr":
		return c.StartOfDay(c.AddUnits(base, 1, Day)), nil
	case "yesterday":
		return c.StartOfDay(c.AddUnits(base, -1, Day)), nil
	case "day after tomorrow":
		return c.StartOfDay(c.AddUnits(base, 2, Day)), nil
	}

	if strings.HasPrefix(relative, "in ") {
		return c.resolveInDuration(relative, base)
	}

	if strings.HasPrefix(relative, "next ") {
		dayName := strings.TrimPrefix(relative, "next ")
		wd, ok := weekdayNames[dayName]
		if !ok {
			return base, fmt.Errorf("unknown weekday: %q", dayName)
		}
		return c.NextWeekday(base, wd), nil
	}

	return base, fmt.Errorf("unsupported relative date: %q", relative)
}

func (c *Calendar) resolveInDuration(relative string, base time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return base, fmt.Errorf("invalid duration format: %q", relative)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return c.StartOfDay(c.AddUnits(base, amount, Day)), nil
	case strings.HasPrefix(unit, "week"):
		return c.StartOfDay(c.AddUnits(base, amount, Week)), nil
	case strings.HasPrefix(unit, "month"):
		return c.StartOfDay(c.AddUnits(base, amount, Month)), nil
	}

	return base, fmt.Errorf("unknown time unit: %q", unit)
}
