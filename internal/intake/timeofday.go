package intake

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"task-planner/internal/model"
	"task-planner/pkg/datemath"
)

var (
	relativeTimeRe  = regexp.MustCompile(`(?i)\b(?:in|after)\s+(\d+|an?|one)\s*(minutes?|mins?|m|hours?|hrs?|h)\b`)
	clockMinutesRe  = regexp.MustCompile(`(?i)(?:\bat\s+|@\s*)?\b(\d{1,2}):(\d{2})(?:\s*(am|pm))?\b`)
	clockMeridiemRe = regexp.MustCompile(`(?i)(?:\bat\s+|@\s*)?\b(\d{1,2})\s*(am|pm)\b`)
	clockBareRe     = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})\b`)
)

// TimePass extracts at most one time of day. Alternatives are tried in order:
// relative offset from now, clock time, named period. A date already on the
// draft keeps its day; otherwise the time is placed on today.
func TimePass(cal *datemath.Calendar, now time.Time, cfg Config) Pass {
	periodRe := periodPattern(cfg)

	return func(text string, draft model.ParsedDraft) (string, model.ParsedDraft) {
		if rest, at, ok := matchRelativeTime(text, now); ok {
			return rest, withTime(cal, draft, at, false)
		}

		for _, alt := range []func(string) (string, int, int, bool){
			matchClockMinutes,
			matchClockMeridiem,
			matchClockBare,
		} {
			if rest, h, m, ok := alt(text); ok {
				return rest, withTime(cal, draft, cal.AtTime(now, h, m), true)
			}
		}

		if periodRe != nil {
			if m := periodRe.FindStringSubmatchIndex(text); m != nil {
				if p, ok := cfg.period(text[m[2]:m[3]]); ok {
					return consume(text, m[0], m[1]), withTime(cal, draft, cal.AtTime(now, p.Hour, p.Minute), true)
				}
			}
		}

		return text, draft
	}
}

// withTime stores at on the draft. When keepDate is set and the draft already
// has a date, only the clock part of at is used.
func withTime(cal *datemath.Calendar, draft model.ParsedDraft, at time.Time, keepDate bool) model.ParsedDraft {
	if keepDate && draft.ScheduledDate != nil {
		at = cal.AtTime(*draft.ScheduledDate, at.Hour(), at.Minute())
	}
	day := cal.StartOfDay(at)
	draft.ScheduledTime = &at
	draft.ScheduledDate = &day
	return draft
}

func matchRelativeTime(text string, now time.Time) (string, time.Time, bool) {
	m := relativeTimeRe.FindStringSubmatchIndex(text)
	if m == nil {
		return text, time.Time{}, false
	}

	amount := 1
	if n, err := strconv.Atoi(text[m[2]:m[3]]); err == nil {
		amount = n
	}

	unit := time.Minute
	if strings.HasPrefix(strings.ToLower(text[m[4]:m[5]]), "h") {
		unit = time.Hour
	}

	at := now.Add(time.Duration(amount) * unit).Truncate(time.Minute)
	return consume(text, m[0], m[1]), at, true
}

func matchClockMinutes(text string) (string, int, int, bool) {
	for _, m := range clockMinutesRe.FindAllStringSubmatchIndex(text, -1) {
		hour, _ := strconv.Atoi(text[m[2]:m[3]])
		minute, _ := strconv.Atoi(text[m[4]:m[5]])
		meridiem := ""
		if m[6] >= 0 {
			meridiem = text[m[6]:m[7]]
		}
		if h, ok := adjustHour(hour, meridiem); ok && minute < 60 {
			return consume(text, m[0], m[1]), h, minute, true
		}
	}
	return text, 0, 0, false
}

func matchClockMeridiem(text string) (string, int, int, bool) {
	for _, m := range clockMeridiemRe.FindAllStringSubmatchIndex(text, -1) {
		hour, _ := strconv.Atoi(text[m[2]:m[3]])
		if h, ok := adjustHour(hour, text[m[4]:m[5]]); ok {
			return consume(text, m[0], m[1]), h, 0, true
		}
	}
	return text, 0, 0, false
}

func matchClockBare(text string) (string, int, int, bool) {
	for _, m := range clockBareRe.FindAllStringSubmatchIndex(text, -1) {
		hour, _ := strconv.Atoi(text[m[2]:m[3]])
		if h, ok := adjustHour(hour, ""); ok {
			return consume(text, m[0], m[1]), h, 0, true
		}
	}
	return text, 0, 0, false
}

// adjustHour applies am/pm: pm adds 12 below noon, 12am is midnight.
func adjustHour(hour int, meridiem string) (int, bool) {
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return 0, false
		}
	}
	return hour, true
}

// periodPattern builds the named-period matcher, longest names first.
func periodPattern(cfg Config) *regexp.Regexp {
	names := make([]string, 0, len(cfg.Periods))
	for _, p := range cfg.Periods {
		if p.Name != "" {
			names = append(names, regexp.QuoteMeta(strings.ToLower(p.Name)))
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	return regexp.MustCompile(`(?i)\b(?:(?:in\s+the|this|at)\s+)?(` + strings.Join(names, "|") + `)\b`)
}
