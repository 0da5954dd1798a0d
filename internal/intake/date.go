package intake

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"

	"task-planner/internal/model"
	"task-planner/pkg/datemath"
)

var (
	relativeDayRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:the\s+)?day\s+after\s+tomorrow\b`),
		regexp.MustCompile(`(?i)\b(?:today|tonight)\b`),
		regexp.MustCompile(`(?i)\b(?:tomorrow|tmrw|tmr)\b`),
		regexp.MustCompile(`(?i)\bin\s+(?:\d+|an?|one)\s+(?:days?|weeks?)\b`),
	}

	weekdayDateRe = regexp.MustCompile(`(?i)\b(?:(?:next|this|on)\s+)?(` + dayPattern + `)\b`)

	digitRe = regexp.MustCompile(`\d`)
	yearRe  = regexp.MustCompile(`\b\d{4}\b`)
	wordNum = strings.NewReplacer(" an ", " 1 ", " a ", " 1 ", " one ", " 1 ")
)

// DatePass extracts at most one calendar day. Alternatives are tried in
// order: relative day, weekday name, explicit month and day. A bare weekday
// is the next one after today, never today itself. A time already on the
// draft is moved onto the resolved day.
func DatePass(cal *datemath.Calendar, now time.Time, dates *when.Parser) Pass {
	return func(text string, draft model.ParsedDraft) (string, model.ParsedDraft) {
		if rest, day, ok := matchRelativeDay(cal, text, now); ok {
			return rest, withDate(cal, draft, day)
		}
		if rest, day, ok := matchWeekdayDate(cal, text, now); ok {
			return rest, withDate(cal, draft, day)
		}
		if dates != nil {
			if rest, day, ok := matchExplicitDate(cal, dates, text, now); ok {
				return rest, withDate(cal, draft, day)
			}
		}
		return text, draft
	}
}

func withDate(cal *datemath.Calendar, draft model.ParsedDraft, day time.Time) model.ParsedDraft {
	day = cal.StartOfDay(day)
	draft.ScheduledDate = &day
	if draft.ScheduledTime != nil {
		at := cal.AtTime(day, draft.ScheduledTime.Hour(), draft.ScheduledTime.Minute())
		draft.ScheduledTime = &at
	}
	return draft
}

func matchRelativeDay(cal *datemath.Calendar, text string, now time.Time) (string, time.Time, bool) {
	for _, re := range relativeDayRes {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		phrase := strings.TrimSpace(wordNum.Replace(" " + strings.ToLower(text[loc[0]:loc[1]]) + " "))
		day, err := cal.Resolve(phrase, now)
		if err != nil {
			continue
		}
		return consume(text, loc[0], loc[1]), day, true
	}
	return text, time.Time{}, false
}

func matchWeekdayDate(cal *datemath.Calendar, text string, now time.Time) (string, time.Time, bool) {
	for _, m := range weekdayDateRe.FindAllStringSubmatchIndex(text, -1) {
		hasModifier := m[0] < m[2]
		if !hasModifier && !standaloneDay(text, m[2], m[3]) {
			continue
		}
		wd, ok := weekdayOf(text[m[2]:m[3]])
		if !ok {
			continue
		}
		return consume(text, m[0], m[1]), cal.NextWeekday(now, wd), true
	}
	return text, time.Time{}, false
}

// matchExplicitDate handles "Nov 3" or "3/11/2026". Matches without a digit
// are ignored so a month name alone ("may") stays in the title.
func matchExplicitDate(cal *datemath.Calendar, dates *when.Parser, text string, now time.Time) (string, time.Time, bool) {
	res, err := dates.Parse(text, now)
	if err != nil || res == nil || !digitRe.MatchString(res.Text) {
		return text, time.Time{}, false
	}

	t := res.Time.In(cal.Location())
	day, ok := cal.DateFromYMD(t.Year(), t.Month(), t.Day())
	if !ok {
		return text, time.Time{}, false
	}
	if day.Before(cal.StartOfDay(now)) && !yearRe.MatchString(res.Text) {
		day = cal.AddUnits(day, 1, datemath.Year)
	}

	end := res.Index + len(res.Text)
	if res.Index < 0 || end > len(text) {
		return text, time.Time{}, false
	}
	return consume(text, res.Index, end), day, true
}
