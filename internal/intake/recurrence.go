package intake

import (
	"regexp"
	"strconv"
	"strings"

	"task-planner/internal/model"
)

const ordinalPattern = `(\d{1,2})(?:st|nd|rd|th)?`

var (
	// "every Mon Wed Fri", "Mon, Wed & Fri", "every other week on Tuesday".
	weekdayListRe = regexp.MustCompile(`(?i)\b(?:(every|each)\s+(?:(?:(\d+|other)\s+)?weeks?\s+)?(?:on\s+)?)?(` +
		dayPattern + `(?:(?:\s*[,&/]\s*|\s+and\s+|\s+)` + dayPattern + `)*)\b`)

	dayOfMonthRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:on\s+)?(?:the\s+)?` + ordinalPattern + `\s+(?:day\s+)?(?:of\s+)?(?:every|each)\s+month\b`),
		regexp.MustCompile(`(?i)\b(?:every|each)\s+month\s+(?:on\s+)?(?:the\s+)?` + ordinalPattern + `\b`),
		regexp.MustCompile(`(?i)\bmonthly\s+on\s+(?:the\s+)?` + ordinalPattern + `\b`),
	}

	intervalRe = regexp.MustCompile(`(?i)\b(?:every|each)\s+(\d+|other)\s+(day|week|month|year)s?\b`)
)

type recurrenceKeyword struct {
	re        *regexp.Regexp
	frequency model.Frequency
	days      []model.Weekday
}

var recurrenceKeywords = []recurrenceKeyword{
	{re: regexp.MustCompile(`(?i)\b(?:every\s*day|each\s+day|daily)\b`), frequency: model.FrequencyDaily},
	{re: regexp.MustCompile(`(?i)\b(?:(?:every|each)\s+weekday|weekdays)\b`), frequency: model.FrequencyWeekly, days: model.Workdays()},
	{re: regexp.MustCompile(`(?i)\b(?:(?:every|each)\s+weekend|weekends)\b`), frequency: model.FrequencyWeekly, days: model.Weekend()},
	{re: regexp.MustCompile(`(?i)\b(?:(?:every|each)\s+week|weekly)\b`), frequency: model.FrequencyWeekly},
	{re: regexp.MustCompile(`(?i)\b(?:(?:every|each)\s+month|monthly)\b`), frequency: model.FrequencyMonthly},
	{re: regexp.MustCompile(`(?i)\b(?:(?:every|each)\s+year|yearly|annually)\b`), frequency: model.FrequencyYearly},
}

var intervalUnits = map[string]model.Frequency{
	"day":   model.FrequencyDaily,
	"week":  model.FrequencyWeekly,
	"month": model.FrequencyMonthly,
	"year":  model.FrequencyYearly,
}

// RecurrencePass extracts at most one recurrence. Alternatives are tried in
// order: weekday list, day of month, explicit interval, keyword.
func RecurrencePass() Pass {
	return func(text string, draft model.ParsedDraft) (string, model.ParsedDraft) {
		for _, alt := range []func(string, *model.ParsedDraft) (string, bool){
			matchWeekdayList,
			matchDayOfMonth,
			matchInterval,
			matchRecurrenceKeyword,
		} {
			if rest, ok := alt(text, &draft); ok {
				draft.IsRecurring = true
				if draft.Interval < 1 {
					draft.Interval = 1
				}
				return rest, draft
			}
		}
		return text, draft
	}
}

func matchWeekdayList(text string, draft *model.ParsedDraft) (string, bool) {
	for _, m := range weekdayListRe.FindAllStringSubmatchIndex(text, -1) {
		hasEvery := m[2] >= 0
		days := weekdaysIn(text[m[6]:m[7]])
		if len(days) == 0 || (len(days) < 2 && !hasEvery) {
			continue
		}

		draft.Frequency = model.FrequencyWeekly
		draft.DaysOfWeek = days
		draft.Interval = 1
		if m[4] >= 0 {
			draft.Interval = parseInterval(text[m[4]:m[5]])
		}
		return consume(text, m[0], m[1]), true
	}
	return text, false
}

func matchDayOfMonth(text string, draft *model.ParsedDraft) (string, bool) {
	for _, re := range dayOfMonthRes {
		m := re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		dom, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil || dom < 1 || dom > 31 {
			continue
		}

		draft.Frequency = model.FrequencyMonthly
		draft.DayOfMonth = &dom
		draft.Interval = 1
		return consume(text, m[0], m[1]), true
	}
	return text, false
}

func matchInterval(text string, draft *model.ParsedDraft) (string, bool) {
	m := intervalRe.FindStringSubmatchIndex(text)
	if m == nil {
		return text, false
	}
	freq, ok := intervalUnits[strings.ToLower(text[m[4]:m[5]])]
	if !ok {
		return text, false
	}

	draft.Frequency = freq
	draft.Interval = parseInterval(text[m[2]:m[3]])
	return consume(text, m[0], m[1]), true
}

func matchRecurrenceKeyword(text string, draft *model.ParsedDraft) (string, bool) {
	for _, kw := range recurrenceKeywords {
		loc := kw.re.FindStringIndex(text)
		if loc == nil {
			continue
		}

		draft.Frequency = kw.frequency
		draft.Interval = 1
		if len(kw.days) > 0 {
			draft.DaysOfWeek = model.SortedWeekdays(kw.days)
		}
		return consume(text, loc[0], loc[1]), true
	}
	return text, false
}

// parseInterval reads "3" or "other"; anything unusable means 1.
func parseInterval(s string) int {
	if strings.EqualFold(s, "other") {
		return 2
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
