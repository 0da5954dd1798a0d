package intake

import (
	"regexp"
	"strings"
	"unicode"

	"task-planner/internal/model"
)

// dayPattern matches one weekday name or its common abbreviation.
const dayPattern = `(?:sun(?:day)?|mon(?:day)?|tue(?:s(?:day)?)?|wed(?:nesday)?|thu(?:r(?:s(?:day)?)?)?|fri(?:day)?|sat(?:urday)?)s?`

var dayRe = regexp.MustCompile(`(?i)\b` + dayPattern + `\b`)

var dayPrefixes = map[string]model.Weekday{
	"sun": model.Sunday,
	"mon": model.Monday,
	"tue": model.Tuesday,
	"wed": model.Wednesday,
	"thu": model.Thursday,
	"fri": model.Friday,
	"sat": model.Saturday,
}

// weekdayOf maps a matched day token to its Weekday.
func weekdayOf(token string) (model.Weekday, bool) {
	token = strings.ToLower(token)
	if len(token) < 3 {
		return 0, false
	}
	wd, ok := dayPrefixes[token[:3]]
	return wd, ok
}

// weekdaysIn returns every weekday named in s, sorted and without duplicates.
func weekdaysIn(s string) []model.Weekday {
	tokens := dayRe.FindAllString(s, -1)
	days := make([]model.Weekday, 0, len(tokens))
	for _, tok := range tokens {
		if wd, ok := weekdayOf(tok); ok {
			days = append(days, wd)
		}
	}
	return model.SortedWeekdays(days)
}

// wordLikeDays are abbreviations that are also ordinary words.
var wordLikeDays = map[string]bool{"sun": true, "sat": true, "wed": true}

// standaloneDay reports whether the day token text[start:end], found without
// a "next", "this" or "on" in front, names a day. Word-like abbreviations only
// count when capitalized and not the first word.
func standaloneDay(text string, start, end int) bool {
	tok := text[start:end]
	if !wordLikeDays[strings.ToLower(tok)] {
		return true
	}
	return unicode.IsUpper(rune(tok[0])) && strings.IndexFunc(text[:start], isWordRune) >= 0
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
