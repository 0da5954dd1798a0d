package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"task-planner/internal/model"
)

var toRRuleWeekday = map[model.Weekday]rrule.Weekday{
	model.Sunday:    rrule.SU,
	model.Monday:    rrule.MO,
	model.Tuesday:   rrule.TU,
	model.Wednesday: rrule.WE,
	model.Thursday:  rrule.TH,
	model.Friday:    rrule.FR,
	model.Saturday:  rrule.SA,
}

// ToRRule renders rule as an RFC 5545 RRULE value (without the "RRULE:" prefix).
func ToRRule(rule model.RecurrenceRule) (string, error) {
	opt := rrule.ROption{
		Interval: rule.Step(),
		Dtstart:  rule.StartDate,
	}

	switch rule.Frequency {
	case model.FrequencyDaily, model.FrequencyCustomInterval:
		opt.Freq = rrule.DAILY
	case model.FrequencyWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range model.SortedWeekdays(rule.DaysOfWeek) {
			opt.Byweekday = append(opt.Byweekday, toRRuleWeekday[d])
		}
	case model.FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
		if rule.DayOfMonth != nil {
			opt.Bymonthday = []int{*rule.DayOfMonth}
		}
	case model.FrequencyYearly:
		opt.Freq = rrule.YEARLY
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFrequency, rule.Frequency)
	}

	if rule.OccurrenceCount != nil {
		opt.Count = *rule.OccurrenceCount
	}
	if rule.EndDate != nil {
		// UNTIL is inclusive, EndDate is not.
		opt.Until = rule.EndDate.Add(-time.Second)
	}

	if _, err := rrule.NewRRule(opt); err != nil {
		return "", fmt.Errorf("recurrence.ToRRule: %w", err)
	}
	return opt.RRuleString(), nil
}

// FromRRule parses an RRULE value into a rule anchored at start.
// Parts the model cannot express (BYSETPOS, BYHOUR, ...) are dropped.
func FromRRule(value string, start time.Time) (model.RecurrenceRule, error) {
	opt, err := rrule.StrToROption(value)
	if err != nil {
		return model.RecurrenceRule{}, fmt.Errorf("recurrence.FromRRule: %w", err)
	}

	rule := model.RecurrenceRule{
		Interval:  opt.Interval,
		StartDate: start,
	}
	if rule.Interval < 1 {
		rule.Interval = 1
	}
	if !opt.Dtstart.IsZero() {
		rule.StartDate = opt.Dtstart
	}

	switch opt.Freq {
	case rrule.DAILY:
		rule.Frequency = model.FrequencyDaily
	case rrule.WEEKLY:
		rule.Frequency = model.FrequencyWeekly
		days := make([]model.Weekday, 0, len(opt.Byweekday))
		for _, wd := range opt.Byweekday {
			days = append(days, fromRRuleDay(wd.Day()))
		}
		rule.DaysOfWeek = model.SortedWeekdays(days)
	case rrule.MONTHLY:
		rule.Frequency = model.FrequencyMonthly
		for _, d := range opt.Bymonthday {
			if d >= 1 && d <= 31 {
				dom := d
				rule.DayOfMonth = &dom
				break
			}
		}
	case rrule.YEARLY:
		rule.Frequency = model.FrequencyYearly
	default:
		return model.RecurrenceRule{}, fmt.Errorf("%w: %v", ErrUnsupportedFrequency, opt.Freq)
	}

	if opt.Count > 0 {
		count := opt.Count
		rule.OccurrenceCount = &count
	}
	if !opt.Until.IsZero() {
		end := opt.Until.Add(time.Second)
		rule.EndDate = &end
	}

	return rule, nil
}

// fromRRuleDay maps rrule's Monday-based index (MO=0 ... SU=6) to a Weekday.
func fromRRuleDay(n int) model.Weekday {
	return model.Weekday((n+1)%7 + 1)
}
