package usecase

import (
	"context"
	"fmt"
	"strings"

	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/internal/task/repository"
)

// Preview parses text without storing anything.
func (uc *implUseCase) Preview(ctx context.Context, text string) (model.ParsedDraft, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ParsedDraft{}, task.ErrEmptyInput
	}
	return uc.pipeline.Parse(text), nil
}

// CreateFromText routes the parsed draft to the one-off or the recurring path.
func (uc *implUseCase) CreateFromText(ctx context.Context, input task.CreateFromTextInput) (task.CreateOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return task.CreateOutput{}, task.ErrEmptyInput
	}

	draft := uc.pipeline.Parse(text)
	uc.l.Infof(ctx, "CreateFromText: title=%q recurring=%t floating=%t", draft.Title, draft.IsRecurring, draft.IsFloating)

	fields := model.TaskFields{
		Title:         draft.Title,
		Notes:         input.Notes,
		ScheduledDate: draft.ScheduledDate,
		ScheduledTime: draft.ScheduledTime,
		Duration:      input.Duration,
		IsFloating:    draft.IsFloating,
		Priority:      input.Priority,
		Color:         input.Color,
	}

	var (
		out task.CreateOutput
		err error
	)
	if draft.IsRecurring {
		start := uc.cal.StartOfDay(uc.clock.Now())
		if draft.ScheduledDate != nil {
			start = *draft.ScheduledDate
		}
		out, err = uc.CreateRecurring(ctx, task.CreateRecurringInput{
			Fields: fields,
			Rule:   *draft.Rule(start),
		})
	} else {
		out, err = uc.CreateOneOff(ctx, task.CreateOneOffInput{Fields: fields})
	}
	if err != nil {
		return task.CreateOutput{}, err
	}
	out.Draft = &draft
	return out, nil
}

// CreateOneOff stores a single task.
func (uc *implUseCase) CreateOneOff(ctx context.Context, input task.CreateOneOffInput) (task.CreateOutput, error) {
	fields, err := uc.normalizeFields(input.Fields)
	if err != nil {
		return task.CreateOutput{}, err
	}

	var created model.Task
	err = uc.writer.Do(ctx, func(ctx context.Context) error {
		t, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{Fields: fields})
		if err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.CreateOneOff CreateTask: %v", err)
		return task.CreateOutput{}, fmt.Errorf("create task: %w", err)
	}
	return task.CreateOutput{Task: created}, nil
}

// CreateRecurring stores a template and materializes its first window in
// the same writer job.
func (uc *implUseCase) CreateRecurring(ctx context.Context, input task.CreateRecurringInput) (task.CreateOutput, error) {
	fields, err := uc.normalizeFields(input.Fields)
	if err != nil {
		return task.CreateOutput{}, err
	}
	rule, err := uc.normalizeRule(input.Rule, fields)
	if err != nil {
		return task.CreateOutput{}, err
	}

	// The template has no date of its own; it keeps only the time of day.
	fields.ScheduledDate = nil
	fields.IsFloating = false
	if fields.ScheduledTime != nil {
		at := uc.cal.AtTime(rule.StartDate, fields.ScheduledTime.Hour(), fields.ScheduledTime.Minute())
		fields.ScheduledTime = &at
	}

	var out task.CreateOutput
	err = uc.writer.Do(ctx, func(ctx context.Context) error {
		tpl, err := uc.repo.CreateTemplate(ctx, repository.CreateTemplateOptions{Fields: fields, Rule: rule})
		if err != nil {
			return fmt.Errorf("create template: %w", err)
		}
		out.Task = tpl

		n, err := uc.materialize(ctx, tpl, uc.clock.Now(), uc.settings.WindowDays)
		out.Materialized = n
		return err
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.CreateRecurring: %v", err)
		return task.CreateOutput{}, err
	}

	uc.l.Infof(ctx, "CreateRecurring: template=%s frequency=%s materialized=%d", out.Task.ID, rule.Frequency, out.Materialized)
	return out, nil
}

// normalizeFields trims the title and puts date and time on one calendar day.
func (uc *implUseCase) normalizeFields(f model.TaskFields) (model.TaskFields, error) {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return model.TaskFields{}, task.ErrEmptyTitle
	}

	if f.ScheduledTime != nil {
		tm := f.ScheduledTime.In(uc.cal.Location())
		day := uc.cal.StartOfDay(tm)
		if f.ScheduledDate != nil {
			day = uc.cal.StartOfDay(*f.ScheduledDate)
		}
		at := uc.cal.AtTime(day, tm.Hour(), tm.Minute())
		f.ScheduledDate = &day
		f.ScheduledTime = &at
	} else if f.ScheduledDate != nil {
		day := uc.cal.StartOfDay(*f.ScheduledDate)
		f.ScheduledDate = &day
	}

	f.IsFloating = f.ScheduledDate == nil
	if f.Duration < 0 {
		f.Duration = 0
	}
	return f, nil
}

// normalizeRule checks the fields the frequency reads and fills defaults.
// Fields the frequency does not read are kept but never validated.
func (uc *implUseCase) normalizeRule(rule model.RecurrenceRule, f model.TaskFields) (model.RecurrenceRule, error) {
	freq, err := model.ParseFrequency(string(rule.Frequency))
	if err != nil {
		return model.RecurrenceRule{}, fmt.Errorf("%w: %v", task.ErrInvalidRule, err)
	}
	rule.Frequency = freq
	rule.Interval = rule.Step()

	switch freq {
	case model.FrequencyWeekly:
		for _, d := range rule.DaysOfWeek {
			if !d.Valid() {
				return model.RecurrenceRule{}, fmt.Errorf("%w: weekday %d", task.ErrInvalidRule, d)
			}
		}
		rule.DaysOfWeek = model.SortedWeekdays(rule.DaysOfWeek)
	case model.FrequencyMonthly:
		if rule.DayOfMonth != nil && (*rule.DayOfMonth < 1 || *rule.DayOfMonth > 31) {
			return model.RecurrenceRule{}, fmt.Errorf("%w: day of month %d", task.ErrInvalidRule, *rule.DayOfMonth)
		}
	}

	if rule.OccurrenceCount != nil && *rule.OccurrenceCount < 0 {
		return model.RecurrenceRule{}, fmt.Errorf("%w: negative occurrence count", task.ErrInvalidRule)
	}

	switch {
	case !rule.StartDate.IsZero():
		rule.StartDate = uc.cal.StartOfDay(rule.StartDate)
	case f.ScheduledDate != nil:
		rule.StartDate = *f.ScheduledDate
	default:
		rule.StartDate = uc.cal.StartOfDay(uc.clock.Now())
	}

	if rule.EndDate != nil {
		end := *rule.EndDate
		if end.Before(rule.StartDate) {
			return model.RecurrenceRule{}, fmt.Errorf("%w: end date before start date", task.ErrInvalidRule)
		}
		rule.EndDate = &end
	}
	return rule, nil
}
