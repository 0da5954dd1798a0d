package usecase

import (
	"context"
	"fmt"
	"time"

	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/internal/task/repository"
	"task-planner/pkg/datemath"
)

// Materialize creates the missing instances of one template over
// [rangeStart, rangeStart + windowDays].
func (uc *implUseCase) Materialize(ctx context.Context, templateID string, rangeStart time.Time, windowDays int) (int, error) {
	if windowDays < 0 {
		return 0, task.ErrInvalidRange
	}

	var created int
	err := uc.writer.Do(ctx, func(ctx context.Context) error {
		tpl, err := uc.repo.GetTask(ctx, templateID)
		if err != nil {
			return fmt.Errorf("get template: %w", err)
		}
		if tpl.ID == "" {
			return task.ErrTaskNotFound
		}
		if !tpl.IsTemplate() {
			return task.ErrNotATemplate
		}
		created, err = uc.materialize(ctx, tpl, rangeStart, windowDays)
		return err
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Materialize template=%s: %v", templateID, err)
		return created, err
	}
	return created, nil
}

// MaterializeAll refreshes the rolling window of every template starting today.
// A failing template is logged and counted, the rest still run.
func (uc *implUseCase) MaterializeAll(ctx context.Context) (task.MaterializeAllOutput, error) {
	templates, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{TemplatesOnly: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.MaterializeAll ListTasks: %v", err)
		return task.MaterializeAllOutput{}, fmt.Errorf("list templates: %w", err)
	}

	out := task.MaterializeAllOutput{Templates: len(templates)}
	now := uc.clock.Now()
	for _, tpl := range templates {
		n, err := uc.Materialize(ctx, tpl.ID, now, uc.settings.WindowDays)
		out.Created += n
		if err != nil {
			out.Failed++
		}
	}

	uc.l.Infof(ctx, "MaterializeAll: templates=%d created=%d failed=%d", out.Templates, out.Created, out.Failed)
	return out, nil
}

// materialize must run on the writer.
func (uc *implUseCase) materialize(ctx context.Context, tpl model.Task, rangeStart time.Time, windowDays int) (int, error) {
	from := uc.cal.StartOfDay(rangeStart)
	to := uc.cal.AddUnits(from, windowDays, datemath.Day)

	created := 0
	for _, day := range uc.engine.Occurrences(*tpl.Rule, from, to) {
		existing, err := uc.repo.FindInstance(ctx, repository.FindInstanceOptions{ParentID: tpl.ID, Date: day})
		if err != nil {
			return created, fmt.Errorf("find instance on %s: %w", uc.cal.DayKey(day), err)
		}
		if existing.ID != "" {
			continue
		}

		_, err = uc.repo.CreateInstance(ctx, repository.CreateInstanceOptions{
			ParentID: tpl.ID,
			Fields:   uc.instanceFields(tpl, day),
			Date:     day,
		})
		if err != nil {
			return created, fmt.Errorf("create instance on %s: %w", uc.cal.DayKey(day), err)
		}
		created++
	}

	if created > 0 {
		uc.l.Debugf(ctx, "materialize: template=%s window=%s..%s created=%d", tpl.ID, uc.cal.DayKey(from), uc.cal.DayKey(to), created)
	}
	return created, nil
}

func (uc *implUseCase) instanceFields(tpl model.Task, day time.Time) model.TaskFields {
	f := model.TaskFields{
		Title:         tpl.Title,
		Notes:         tpl.Notes,
		ScheduledDate: &day,
		Duration:      tpl.Duration,
		Priority:      tpl.Priority,
		Color:         tpl.Color,
	}
	if tpl.ScheduledTime != nil {
		tm := tpl.ScheduledTime.In(uc.cal.Location())
		at := uc.cal.AtTime(day, tm.Hour(), tm.Minute())
		f.ScheduledTime = &at
	}
	return f
}
