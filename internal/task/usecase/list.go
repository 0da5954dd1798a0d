package usecase

import (
	"context"
	"fmt"

	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/internal/task/repository"
	"task-planner/internal/timeline"
)

// List returns the tasks matching input.
func (uc *implUseCase) List(ctx context.Context, input task.ListInput) (task.ListOutput, error) {
	if input.From != nil && input.To != nil && input.To.Before(*input.From) {
		return task.ListOutput{}, task.ErrInvalidRange
	}

	tasks, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{
		ParentID:         input.ParentID,
		TemplatesOnly:    input.TemplatesOnly,
		FloatingOnly:     input.FloatingOnly,
		ExcludeCompleted: input.ExcludeCompleted,
		From:             input.From,
		To:               input.To,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListTasks: %v", err)
		return task.ListOutput{}, fmt.Errorf("list tasks: %w", err)
	}
	return task.ListOutput{Tasks: tasks, Total: len(tasks)}, nil
}

// Timeline merges scheduled tasks with external calendar events over
// [From, To]. An unset window means today. Calendar failures only log.
func (uc *implUseCase) Timeline(ctx context.Context, input task.TimelineInput) (task.TimelineOutput, error) {
	from := input.From
	if from.IsZero() {
		from = uc.cal.StartOfDay(uc.clock.Now())
	}
	to := input.To
	if to.IsZero() {
		to = uc.cal.EndOfDay(from)
	}
	if to.Before(from) {
		return task.TimelineOutput{}, task.ErrInvalidRange
	}

	// Dates are stored at start of day, so widen the lower bound to catch
	// tasks whose time of day falls inside the window.
	dayFrom := uc.cal.StartOfDay(from)
	scheduled, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{From: &dayFrom, To: &to})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Timeline ListTasks: %v", err)
		return task.TimelineOutput{}, fmt.Errorf("list scheduled tasks: %w", err)
	}
	floating, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{FloatingOnly: true, ExcludeCompleted: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Timeline ListTasks floating: %v", err)
		return task.TimelineOutput{}, fmt.Errorf("list floating tasks: %w", err)
	}

	var events []model.CalendarEvent
	if uc.events != nil {
		events, err = uc.events.ListEvents(ctx, from, to)
		if err != nil {
			uc.l.Warnf(ctx, "uc.Timeline ListEvents: %v", err)
			events = nil
		}
	}

	return task.TimelineOutput{
		From:     from,
		To:       to,
		Items:    timeline.Build(scheduled, events, from, to, uc.settings.DefaultDuration),
		Floating: timeline.Floating(floating),
	}, nil
}

// Overdue lists incomplete tasks whose start has passed. A date-only task is
// overdue once its day is over.
func (uc *implUseCase) Overdue(ctx context.Context) ([]model.Task, error) {
	now := uc.clock.Now()
	today := uc.cal.StartOfDay(now)

	tasks, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{ExcludeCompleted: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Overdue ListTasks: %v", err)
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.IsTemplate() {
			continue
		}
		switch {
		case t.ScheduledTime != nil:
			if t.ScheduledTime.Before(now) {
				out = append(out, t)
			}
		case t.ScheduledDate != nil:
			if t.ScheduledDate.Before(today) {
				out = append(out, t)
			}
		}
	}
	return out, nil
}
