package usecase

import (
	"context"
	"fmt"

	"task-planner/internal/model"
	"task-planner/internal/recurrence"
	"task-planner/internal/task/repository"
	"task-planner/pkg/datemath"
	"task-planner/pkg/ics"
)

// ExportCalendar renders scheduled tasks as an iCalendar feed. Templates are
// written once with their RRULE, so their instances are left out.
func (uc *implUseCase) ExportCalendar(ctx context.Context) ([]byte, error) {
	tasks, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ExportCalendar ListTasks: %v", err)
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	items := make([]ics.ExportItem, 0, len(tasks))
	for _, t := range tasks {
		if t.IsInstance() {
			continue
		}
		item, ok := uc.exportItem(ctx, t)
		if ok {
			items = append(items, item)
		}
	}
	return ics.Export(exportCalendarName, items, uc.clock.Now()), nil
}

func (uc *implUseCase) exportItem(ctx context.Context, t model.Task) (ics.ExportItem, bool) {
	item := ics.ExportItem{
		UID:         t.ID + "@task-planner",
		Summary:     t.Title,
		Description: t.Notes,
		Priority:    int(t.Priority),
		Completed:   t.IsCompleted,
		Created:     t.CreatedAt,
		Modified:    t.UpdatedAt,
	}

	switch {
	case t.IsTemplate():
		rrule, err := recurrence.ToRRule(*t.Rule)
		if err != nil {
			uc.l.Warnf(ctx, "uc.ExportCalendar template=%s: %v", t.ID, err)
			return ics.ExportItem{}, false
		}
		item.RRule = rrule
		item.Start = t.Rule.StartDate
		if t.ScheduledTime != nil {
			item.Start = *t.ScheduledTime
		}
	default:
		start, ok := t.Start()
		if !ok {
			return ics.ExportItem{}, false
		}
		item.Start = start
	}

	item.AllDay = t.ScheduledTime == nil
	if item.AllDay {
		item.End = uc.cal.AddUnits(item.Start, 1, datemath.Day)
	} else {
		d := t.Duration
		if d <= 0 {
			d = uc.settings.DefaultDuration
		}
		item.End = item.Start.Add(d)
	}
	return item, true
}
