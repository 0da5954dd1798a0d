package usecase

import "task-planner/internal/model"

func fieldsOf(t model.Task) model.TaskFields {
	return model.TaskFields{
		Title:         t.Title,
		Notes:         t.Notes,
		ScheduledDate: t.ScheduledDate,
		ScheduledTime: t.ScheduledTime,
		Duration:      t.Duration,
		IsFloating:    t.IsFloating,
		Priority:      t.Priority,
		Color:         t.Color,
	}
}
