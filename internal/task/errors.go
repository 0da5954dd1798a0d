package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyInput   = errors.New("input text is empty")
	ErrEmptyTitle   = errors.New("task title is empty")
	ErrTaskNotFound = errors.New("task not found")
	ErrNotATemplate = errors.New("task is not a recurring template")
	ErrInvalidRange = errors.New("invalid date range")
	ErrInvalidRule  = errors.New("invalid recurrence rule")

	ErrTemplateNotCompletable = errors.New("a recurring template cannot be completed, complete its instances")
	ErrPlannerClosed          = errors.New("planner is shutting down")
)
