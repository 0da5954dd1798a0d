package telegram

import (
	"errors"

	"task-planner/internal/task"
)

// errorMessage returns a user-facing error string for the given error.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, task.ErrEmptyInput), errors.Is(err, task.ErrEmptyTitle):
		return "Send me a task, for example: Dentist tomorrow at 3pm"
	case errors.Is(err, task.ErrInvalidRule):
		return "I could not understand how that task repeats."
	case errors.Is(err, task.ErrTaskNotFound):
		return "That task does not exist any more."
	case errors.Is(err, task.ErrTemplateNotCompletable):
		return "Recurring tasks are completed one occurrence at a time."
	case errors.Is(err, task.ErrPlannerClosed):
		return "The planner is restarting, try again in a moment."
	default:
		return "Something went wrong, please try again."
	}
}
