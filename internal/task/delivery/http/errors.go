package http

import (
	"errors"
	"net/http"

	"task-planner/internal/task"
	pkgErrors "task-planner/pkg/errors"
)

var (
	errInvalidDate  = pkgErrors.NewBadRequestError("dates must use YYYY-MM-DD")
	errInvalidClock = pkgErrors.NewBadRequestError("times must use HH:MM")
	errMissingID    = pkgErrors.NewBadRequestError("id is required")
	errMissingRule  = pkgErrors.NewBadRequestError("rule or rrule is required")
	errInvalidRRule = pkgErrors.NewBadRequestError("rrule is not a valid RFC 5545 recurrence rule")
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, task.ErrEmptyInput),
		errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, task.ErrInvalidRange):
		return pkgErrors.NewBadRequestError(err.Error())
	case errors.Is(err, task.ErrInvalidRule):
		return pkgErrors.NewBadRequestError(err.Error())
	case errors.Is(err, task.ErrTaskNotFound):
		return pkgErrors.NewNotFoundError(err.Error())
	case errors.Is(err, task.ErrNotATemplate),
		errors.Is(err, task.ErrTemplateNotCompletable):
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, task.ErrPlannerClosed):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
