package task

import (
	"context"
	"time"

	"task-planner/internal/model"
)

// UseCase defines the business logic interface for the task domain.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// Preview parses text into a draft without storing anything.
	Preview(ctx context.Context, text string) (model.ParsedDraft, error)

	// CreateFromText parses text and stores it as a one-off task or as a
	// recurring template whose first window of instances is materialized.
	CreateFromText(ctx context.Context, input CreateFromTextInput) (CreateOutput, error)
	CreateOneOff(ctx context.Context, input CreateOneOffInput) (CreateOutput, error)
	CreateRecurring(ctx context.Context, input CreateRecurringInput) (CreateOutput, error)

	// Materialize creates the missing instances of one template over
	// [rangeStart, rangeStart + windowDays] and returns how many it created.
	Materialize(ctx context.Context, templateID string, rangeStart time.Time, windowDays int) (int, error)
	// MaterializeAll refreshes the rolling window of every template.
	MaterializeAll(ctx context.Context) (MaterializeAllOutput, error)

	Detail(ctx context.Context, id string) (model.Task, error)
	Complete(ctx context.Context, id string) (model.Task, error)
	// Delete removes a task. Deleting a template removes its instances too.
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, input ListInput) (ListOutput, error)
	Timeline(ctx context.Context, input TimelineInput) (TimelineOutput, error)
	Overdue(ctx context.Context) ([]model.Task, error)
	ExportCalendar(ctx context.Context) ([]byte, error)
}
