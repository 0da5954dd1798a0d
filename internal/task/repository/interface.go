package repository

import (
	"context"

	"task-planner/internal/model"
)

// Repository is the task store. All tasks live in one collection; an
// instance refers to its template only through ParentID.
//
// Lookups return a zero-value task (ID == "") when nothing matches.
type Repository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	CreateTemplate(ctx context.Context, opt CreateTemplateOptions) (model.Task, error)
	CreateInstance(ctx context.Context, opt CreateInstanceOptions) (model.Task, error)
	// FindInstance returns the instance of a template on the given calendar day.
	FindInstance(ctx context.Context, opt FindInstanceOptions) (model.Task, error)
	GetTask(ctx context.Context, id string) (model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
