package repository

import (
	"time"

	"task-planner/internal/model"
)

// CreateTaskOptions holds the parameters for a one-off task.
type CreateTaskOptions struct {
	Fields model.TaskFields
}

// CreateTemplateOptions holds the parameters for a recurring template.
type CreateTemplateOptions struct {
	Fields model.TaskFields
	Rule   model.RecurrenceRule
}

// CreateInstanceOptions holds the parameters for a materialized instance.
// Date is the occurrence day; ScheduledTime in Fields, if any, already sits on it.
type CreateInstanceOptions struct {
	ParentID string
	Fields   model.TaskFields
	Date     time.Time
}

// FindInstanceOptions selects an instance by template and calendar day.
type FindInstanceOptions struct {
	ParentID string
	Date     time.Time
}

// ListTasksOptions filters ListTasks. All set fields are applied as AND conditions.
type ListTasksOptions struct {
	ParentID         string
	TemplatesOnly    bool
	FloatingOnly     bool
	ExcludeCompleted bool
	// From and To bound ScheduledDate, both inclusive. Tasks without a date
	// never match a bounded query.
	From *time.Time
	To   *time.Time
}

// UpdateTaskOptions holds the full set of mutable fields of a task.
type UpdateTaskOptions struct {
	ID          string
	Fields      model.TaskFields
	IsCompleted bool
	CompletedAt *time.Time
}
