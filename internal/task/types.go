package task

import (
	"time"

	"task-planner/internal/model"
	"task-planner/internal/timeline"
)

// CreateFromTextInput carries free-form text plus fields the text cannot express.
type CreateFromTextInput struct {
	Text     string
	Notes    string
	Duration time.Duration
	Priority model.Priority
	Color    string
}

// CreateOneOffInput creates a single task.
type CreateOneOffInput struct {
	Fields model.TaskFields
}

// CreateRecurringInput creates a template. Rule.StartDate defaults to the
// scheduled date, or today when that is empty too.
type CreateRecurringInput struct {
	Fields model.TaskFields
	Rule   model.RecurrenceRule
}

// CreateOutput is the result of every creation path.
type CreateOutput struct {
	Draft        *model.ParsedDraft // set when created from text
	Task         model.Task
	Materialized int
}

// MaterializeAllOutput summarises a refresh of every template.
type MaterializeAllOutput struct {
	Templates int
	Created   int
	Failed    int
}

// ListInput filters tasks. Zero values mean "no filter".
type ListInput struct {
	ParentID         string
	TemplatesOnly    bool
	FloatingOnly     bool
	ExcludeCompleted bool
	From             *time.Time
	To               *time.Time
}

// ListOutput is a page of tasks.
type ListOutput struct {
	Tasks []model.Task
	Total int
}

// TimelineInput is the window shown on the timeline. Zero values default to today.
type TimelineInput struct {
	From time.Time
	To   time.Time
}

// TimelineOutput holds scheduled items sorted by start plus floating tasks.
type TimelineOutput struct {
	From     time.Time
	To       time.Time
	Items    []timeline.Item
	Floating []model.Task
}

// Settings are the planner options the use case needs.
type Settings struct {
	WindowDays      int
	DefaultDuration time.Duration
	ReminderOffset  time.Duration
}
