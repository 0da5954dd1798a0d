package model

import "time"

// Priority of a task, 0 means none.
type Priority int

const (
	PriorityNone   Priority = 0
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Task is either a recurring template (IsRecurring, owns Rule) or a concrete task.
// Instances point at their template through ParentID; the template never stores
// its instances, they are found by querying the store.
type Task struct {
	ID    string
	Title string
	Notes string

	// ScheduledDate is the start of the scheduled calendar day.
	ScheduledDate *time.Time
	// ScheduledTime carries the time of day; its date equals ScheduledDate.
	ScheduledTime *time.Time
	Duration      time.Duration

	IsFloating  bool
	IsCompleted bool
	CompletedAt *time.Time

	Priority Priority
	Color    string

	IsRecurring bool
	Rule        *RecurrenceRule // only set on templates
	ParentID    string          // only set on instances

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTemplate reports whether t owns a recurrence rule.
func (t Task) IsTemplate() bool {
	return t.IsRecurring && t.Rule != nil
}

// IsInstance reports whether t was materialized from a template.
func (t Task) IsInstance() bool {
	return t.ParentID != ""
}

// Start returns the moment the task is scheduled for, preferring the time of day.
func (t Task) Start() (time.Time, bool) {
	if t.ScheduledTime != nil {
		return *t.ScheduledTime, true
	}
	if t.ScheduledDate != nil {
		return *t.ScheduledDate, true
	}
	return time.Time{}, false
}

// TaskFields are the user-editable fields shared by every creation path.
type TaskFields struct {
	Title         string
	Notes         string
	ScheduledDate *time.Time
	ScheduledTime *time.Time
	Duration      time.Duration
	IsFloating    bool
	Priority      Priority
	Color         string
}

// RemindAt returns the moment a reminder should fire, offset before the start.
// Floating and completed tasks have no reminder.
func (t Task) RemindAt(offset time.Duration) (time.Time, bool) {
	if t.IsCompleted || t.IsTemplate() {
		return time.Time{}, false
	}
	start, ok := t.Start()
	if !ok {
		return time.Time{}, false
	}
	return start.Add(-offset), true
}
