// Package timeline merges scheduled tasks and calendar events into one
// chronological list.
package timeline

import (
	"sort"
	"time"

	"task-planner/internal/model"
)

// Kind tells the two item variants apart in rendered output.
type Kind string

const (
	KindTask  Kind = "task"
	KindEvent Kind = "event"
)

// Item is either a TaskItem or an EventItem.
type Item interface {
	isItem()
}

// TaskItem is a scheduled task on the timeline.
type TaskItem struct {
	Task model.Task
	// DefaultDuration is used when the task has none.
	DefaultDuration time.Duration
}

// EventItem is a read-only event from an external calendar.
type EventItem struct {
	Event model.CalendarEvent
}

func (TaskItem) isItem()  {}
func (EventItem) isItem() {}

// Projection is the read-only view every item shares.
type Projection struct {
	Kind      Kind
	ID        string
	Title     string
	Start     time.Time
	End       time.Time
	AllDay    bool
	Color     string
	Completed bool
}

// Project returns the uniform view of item.
func Project(item Item) Projection {
	switch it := item.(type) {
	case TaskItem:
		start, _ := it.Task.Start()
		allDay := it.Task.ScheduledTime == nil
		dur := it.Task.Duration
		if dur <= 0 {
			dur = it.DefaultDuration
		}
		end := start.Add(dur)
		if allDay {
			end = start.AddDate(0, 0, 1)
		}
		return Projection{
			Kind:      KindTask,
			ID:        it.Task.ID,
			Title:     it.Task.Title,
			Start:     start,
			End:       end,
			AllDay:    allDay,
			Color:     it.Task.Color,
			Completed: it.Task.IsCompleted,
		}
	case EventItem:
		return Projection{
			Kind:   KindEvent,
			ID:     it.Event.UID,
			Title:  it.Event.Title,
			Start:  it.Event.Start,
			End:    it.Event.End,
			AllDay: it.Event.AllDay,
			Color:  it.Event.Color,
		}
	}
	return Projection{}
}

// Build merges scheduled tasks and events that start within [from, to],
// sorted by start. All-day items sort before timed ones on the same instant.
// Templates and undated tasks are left out.
func Build(tasks []model.Task, events []model.CalendarEvent, from, to time.Time, defaultDuration time.Duration) []Item {
	items := make([]Item, 0, len(tasks)+len(events))

	for _, t := range tasks {
		if t.IsTemplate() {
			continue
		}
		start, ok := t.Start()
		if !ok || start.Before(from) || start.After(to) {
			continue
		}
		items = append(items, TaskItem{Task: t, DefaultDuration: defaultDuration})
	}

	for _, e := range events {
		if e.End.Before(from) || e.Start.After(to) {
			continue
		}
		items = append(items, EventItem{Event: e})
	}

	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := Project(items[i]), Project(items[j])
		if !pi.Start.Equal(pj.Start) {
			return pi.Start.Before(pj.Start)
		}
		return pi.AllDay && !pj.AllDay
	})
	return items
}

// Floating returns the tasks shown apart from the timeline.
func Floating(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.IsFloating && !t.IsTemplate() {
			out = append(out, t)
		}
	}
	return out
}
