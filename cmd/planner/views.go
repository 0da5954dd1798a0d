package main

import (
	"time"

	"task-planner/internal/model"
	"task-planner/internal/recurrence"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

type draftView struct {
	Title     string   `yaml:"title"`
	Date      string   `yaml:"date,omitempty"`
	Time      string   `yaml:"time,omitempty"`
	Floating  bool     `yaml:"floating"`
	Recurring bool     `yaml:"recurring"`
	Frequency string   `yaml:"frequency,omitempty"`
	Interval  int      `yaml:"interval,omitempty"`
	Days      []string `yaml:"days,omitempty"`
	MonthDay  int      `yaml:"day_of_month,omitempty"`
}

type taskView struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Notes     string `yaml:"notes,omitempty"`
	Date      string `yaml:"date,omitempty"`
	Time      string `yaml:"time,omitempty"`
	Duration  string `yaml:"duration,omitempty"`
	Floating  bool   `yaml:"floating,omitempty"`
	Completed bool   `yaml:"completed,omitempty"`
	Priority  int    `yaml:"priority,omitempty"`
	Color     string `yaml:"color,omitempty"`
	RRule     string `yaml:"rrule,omitempty"`
	ParentID  string `yaml:"parent_id,omitempty"`
}

type addView struct {
	Task         taskView `yaml:"task"`
	Materialized int      `yaml:"materialized"`
}

type listView struct {
	Total int        `yaml:"total"`
	Tasks []taskView `yaml:"tasks"`
}

type occurrencesView struct {
	RRule string   `yaml:"rrule,omitempty"`
	From  string   `yaml:"from"`
	To    string   `yaml:"to"`
	Dates []string `yaml:"dates"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(clockLayout)
}

func newDraftView(d model.ParsedDraft) draftView {
	v := draftView{
		Title:     d.Title,
		Date:      formatDate(d.ScheduledDate),
		Time:      formatClock(d.ScheduledTime),
		Floating:  d.IsFloating,
		Recurring: d.IsRecurring,
	}
	if !d.IsRecurring {
		return v
	}
	v.Frequency = string(d.Frequency)
	v.Interval = d.Interval
	for _, wd := range d.DaysOfWeek {
		v.Days = append(v.Days, wd.String())
	}
	if d.DayOfMonth != nil {
		v.MonthDay = *d.DayOfMonth
	}
	return v
}

func newTaskView(t model.Task) taskView {
	v := taskView{
		ID:        t.ID,
		Title:     t.Title,
		Notes:     t.Notes,
		Date:      formatDate(t.ScheduledDate),
		Time:      formatClock(t.ScheduledTime),
		Floating:  t.IsFloating,
		Completed: t.IsCompleted,
		Priority:  int(t.Priority),
		Color:     t.Color,
		ParentID:  t.ParentID,
	}
	if t.Duration > 0 {
		v.Duration = t.Duration.String()
	}
	if t.IsTemplate() {
		if rr, err := recurrence.ToRRule(*t.Rule); err == nil {
			v.RRule = rr
		}
	}
	return v
}
