package http

import (
	"time"

	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/internal/timeline"
	"task-planner/pkg/response"
)

// --- Request DTOs ---

type textReq struct {
	Text string `json:"text" binding:"required,max=1000"`
}

type quickAddReq struct {
	Text            string `json:"text"             binding:"required,max=1000"`
	Notes           string `json:"notes"            binding:"max=5000"`
	DurationMinutes int    `json:"duration_minutes" binding:"min=0,max=1440"`
	Priority        int    `json:"priority"         binding:"min=0,max=3"`
	Color           string `json:"color"            binding:"max=32"`
}

func (r quickAddReq) toInput() task.CreateFromTextInput {
	return task.CreateFromTextInput{
		Text:     r.Text,
		Notes:    r.Notes,
		Duration: time.Duration(r.DurationMinutes) * time.Minute,
		Priority: model.Priority(r.Priority),
		Color:    r.Color,
	}
}

// fieldsReq is shared by the structured creation routes.
// Date is YYYY-MM-DD and Time is HH:MM, both in the planner timezone.
type fieldsReq struct {
	Title           string `json:"title"            binding:"required,max=255"`
	Notes           string `json:"notes"            binding:"max=5000"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes" binding:"min=0,max=1440"`
	Priority        int    `json:"priority"         binding:"min=0,max=3"`
	Color           string `json:"color"            binding:"max=32"`
}

type createReq struct {
	fieldsReq
}

type ruleReq struct {
	Frequency       string `json:"frequency"`
	Interval        int    `json:"interval"         binding:"min=0"`
	DaysOfWeek      []int  `json:"days_of_week"     binding:"dive,min=1,max=7"`
	DayOfMonth      *int   `json:"day_of_month"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	OccurrenceCount *int   `json:"occurrence_count"`
}

// createRecurringReq takes either a structured rule or an RFC 5545 RRULE.
type createRecurringReq struct {
	fieldsReq
	Rule  *ruleReq `json:"rule"`
	RRule string   `json:"rrule"`
}

type listReq struct {
	ParentID         string `form:"parent_id"`
	Templates        bool   `form:"templates"`
	Floating         bool   `form:"floating"`
	ExcludeCompleted bool   `form:"exclude_completed"`
	From             string `form:"from"`
	To               string `form:"to"`
}

type materializeReq struct {
	ID         string `json:"-"`
	RangeStart string `json:"range_start"`
	WindowDays *int   `json:"window_days" binding:"omitempty,min=0,max=366"`
}

type timelineReq struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// --- Response DTOs ---

type ruleResp struct {
	Frequency       string         `json:"frequency"`
	Interval        int            `json:"interval"`
	DaysOfWeek      []string       `json:"days_of_week,omitempty"`
	DayOfMonth      *int           `json:"day_of_month,omitempty"`
	StartDate       response.Date  `json:"start_date"`
	EndDate         *response.Date `json:"end_date,omitempty"`
	OccurrenceCount *int           `json:"occurrence_count,omitempty"`
}

type taskResp struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Notes           string         `json:"notes,omitempty"`
	ScheduledDate   *response.Date `json:"scheduled_date,omitempty"`
	ScheduledTime   *time.Time     `json:"scheduled_time,omitempty"`
	DurationMinutes int            `json:"duration_minutes"`
	IsFloating      bool           `json:"is_floating"`
	IsCompleted     bool           `json:"is_completed"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	Priority        int            `json:"priority"`
	Color           string         `json:"color,omitempty"`
	IsRecurring     bool           `json:"is_recurring"`
	ParentID        string         `json:"parent_id,omitempty"`
	Rule            *ruleResp      `json:"rule,omitempty"`
	RemindAt        *time.Time     `json:"remind_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func weekdayNames(days []model.Weekday) []string {
	if len(days) == 0 {
		return nil
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return out
}

func newRuleResp(r *model.RecurrenceRule) *ruleResp {
	if r == nil {
		return nil
	}
	resp := &ruleResp{
		Frequency:       string(r.Frequency),
		Interval:        r.Step(),
		DaysOfWeek:      weekdayNames(r.DaysOfWeek),
		DayOfMonth:      r.DayOfMonth,
		StartDate:       response.Date(r.StartDate),
		OccurrenceCount: r.OccurrenceCount,
	}
	if r.EndDate != nil {
		end := response.Date(*r.EndDate)
		resp.EndDate = &end
	}
	return resp
}

func (h *handler) newTaskResp(t model.Task) taskResp {
	resp := taskResp{
		ID:              t.ID,
		Title:           t.Title,
		Notes:           t.Notes,
		ScheduledTime:   t.ScheduledTime,
		DurationMinutes: int(t.Duration / time.Minute),
		IsFloating:      t.IsFloating,
		IsCompleted:     t.IsCompleted,
		CompletedAt:     t.CompletedAt,
		Priority:        int(t.Priority),
		Color:           t.Color,
		IsRecurring:     t.IsRecurring,
		ParentID:        t.ParentID,
		Rule:            newRuleResp(t.Rule),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if t.ScheduledDate != nil {
		d := response.Date(t.ScheduledDate.In(h.loc))
		resp.ScheduledDate = &d
	}
	if at, ok := t.RemindAt(h.reminderOffset); ok && t.ScheduledTime != nil {
		resp.RemindAt = &at
	}
	return resp
}

func (h *handler) newTaskResps(tasks []model.Task) []taskResp {
	out := make([]taskResp, len(tasks))
	for i, t := range tasks {
		out[i] = h.newTaskResp(t)
	}
	return out
}

type draftResp struct {
	Title         string         `json:"title"`
	ScheduledDate *response.Date `json:"scheduled_date,omitempty"`
	ScheduledTime *time.Time     `json:"scheduled_time,omitempty"`
	IsFloating    bool           `json:"is_floating"`
	IsRecurring   bool           `json:"is_recurring"`
	Frequency     string         `json:"frequency,omitempty"`
	Interval      int            `json:"interval,omitempty"`
	DaysOfWeek    []string       `json:"days_of_week,omitempty"`
	DayOfMonth    *int           `json:"day_of_month,omitempty"`
}

func (h *handler) newDraftResp(d model.ParsedDraft) draftResp {
	resp := draftResp{
		Title:         d.Title,
		ScheduledTime: d.ScheduledTime,
		IsFloating:    d.IsFloating,
		IsRecurring:   d.IsRecurring,
		Frequency:     string(d.Frequency),
		Interval:      d.Interval,
		DaysOfWeek:    weekdayNames(d.DaysOfWeek),
		DayOfMonth:    d.DayOfMonth,
	}
	if d.ScheduledDate != nil {
		date := response.Date(d.ScheduledDate.In(h.loc))
		resp.ScheduledDate = &date
	}
	return resp
}

type previewResp struct {
	Draft draftResp `json:"draft"`
}

type createResp struct {
	Task         taskResp   `json:"task"`
	Draft        *draftResp `json:"draft,omitempty"`
	Materialized int        `json:"materialized"`
}

func (h *handler) newCreateResp(out task.CreateOutput) createResp {
	resp := createResp{
		Task:         h.newTaskResp(out.Task),
		Materialized: out.Materialized,
	}
	if out.Draft != nil {
		d := h.newDraftResp(*out.Draft)
		resp.Draft = &d
	}
	return resp
}

type listResp struct {
	Tasks []taskResp `json:"tasks"`
	Total int        `json:"total"`
}

type detailResp struct {
	Task taskResp `json:"task"`
}

type materializeResp struct {
	Created int `json:"created"`
}

type timelineItemResp struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	AllDay    bool      `json:"all_day"`
	Color     string    `json:"color,omitempty"`
	Completed bool      `json:"completed"`
}

type timelineResp struct {
	From     time.Time          `json:"from"`
	To       time.Time          `json:"to"`
	Items    []timelineItemResp `json:"items"`
	Floating []taskResp         `json:"floating"`
}

func (h *handler) newTimelineResp(out task.TimelineOutput) timelineResp {
	items := make([]timelineItemResp, len(out.Items))
	for i, it := range out.Items {
		p := timeline.Project(it)
		items[i] = timelineItemResp{
			Kind:      string(p.Kind),
			ID:        p.ID,
			Title:     p.Title,
			Start:     p.Start,
			End:       p.End,
			AllDay:    p.AllDay,
			Color:     p.Color,
			Completed: p.Completed,
		}
	}
	return timelineResp{
		From:     out.From,
		To:       out.To,
		Items:    items,
		Floating: h.newTaskResps(out.Floating),
	}
}
