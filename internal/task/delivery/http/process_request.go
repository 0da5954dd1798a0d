package http

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"task-planner/internal/model"
	"task-planner/internal/recurrence"
	"task-planner/internal/task"
	"task-planner/pkg/response"
)

func (h *handler) parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(response.DateFormat, s, h.loc)
	if err != nil {
		return nil, errInvalidDate
	}
	return &d, nil
}

// parseClock places an HH:MM clock time on day, or on today when day is nil.
func (h *handler) parseClock(s string, day *time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	tm, err := time.Parse("15:04", s)
	if err != nil {
		return nil, errInvalidClock
	}
	base := h.now().In(h.loc)
	if day != nil {
		base = day.In(h.loc)
	}
	at := time.Date(base.Year(), base.Month(), base.Day(), tm.Hour(), tm.Minute(), 0, 0, h.loc)
	return &at, nil
}

func (h *handler) toFields(r fieldsReq) (model.TaskFields, error) {
	date, err := h.parseDate(r.Date)
	if err != nil {
		return model.TaskFields{}, err
	}
	at, err := h.parseClock(r.Time, date)
	if err != nil {
		return model.TaskFields{}, err
	}
	return model.TaskFields{
		Title:         r.Title,
		Notes:         r.Notes,
		ScheduledDate: date,
		ScheduledTime: at,
		Duration:      time.Duration(r.DurationMinutes) * time.Minute,
		Priority:      model.Priority(r.Priority),
		Color:         r.Color,
	}, nil
}

func (h *handler) processTextReq(c *gin.Context) (textReq, error) {
	var req textReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "task.http.processTextReq: %v", err)
		return textReq{}, err
	}
	return req, nil
}

func (h *handler) processQuickAddReq(c *gin.Context) (task.CreateFromTextInput, error) {
	var req quickAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "task.http.processQuickAddReq: %v", err)
		return task.CreateFromTextInput{}, err
	}
	return req.toInput(), nil
}

func (h *handler) processCreateReq(c *gin.Context) (task.CreateOneOffInput, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "task.http.processCreateReq: %v", err)
		return task.CreateOneOffInput{}, err
	}
	fields, err := h.toFields(req.fieldsReq)
	if err != nil {
		return task.CreateOneOffInput{}, err
	}
	return task.CreateOneOffInput{Fields: fields}, nil
}

func (h *handler) processCreateRecurringReq(c *gin.Context) (task.CreateRecurringInput, error) {
	var req createRecurringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "task.http.processCreateRecurringReq: %v", err)
		return task.CreateRecurringInput{}, err
	}
	fields, err := h.toFields(req.fieldsReq)
	if err != nil {
		return task.CreateRecurringInput{}, err
	}

	var rule model.RecurrenceRule
	switch {
	case strings.TrimSpace(req.RRule) != "":
		var start time.Time
		if fields.ScheduledDate != nil {
			start = *fields.ScheduledDate
		}
		rule, err = recurrence.FromRRule(strings.TrimPrefix(strings.TrimSpace(req.RRule), "RRULE:"), start)
		if err != nil {
			return task.CreateRecurringInput{}, errInvalidRRule
		}
	case req.Rule != nil:
		rule, err = h.toRule(*req.Rule)
		if err != nil {
			return task.CreateRecurringInput{}, err
		}
	default:
		return task.CreateRecurringInput{}, errMissingRule
	}

	return task.CreateRecurringInput{Fields: fields, Rule: rule}, nil
}

func (h *handler) toRule(r ruleReq) (model.RecurrenceRule, error) {
	rule := model.RecurrenceRule{
		Frequency:       model.Frequency(r.Frequency),
		Interval:        r.Interval,
		DayOfMonth:      r.DayOfMonth,
		OccurrenceCount: r.OccurrenceCount,
	}
	for _, d := range r.DaysOfWeek {
		rule.DaysOfWeek = append(rule.DaysOfWeek, model.Weekday(d))
	}

	start, err := h.parseDate(r.StartDate)
	if err != nil {
		return model.RecurrenceRule{}, err
	}
	if start != nil {
		rule.StartDate = *start
	}
	rule.EndDate, err = h.parseDate(r.EndDate)
	if err != nil {
		return model.RecurrenceRule{}, err
	}
	return rule, nil
}

func (h *handler) processListReq(c *gin.Context) (task.ListInput, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "task.http.processListReq: %v", err)
		return task.ListInput{}, err
	}
	from, err := h.parseDate(req.From)
	if err != nil {
		return task.ListInput{}, err
	}
	to, err := h.parseDate(req.To)
	if err != nil {
		return task.ListInput{}, err
	}
	if to != nil {
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	return task.ListInput{
		ParentID:         req.ParentID,
		TemplatesOnly:    req.Templates,
		FloatingOnly:     req.Floating,
		ExcludeCompleted: req.ExcludeCompleted,
		From:             from,
		To:               to,
	}, nil
}

func (h *handler) processIDReq(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return "", errMissingID
	}
	return id, nil
}

// processMaterializeReq accepts an empty body, meaning "from today for the
// configured window".
func (h *handler) processMaterializeReq(c *gin.Context) (materializeReq, time.Time, error) {
	var req materializeReq
	id, err := h.processIDReq(c)
	if err != nil {
		return materializeReq{}, time.Time{}, err
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.l.Warnf(c.Request.Context(), "task.http.processMaterializeReq: %v", err)
			return materializeReq{}, time.Time{}, err
		}
	}
	req.ID = id

	start := h.now().In(h.loc)
	d, err := h.parseDate(req.RangeStart)
	if err != nil {
		return materializeReq{}, time.Time{}, err
	}
	if d != nil {
		start = *d
	}
	return req, start, nil
}

func (h *handler) processTimelineReq(c *gin.Context) (task.TimelineInput, error) {
	var req timelineReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "task.http.processTimelineReq: %v", err)
		return task.TimelineInput{}, err
	}
	var in task.TimelineInput
	from, err := h.parseDate(req.From)
	if err != nil {
		return task.TimelineInput{}, err
	}
	to, err := h.parseDate(req.To)
	if err != nil {
		return task.TimelineInput{}, err
	}
	if from != nil {
		in.From = *from
	}
	if to != nil {
		in.To = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	} else if from != nil {
		in.To = from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return in, nil
}
