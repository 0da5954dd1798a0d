package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "task-planner/pkg/errors"
	"task-planner/pkg/response"
)

// badRequest answers request errors: our own HTTP errors keep their status,
// binding errors become a validation error.
func (h *handler) badRequest(c *gin.Context, err error) {
	if _, ok := pkgErrors.AsHTTPError(err); ok {
		response.Error(c, err)
		return
	}
	response.ValidationError(c, err)
}

// Preview godoc
// @Summary     Preview parsed task text
// @Description Parses free-form text into a draft without storing anything.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body textReq true "Task text"
// @Success     200  {object} previewResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/preview [POST]
func (h *handler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTextReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	draft, err := h.uc.Preview(ctx, req.Text)
	if err != nil {
		h.l.Errorf(ctx, "uc.Preview: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, previewResp{Draft: h.newDraftResp(draft)})
}

// QuickAdd godoc
// @Summary     Create a task from text
// @Description Parses text and stores it as a one-off task or as a recurring template with its first window of instances.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body quickAddReq true "Task text"
// @Success     200  {object} createResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/quick [POST]
func (h *handler) QuickAdd(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processQuickAddReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.uc.CreateFromText(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateFromText: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newCreateResp(output))
}

// Create godoc
// @Summary     Create a one-off task
// @Description Creates a task from structured fields. A task without a date is floating.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body createReq true "Task fields"
// @Success     200  {object} createResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processCreateReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.uc.CreateOneOff(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateOneOff: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newCreateResp(output))
}

// CreateRecurring godoc
// @Summary     Create a recurring task
// @Description Creates a template from a structured rule or an RRULE and materializes its first window.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body createRecurringReq true "Template fields and rule"
// @Success     200  {object} createResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/recurring [POST]
func (h *handler) CreateRecurring(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processCreateRecurringReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.uc.CreateRecurring(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateRecurring: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newCreateResp(output))
}

// List godoc
// @Summary     List tasks
// @Description Returns tasks filtered by parent, kind, completion and scheduled date range.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       parent_id         query string false "Template ID"
// @Param       templates         query bool   false "Templates only"
// @Param       floating          query bool   false "Floating tasks only"
// @Param       exclude_completed query bool   false "Hide completed tasks"
// @Param       from              query string false "First day (YYYY-MM-DD)"
// @Param       to                query string false "Last day (YYYY-MM-DD)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processListReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.uc.List(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, listResp{Tasks: h.newTaskResps(output.Tasks), Total: output.Total})
}

// Detail godoc
// @Summary     Get task detail
// @Tags        Tasks
// @Produce     json
// @Param       id path string true "Task ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	t, err := h.uc.Detail(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, detailResp{Task: h.newTaskResp(t)})
}

// Overdue godoc
// @Summary     List overdue tasks
// @Description Returns open tasks whose scheduled time has passed.
// @Tags        Tasks
// @Produce     json
// @Success     200 {object} listResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/overdue [GET]
func (h *handler) Overdue(c *gin.Context) {
	ctx := c.Request.Context()

	tasks, err := h.uc.Overdue(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Overdue: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, listResp{Tasks: h.newTaskResps(tasks), Total: len(tasks)})
}

// Complete godoc
// @Summary     Complete a task
// @Tags        Tasks
// @Produce     json
// @Param       id path string true "Task ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Templates cannot be completed"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id}/complete [POST]
func (h *handler) Complete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	t, err := h.uc.Complete(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Complete: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, detailResp{Task: h.newTaskResp(t)})
}

// Materialize godoc
// @Summary     Materialize template instances
// @Description Creates the missing instances of a template over [range_start, range_start + window_days].
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id   path string         true  "Template ID"
// @Param       body body materializeReq false "Window, defaults to today and the configured window"
// @Success     200 {object} materializeResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Not a template"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id}/materialize [POST]
func (h *handler) Materialize(c *gin.Context) {
	ctx := c.Request.Context()

	req, start, err := h.processMaterializeReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	window := h.windowDays
	if req.WindowDays != nil {
		window = *req.WindowDays
	}

	created, err := h.uc.Materialize(ctx, req.ID, start, window)
	if err != nil {
		h.l.Errorf(ctx, "uc.Materialize: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, materializeResp{Created: created})
}

// Delete godoc
// @Summary     Delete a task
// @Description Deletes a task. Deleting a template deletes its instances too.
// @Tags        Tasks
// @Produce     json
// @Param       id path string true "Task ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.uc.Delete(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// Timeline godoc
// @Summary     Day timeline
// @Description Merges scheduled tasks and external calendar events sorted by start. Floating tasks are listed separately.
// @Tags        Timeline
// @Produce     json
// @Param       from query string false "First day (YYYY-MM-DD), defaults to today"
// @Param       to   query string false "Last day (YYYY-MM-DD), defaults to from"
// @Success     200 {object} timelineResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/timeline [GET]
func (h *handler) Timeline(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processTimelineReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.uc.Timeline(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Timeline: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newTimelineResp(output))
}

// Calendar godoc
// @Summary     iCalendar feed
// @Description Renders every scheduled task as an iCalendar feed. Templates carry their RRULE.
// @Tags        Timeline
// @Produce     text/calendar
// @Success     200 {string} string "VCALENDAR"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/calendar.ics [GET]
func (h *handler) Calendar(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := h.uc.ExportCalendar(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.ExportCalendar: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	c.Header("Content-Disposition", `inline; filename="planner.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}
