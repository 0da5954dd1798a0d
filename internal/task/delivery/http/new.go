package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"task-planner/internal/task"
	"task-planner/pkg/log"
)

// Handler is the public interface for the task HTTP delivery layer.
type Handler interface {
	Preview(c *gin.Context)
	QuickAdd(c *gin.Context)
	Create(c *gin.Context)
	CreateRecurring(c *gin.Context)
	List(c *gin.Context)
	Detail(c *gin.Context)
	Overdue(c *gin.Context)
	Complete(c *gin.Context)
	Materialize(c *gin.Context)
	Delete(c *gin.Context)
	Timeline(c *gin.Context)
	Calendar(c *gin.Context)
}

type handler struct {
	l              log.Logger
	uc             task.UseCase
	loc            *time.Location
	reminderOffset time.Duration
	windowDays     int
	now            func() time.Time
}

// Config holds the planner settings the handlers read.
type Config struct {
	// Location is the zone request dates are read in, UTC when nil.
	Location       *time.Location
	ReminderOffset time.Duration
	// WindowDays is used by materialize requests that do not set one.
	WindowDays int
}

// New creates a new HTTP handler for the task domain.
func New(l log.Logger, uc task.UseCase, cfg Config) *handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &handler{
		l:              l,
		uc:             uc,
		loc:            loc,
		reminderOffset: cfg.ReminderOffset,
		windowDays:     cfg.WindowDays,
		now:            time.Now,
	}
}
