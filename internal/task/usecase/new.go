package usecase

import (
	"time"

	"task-planner/internal/eventsource"
	"task-planner/internal/intake"
	"task-planner/internal/recurrence"
	"task-planner/internal/task"
	"task-planner/internal/task/repository"
	"task-planner/pkg/datemath"
	pkgLog "task-planner/pkg/log"
)

const (
	defaultWindowDays     = 30
	defaultDuration       = 30 * time.Minute
	defaultReminderOffset = 15 * time.Minute
	exportCalendarName    = "Planner"
)

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	engine   *recurrence.Engine
	pipeline *intake.Pipeline
	cal      *datemath.Calendar
	clock    datemath.Clock
	events   eventsource.Source
	settings task.Settings
	writer   *writer
}

var _ task.UseCase = (*implUseCase)(nil)

// New creates a new task UseCase instance. events may be nil when no
// external calendar is configured. Close must be called to stop the writer.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	engine *recurrence.Engine,
	pipeline *intake.Pipeline,
	clock datemath.Clock,
	events eventsource.Source,
	settings task.Settings,
) *implUseCase {
	if clock == nil {
		clock = datemath.SystemClock{}
	}
	if settings.WindowDays <= 0 {
		settings.WindowDays = defaultWindowDays
	}
	if settings.DefaultDuration <= 0 {
		settings.DefaultDuration = defaultDuration
	}
	if settings.ReminderOffset < 0 {
		settings.ReminderOffset = defaultReminderOffset
	}
	return &implUseCase{
		l:        l,
		repo:     repo,
		engine:   engine,
		pipeline: pipeline,
		cal:      engine.Calendar(),
		clock:    clock,
		events:   events,
		settings: settings,
		writer:   newWriter(),
	}
}

// Close stops the store writer. Mutations after Close fail with ErrPlannerClosed.
func (uc *implUseCase) Close() {
	uc.writer.Close()
}
