package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"task-planner/internal/eventsource"
	"task-planner/internal/intake"
	"task-planner/internal/model"
	"task-planner/internal/recurrence"
	"task-planner/internal/task"
	"task-planner/internal/task/repository"
	"task-planner/internal/task/repository/memory"
	"task-planner/pkg/datemath"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// wednesday is 2024-05-01 10:00 UTC.
var wednesday = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	uc    *implUseCase
	repo  repository.Repository
	clock *datemath.FixedClock
	cal   *datemath.Calendar
}

func newFixture(t *testing.T, events eventsource.Source) fixture {
	t.Helper()
	cal := datemath.UTC()
	clock := datemath.NewFixedClock(wednesday)
	l := &mockLogger{}
	repo := memory.New(l, cal)
	uc := New(l, repo, recurrence.New(cal), intake.New(cal, clock, intake.DefaultConfig()), clock, events, task.Settings{
		WindowDays:      30,
		DefaultDuration: time.Hour,
	})
	t.Cleanup(uc.Close)
	return fixture{uc: uc, repo: repo, clock: clock, cal: cal}
}

func (f fixture) day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f fixture) instances(t *testing.T, parentID string) []model.Task {
	t.Helper()
	out, err := f.repo.ListTasks(context.Background(), repository.ListTasksOptions{ParentID: parentID})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	return out
}

type stubEvents struct {
	events []model.CalendarEvent
	err    error
}

func (s stubEvents) Name() string { return "stub" }

func (s stubEvents) ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	return s.events, s.err
}

// failingRepo injects store errors into selected calls.
type failingRepo struct {
	repository.Repository
	failCreateInstance bool
	failList           bool
}

var errStore = errors.New("store unavailable")

func (r failingRepo) CreateInstance(ctx context.Context, opt repository.CreateInstanceOptions) (model.Task, error) {
	if r.failCreateInstance {
		return model.Task{}, errStore
	}
	return r.Repository.CreateInstance(ctx, opt)
}

func (r failingRepo) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	if r.failList {
		return nil, errStore
	}
	return r.Repository.ListTasks(ctx, opt)
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }
