package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"task-planner/internal/intake"
	"task-planner/internal/model"
	"task-planner/internal/recurrence"
	"task-planner/internal/task"
	"task-planner/internal/task/repository"
	"task-planner/internal/task/repository/memory"
)

func createDaily(t *testing.T, f fixture, title string) model.Task {
	t.Helper()
	out, err := f.uc.CreateRecurring(context.Background(), task.CreateRecurringInput{
		Fields: model.TaskFields{Title: title},
		Rule:   model.RecurrenceRule{Frequency: model.FrequencyDaily, Interval: 1},
	})
	if err != nil {
		t.Fatalf("CreateRecurring() error = %v", err)
	}
	return out.Task
}

func TestMaterializeIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	tpl := createDaily(t, f, "Journal")

	n, err := f.uc.Materialize(context.Background(), tpl.ID, wednesday, 30)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second materialization created %d instances", n)
	}
	if got := len(f.instances(t, tpl.ID)); got != 31 {
		t.Errorf("instances = %d, want 31", got)
	}
}

func TestMaterializeExtendsWindow(t *testing.T) {
	f := newFixture(t, nil)
	tpl := createDaily(t, f, "Journal")

	// May 1 + 40 days is June 10, ten days past the first window.
	n, err := f.uc.Materialize(context.Background(), tpl.ID, wednesday, 40)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if n != 10 {
		t.Errorf("Materialize() = %d, want 10", n)
	}
}

func TestMaterializeErrors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	oneOff, err := f.uc.CreateOneOff(ctx, task.CreateOneOffInput{Fields: model.TaskFields{Title: "Once"}})
	if err != nil {
		t.Fatalf("CreateOneOff() error = %v", err)
	}
	tpl := createDaily(t, f, "Journal")

	tests := []struct {
		name    string
		id      string
		window  int
		wantErr error
	}{
		{name: "Unknown id", id: "missing", window: 30, wantErr: task.ErrTaskNotFound},
		{name: "Not a template", id: oneOff.Task.ID, window: 30, wantErr: task.ErrNotATemplate},
		{name: "Negative window", id: tpl.ID, window: -1, wantErr: task.ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.uc.Materialize(ctx, tt.id, wednesday, tt.window); !errors.Is(err, tt.wantErr) {
				t.Errorf("Materialize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMaterializeConcurrentCallsDoNotDuplicate(t *testing.T) {
	f := newFixture(t, nil)
	tpl := createDaily(t, f, "Journal")

	const callers = 20
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := f.uc.Materialize(context.Background(), tpl.ID, wednesday, 60)
			if err != nil {
				t.Errorf("Materialize() error = %v", err)
				return
			}
			mu.Lock()
			total += n
			mu.Unlock()
		}()
	}
	wg.Wait()

	// May 1 + 60 days is June 30; June was not materialized yet.
	if total != 30 {
		t.Errorf("created %d instances across callers, want 30", total)
	}

	seen := make(map[string]bool)
	for _, inst := range f.instances(t, tpl.ID) {
		key := f.cal.DayKey(*inst.ScheduledDate)
		if seen[key] {
			t.Errorf("duplicate instance on %s", key)
		}
		seen[key] = true
	}
	if len(seen) != 61 {
		t.Errorf("distinct instance days = %d, want 61", len(seen))
	}
}

func TestMaterializeAll(t *testing.T) {
	f := newFixture(t, nil)
	a := createDaily(t, f, "Journal")
	b := createDaily(t, f, "Stretch")

	f.clock.Advance(10 * 24 * time.Hour)
	out, err := f.uc.MaterializeAll(context.Background())
	if err != nil {
		t.Fatalf("MaterializeAll() error = %v", err)
	}
	want := task.MaterializeAllOutput{Templates: 2, Created: 20}
	if out != want {
		t.Errorf("MaterializeAll() = %+v, want %+v", out, want)
	}
	for _, tpl := range []model.Task{a, b} {
		if got := len(f.instances(t, tpl.ID)); got != 41 {
			t.Errorf("template %s has %d instances, want 41", tpl.Title, got)
		}
	}
}

func TestMaterializeAllCountsFailures(t *testing.T) {
	f := newFixture(t, nil)
	mem := memory.New(&mockLogger{}, f.cal)
	ctx := context.Background()
	if _, err := mem.CreateTemplate(ctx, repository.CreateTemplateOptions{
		Fields: model.TaskFields{Title: "Broken"},
		Rule:   model.RecurrenceRule{Frequency: model.FrequencyDaily, Interval: 1, StartDate: f.day(2024, 5, 1)},
	}); err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	uc := New(&mockLogger{}, failingRepo{Repository: mem, failCreateInstance: true},
		recurrence.New(f.cal), intake.New(f.cal, f.clock, intake.DefaultConfig()), f.clock, nil, task.Settings{})
	defer uc.Close()

	out, err := uc.MaterializeAll(ctx)
	if err != nil {
		t.Fatalf("MaterializeAll() error = %v", err)
	}
	if out.Templates != 1 || out.Failed != 1 || out.Created != 0 {
		t.Errorf("MaterializeAll() = %+v", out)
	}

	uc2 := New(&mockLogger{}, failingRepo{Repository: mem, failList: true},
		recurrence.New(f.cal), intake.New(f.cal, f.clock, intake.DefaultConfig()), f.clock, nil, task.Settings{})
	defer uc2.Close()
	if _, err := uc2.MaterializeAll(ctx); !errors.Is(err, errStore) {
		t.Errorf("MaterializeAll() error = %v, want store error", err)
	}
}
