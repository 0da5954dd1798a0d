package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/internal/timeline"
	"task-planner/pkg/ics"
)

func titles(items []timeline.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, timeline.Project(it).Title)
	}
	return out
}

func TestTimeline(t *testing.T) {
	tomorrow := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	events := stubEvents{events: []model.CalendarEvent{
		{UID: "e1", Title: "Design review", Start: tomorrow.Add(9 * time.Hour), End: tomorrow.Add(10 * time.Hour)},
		{UID: "e2", Title: "Company holiday", AllDay: true, Start: tomorrow, End: tomorrow.AddDate(0, 0, 1)},
	}}
	f := newFixture(t, events)
	ctx := context.Background()

	for _, text := range []string{"Dentist tomorrow at 3:30pm", "Standup every weekday 10am", "buy milk", "Review on Wednesday"} {
		if _, err := f.uc.CreateFromText(ctx, task.CreateFromTextInput{Text: text}); err != nil {
			t.Fatalf("CreateFromText(%q) error = %v", text, err)
		}
	}

	out, err := f.uc.Timeline(ctx, task.TimelineInput{From: tomorrow, To: f.cal.EndOfDay(tomorrow)})
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}

	want := []string{"Company holiday", "Design review", "Standup", "Dentist"}
	if got := titles(out.Items); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Items = %v, want %v", got, want)
	}
	if len(out.Floating) != 1 || out.Floating[0].Title != "Buy milk" {
		t.Errorf("Floating = %+v", out.Floating)
	}
}

func TestTimelineDefaultsToToday(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	if _, err := f.uc.CreateFromText(ctx, task.CreateFromTextInput{Text: "Standup every weekday 10am"}); err != nil {
		t.Fatalf("CreateFromText() error = %v", err)
	}

	out, err := f.uc.Timeline(ctx, task.TimelineInput{})
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if !out.From.Equal(f.day(2024, 5, 1)) || !f.cal.SameDay(out.To, out.From) {
		t.Errorf("window = %v..%v", out.From, out.To)
	}
	if got := titles(out.Items); len(got) != 1 || got[0] != "Standup" {
		t.Errorf("Items = %v", got)
	}
}

func TestTimelineSurvivesCalendarFailure(t *testing.T) {
	f := newFixture(t, stubEvents{err: errors.New("calendar down")})
	ctx := context.Background()
	if _, err := f.uc.CreateFromText(ctx, task.CreateFromTextInput{Text: "Call mom in 2 hours"}); err != nil {
		t.Fatalf("CreateFromText() error = %v", err)
	}

	out, err := f.uc.Timeline(ctx, task.TimelineInput{})
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if len(out.Items) != 1 {
		t.Errorf("Items = %v", titles(out.Items))
	}
}

func TestTimelineInvalidRange(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.uc.Timeline(context.Background(), task.TimelineInput{From: wednesday, To: wednesday.Add(-time.Minute)})
	if !errors.Is(err, task.ErrInvalidRange) {
		t.Errorf("Timeline() error = %v, want ErrInvalidRange", err)
	}
}

func TestOverdue(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	create := func(title string, date, at *time.Time) model.Task {
		out, err := f.uc.CreateOneOff(ctx, task.CreateOneOffInput{Fields: model.TaskFields{Title: title, ScheduledDate: date, ScheduledTime: at}})
		if err != nil {
			t.Fatalf("CreateOneOff() error = %v", err)
		}
		return out.Task
	}

	create("Earlier today", nil, timePtr(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)))
	create("Yesterday", timePtr(f.day(2024, 4, 30)), nil)
	create("Today all day", timePtr(f.day(2024, 5, 1)), nil)
	create("Later today", nil, timePtr(time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)))
	create("Someday", nil, nil)
	done := create("Done last week", timePtr(f.day(2024, 4, 24)), nil)
	if _, err := f.uc.Complete(ctx, done.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if _, err := f.uc.CreateRecurring(ctx, task.CreateRecurringInput{
		Fields: model.TaskFields{Title: "Journal"},
		Rule:   model.RecurrenceRule{Frequency: model.FrequencyDaily, StartDate: f.day(2024, 4, 20)},
	}); err != nil {
		t.Fatalf("CreateRecurring() error = %v", err)
	}

	got, err := f.uc.Overdue(ctx)
	if err != nil {
		t.Fatalf("Overdue() error = %v", err)
	}
	var names []string
	for _, tk := range got {
		names = append(names, tk.Title)
	}
	want := []string{"Yesterday", "Earlier today"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Errorf("Overdue() = %v, want %v", names, want)
	}

	f.clock.Advance(24 * time.Hour)
	got, _ = f.uc.Overdue(ctx)
	if len(got) != 5 {
		t.Errorf("a day later Overdue() returned %d tasks, want 5", len(got))
	}
}

func TestList(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	tpl := createDaily(t, f, "Journal")
	if _, err := f.uc.CreateFromText(ctx, task.CreateFromTextInput{Text: "buy milk"}); err != nil {
		t.Fatalf("CreateFromText() error = %v", err)
	}

	out, err := f.uc.List(ctx, task.ListInput{TemplatesOnly: true})
	if err != nil || out.Total != 1 || out.Tasks[0].ID != tpl.ID {
		t.Errorf("List(templates) = %+v, %v", out, err)
	}

	from, to := f.day(2024, 5, 3), f.day(2024, 5, 5)
	out, err = f.uc.List(ctx, task.ListInput{ParentID: tpl.ID, From: &from, To: &to})
	if err != nil || out.Total != 3 {
		t.Errorf("List(window) = %d tasks, %v", out.Total, err)
	}

	out, err = f.uc.List(ctx, task.ListInput{FloatingOnly: true})
	if err != nil || out.Total != 1 {
		t.Errorf("List(floating) = %d tasks, %v", out.Total, err)
	}

	if _, err := f.uc.List(ctx, task.ListInput{From: &to, To: &from}); !errors.Is(err, task.ErrInvalidRange) {
		t.Errorf("List(inverted) error = %v", err)
	}
}

func TestExportCalendar(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for _, text := range []string{"Standup every weekday 10am", "Renew passport 3/11/2026", "buy milk"} {
		if _, err := f.uc.CreateFromText(ctx, task.CreateFromTextInput{Text: text}); err != nil {
			t.Fatalf("CreateFromText(%q) error = %v", text, err)
		}
	}

	body, err := f.uc.ExportCalendar(ctx)
	if err != nil {
		t.Fatalf("ExportCalendar() error = %v", err)
	}
	if !strings.Contains(string(body), "RRULE:FREQ=WEEKLY") {
		t.Errorf("template exported without its rule:\n%s", body)
	}

	events, skipped, err := ics.Parse("export", body, time.UTC)
	if err != nil {
		t.Fatalf("exported feed does not parse: %v", err)
	}
	if skipped != 0 || len(events) != 2 {
		t.Fatalf("expected the template and the dated task only, got %d events (%d skipped)", len(events), skipped)
	}
	if events[0].Summary != "Standup" || events[0].AllDay || events[0].Start.Hour() != 10 {
		t.Errorf("unexpected template event %+v", events[0])
	}
	if events[1].Summary != "Renew passport" || !events[1].AllDay {
		t.Errorf("unexpected one-off event %+v", events[1])
	}
}
