package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"task-planner/internal/model"
	"task-planner/internal/task/repository"
)

// CreateTask stores a one-off task.
func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	t := r.newTask(opt.Fields)
	return r.insert(t), nil
}

// CreateTemplate stores a recurring template owning a copy of the rule.
func (r *implRepository) CreateTemplate(ctx context.Context, opt repository.CreateTemplateOptions) (model.Task, error) {
	t := r.newTask(opt.Fields)
	t.IsRecurring = true
	t.IsFloating = false
	t.Rule = copyRule(&opt.Rule)
	return r.insert(t), nil
}

// CreateInstance stores a task materialized from a template.
func (r *implRepository) CreateInstance(ctx context.Context, opt repository.CreateInstanceOptions) (model.Task, error) {
	t := r.newTask(opt.Fields)
	day := r.cal.StartOfDay(opt.Date)
	t.ScheduledDate = &day
	t.ParentID = opt.ParentID
	t.IsFloating = false
	return r.insert(t), nil
}

// FindInstance returns the instance of opt.ParentID on opt.Date's calendar day.
func (r *implRepository) FindInstance(ctx context.Context, opt repository.FindInstanceOptions) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		t := r.tasks[id]
		if t.ParentID != opt.ParentID || t.ScheduledDate == nil {
			continue
		}
		if r.cal.SameDay(*t.ScheduledDate, opt.Date) {
			return cloneTask(t), nil
		}
	}
	return model.Task{}, nil
}

// GetTask returns a zero-value task when id is unknown.
func (r *implRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, nil
	}
	return cloneTask(t), nil
}

// ListTasks returns matching tasks, dated ones first by start, then undated
// ones in creation order.
func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	r.mu.RLock()
	out := make([]model.Task, 0, len(r.order))
	for _, id := range r.order {
		t := r.tasks[id]
		if r.matches(t, opt) {
			out = append(out, cloneTask(t))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		si, oki := out[i].Start()
		sj, okj := out[j].Start()
		if oki != okj {
			return oki
		}
		return oki && si.Before(sj)
	})
	return out, nil
}

// UpdateTask replaces the mutable fields of a task. A missing task yields a zero value.
func (r *implRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[opt.ID]
	if !ok {
		return model.Task{}, nil
	}

	applyFields(&t, opt.Fields)
	if t.IsRecurring || t.ParentID != "" {
		t.IsFloating = false
	}
	t.IsCompleted = opt.IsCompleted
	t.CompletedAt = copyTime(opt.CompletedAt)
	t.UpdatedAt = time.Now()

	r.tasks[t.ID] = t
	return cloneTask(t), nil
}

// DeleteTask removes one task. It does not touch instances of a template.
func (r *implRepository) DeleteTask(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return nil
	}
	delete(r.tasks, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *implRepository) newTask(f model.TaskFields) model.Task {
	now := time.Now()
	t := model.Task{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyFields(&t, f)
	return t
}

func (r *implRepository) insert(t model.Task) model.Task {
	r.mu.Lock()
	r.tasks[t.ID] = t
	r.order = append(r.order, t.ID)
	r.mu.Unlock()
	return cloneTask(t)
}

func (r *implRepository) matches(t model.Task, opt repository.ListTasksOptions) bool {
	if opt.ParentID != "" && t.ParentID != opt.ParentID {
		return false
	}
	if opt.TemplatesOnly && !t.IsTemplate() {
		return false
	}
	if opt.FloatingOnly && !t.IsFloating {
		return false
	}
	if opt.ExcludeCompleted && t.IsCompleted {
		return false
	}
	if opt.From != nil || opt.To != nil {
		if t.ScheduledDate == nil {
			return false
		}
		if opt.From != nil && t.ScheduledDate.Before(r.cal.StartOfDay(*opt.From)) {
			return false
		}
		if opt.To != nil && t.ScheduledDate.After(*opt.To) {
			return false
		}
	}
	return true
}

func applyFields(t *model.Task, f model.TaskFields) {
	t.Title = f.Title
	t.Notes = f.Notes
	t.ScheduledDate = copyTime(f.ScheduledDate)
	t.ScheduledTime = copyTime(f.ScheduledTime)
	t.Duration = f.Duration
	t.IsFloating = f.IsFloating
	t.Priority = f.Priority
	t.Color = f.Color
}

// cloneTask copies pointer fields so callers cannot mutate stored records.
func cloneTask(t model.Task) model.Task {
	t.ScheduledDate = copyTime(t.ScheduledDate)
	t.ScheduledTime = copyTime(t.ScheduledTime)
	t.CompletedAt = copyTime(t.CompletedAt)
	t.Rule = copyRule(t.Rule)
	return t
}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyRule(r *model.RecurrenceRule) *model.RecurrenceRule {
	if r == nil {
		return nil
	}
	c := *r
	c.DaysOfWeek = append([]model.Weekday(nil), r.DaysOfWeek...)
	c.EndDate = copyTime(r.EndDate)
	if r.DayOfMonth != nil {
		v := *r.DayOfMonth
		c.DayOfMonth = &v
	}
	if r.OccurrenceCount != nil {
		v := *r.OccurrenceCount
		c.OccurrenceCount = &v
	}
	return &c
}
