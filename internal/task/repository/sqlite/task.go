package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-planner/internal/model"
	"task-planner/internal/task/repository"
)

const selectTask = `
	SELECT t.id, t.title, t.notes, t.scheduled_date, t.scheduled_time, t.duration_seconds,
		t.is_floating, t.is_completed, t.completed_at, t.priority, t.color, t.is_recurring,
		t.parent_id, t.created_at, t.updated_at,
		r.frequency, r.repeat_interval, r.days_of_week, r.day_of_month, r.start_date, r.end_date, r.occurrence_count
	FROM tasks t
	LEFT JOIN recurrence_rules r ON r.task_id = t.id`

// CreateTask inserts a one-off task.
func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	t := newTask(opt.Fields)
	if err := r.insert(ctx, t); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repository.ErrFailedToInsert
	}
	return r.GetTask(ctx, t.ID)
}

// CreateTemplate inserts a template and its rule in one transaction.
func (r *implRepository) CreateTemplate(ctx context.Context, opt repository.CreateTemplateOptions) (model.Task, error) {
	t := newTask(opt.Fields)
	t.IsRecurring = true
	t.IsFloating = false
	rule := opt.Rule
	t.Rule = &rule

	if err := r.insert(ctx, t); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTemplate"), err)
		return model.Task{}, repository.ErrFailedToInsert
	}
	return r.GetTask(ctx, t.ID)
}

// CreateInstance inserts a task materialized from a template.
func (r *implRepository) CreateInstance(ctx context.Context, opt repository.CreateInstanceOptions) (model.Task, error) {
	t := newTask(opt.Fields)
	day := r.cal.StartOfDay(opt.Date)
	t.ScheduledDate = &day
	t.ParentID = opt.ParentID
	t.IsFloating = false

	if err := r.insert(ctx, t); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateInstance"), err)
		return model.Task{}, repository.ErrFailedToInsert
	}
	return r.GetTask(ctx, t.ID)
}

// FindInstance returns the instance of a template on a calendar day, or a zero value.
func (r *implRepository) FindInstance(ctx context.Context, opt repository.FindInstanceOptions) (model.Task, error) {
	query := selectTask + ` WHERE t.parent_id = ? AND t.scheduled_day = ? LIMIT 1`

	t, err := r.scanOne(r.db.QueryRowContext(ctx, query, opt.ParentID, r.cal.DayKey(opt.Date)))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("FindInstance"), err)
		return model.Task{}, repository.ErrFailedToGet
	}
	return t, nil
}

// GetTask returns the task with id, or a zero value.
func (r *implRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	t, err := r.scanOne(r.db.QueryRowContext(ctx, selectTask+` WHERE t.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetTask"), err)
		return model.Task{}, repository.ErrFailedToGet
	}
	return t, nil
}

// ListTasks returns matching tasks, dated ones first by start.
func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	mods, args := r.buildListQuery(opt)
	rows, err := r.db.QueryContext(ctx, selectTask+mods, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTasks"), err)
		return nil, repository.ErrFailedToList
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := r.scanOne(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListTasks"), err)
			return nil, repository.ErrFailedToList
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListTasks"), err)
		return nil, repository.ErrFailedToList
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		si, oki := tasks[i].Start()
		sj, okj := tasks[j].Start()
		if oki != okj {
			return oki
		}
		return oki && si.Before(sj)
	})
	return tasks, nil
}

// UpdateTask replaces the mutable fields of a task. A missing task yields a zero value.
func (r *implRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	const query = `
		UPDATE tasks
		SET title = ?, notes = ?, scheduled_date = ?, scheduled_day = ?, scheduled_time = ?,
			duration_seconds = ?, is_floating = CASE WHEN is_recurring = 1 OR parent_id != '' THEN 0 ELSE ? END,
			is_completed = ?, completed_at = ?, priority = ?, color = ?, updated_at = ?
		WHERE id = ?`

	f := opt.Fields
	res, err := r.db.ExecContext(ctx, query,
		f.Title, f.Notes, nullTime(f.ScheduledDate), r.nullDay(f.ScheduledDate), nullTime(f.ScheduledTime),
		int64(f.Duration/time.Second), f.IsFloating,
		opt.IsCompleted, nullTime(opt.CompletedAt), int(f.Priority), f.Color, time.Now().UTC(),
		opt.ID,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, repository.ErrFailedToUpdate
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Task{}, nil
	}
	return r.GetTask(ctx, opt.ID)
}

// DeleteTask removes one task. Its rule goes with it; instances are untouched.
func (r *implRepository) DeleteTask(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTask"), err)
		return repository.ErrFailedToDelete
	}
	return nil
}

func (r *implRepository) insert(ctx context.Context, t model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, title, notes, scheduled_date, scheduled_day, scheduled_time, duration_seconds,
			is_floating, is_completed, completed_at, priority, color, is_recurring, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Notes, nullTime(t.ScheduledDate), r.nullDay(t.ScheduledDate), nullTime(t.ScheduledTime),
		int64(t.Duration/time.Second), t.IsFloating, t.IsCompleted, nullTime(t.CompletedAt),
		int(t.Priority), t.Color, t.IsRecurring, t.ParentID, t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	if t.Rule != nil {
		rule := t.Rule
		_, err = tx.ExecContext(ctx, `
			INSERT INTO recurrence_rules (task_id, frequency, repeat_interval, days_of_week, day_of_month,
				start_date, end_date, occurrence_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, string(rule.Frequency), rule.Step(), encodeDays(rule.DaysOfWeek), nullInt(rule.DayOfMonth),
			rule.StartDate.UTC(), nullTime(rule.EndDate), nullInt(rule.OccurrenceCount),
		)
		if err != nil {
			return fmt.Errorf("insert rule: %w", err)
		}
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *implRepository) scanOne(row scanner) (model.Task, error) {
	var (
		t                                         model.Task
		scheduledDate, scheduledTime, completedAt sql.NullTime
		durationSeconds                           int64
		priority                                  int
		frequency, days                           sql.NullString
		interval, dayOfMonth, occurrenceCount     sql.NullInt64
		ruleStart, ruleEnd                        sql.NullTime
	)

	err := row.Scan(
		&t.ID, &t.Title, &t.Notes, &scheduledDate, &scheduledTime, &durationSeconds,
		&t.IsFloating, &t.IsCompleted, &completedAt, &priority, &t.Color, &t.IsRecurring,
		&t.ParentID, &t.CreatedAt, &t.UpdatedAt,
		&frequency, &interval, &days, &dayOfMonth, &ruleStart, &ruleEnd, &occurrenceCount,
	)
	if err != nil {
		return model.Task{}, err
	}

	loc := r.cal.Location()
	t.ScheduledDate = timePtr(scheduledDate, loc)
	t.ScheduledTime = timePtr(scheduledTime, loc)
	t.CompletedAt = timePtr(completedAt, loc)
	t.Duration = time.Duration(durationSeconds) * time.Second
	t.Priority = model.Priority(priority)
	t.CreatedAt = t.CreatedAt.In(loc)
	t.UpdatedAt = t.UpdatedAt.In(loc)

	if frequency.Valid {
		t.Rule = &model.RecurrenceRule{
			Frequency:       model.Frequency(frequency.String),
			Interval:        int(interval.Int64),
			DaysOfWeek:      decodeDays(days.String),
			DayOfMonth:      intPtr(dayOfMonth),
			StartDate:       ruleStart.Time.In(loc),
			EndDate:         timePtr(ruleEnd, loc),
			OccurrenceCount: intPtr(occurrenceCount),
		}
	}
	return t, nil
}

// buildListQuery builds the WHERE + ORDER clause for ListTasks.
func (r *implRepository) buildListQuery(opt repository.ListTasksOptions) (string, []any) {
	var conditions []string
	var args []any

	if opt.ParentID != "" {
		conditions = append(conditions, "t.parent_id = ?")
		args = append(args, opt.ParentID)
	}
	if opt.TemplatesOnly {
		conditions = append(conditions, "t.is_recurring = 1 AND r.task_id IS NOT NULL")
	}
	if opt.FloatingOnly {
		conditions = append(conditions, "t.is_floating = 1")
	}
	if opt.ExcludeCompleted {
		conditions = append(conditions, "t.is_completed = 0")
	}
	if opt.From != nil {
		conditions = append(conditions, "t.scheduled_day >= ?")
		args = append(args, r.cal.DayKey(*opt.From))
	}
	if opt.To != nil {
		conditions = append(conditions, "t.scheduled_day <= ?")
		args = append(args, r.cal.DayKey(*opt.To))
	}

	query := ""
	if len(conditions) > 0 {
		query = " WHERE " + strings.Join(conditions, " AND ")
	}
	return query + " ORDER BY t.created_at, t.rowid", args
}

func (r *implRepository) nullDay(t *time.Time) any {
	if t == nil {
		return nil
	}
	return r.cal.DayKey(*t)
}

func newTask(f model.TaskFields) model.Task {
	now := time.Now()
	return model.Task{
		ID:            uuid.NewString(),
		Title:         f.Title,
		Notes:         f.Notes,
		ScheduledDate: f.ScheduledDate,
		ScheduledTime: f.ScheduledTime,
		Duration:      f.Duration,
		IsFloating:    f.IsFloating,
		Priority:      f.Priority,
		Color:         f.Color,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func timePtr(v sql.NullTime, loc *time.Location) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.In(loc)
	return &t
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// encodeDays stores weekdays as "2,4,6".
func encodeDays(days []model.Weekday) string {
	parts := make([]string, 0, len(days))
	for _, d := range model.SortedWeekdays(days) {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

func decodeDays(s string) []model.Weekday {
	if s == "" {
		return nil
	}
	var days []model.Weekday
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		days = append(days, model.Weekday(n))
	}
	return days
}
