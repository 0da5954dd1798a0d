package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"task-planner/internal/task/repository"
	"task-planner/pkg/datemath"
	"task-planner/pkg/log"
)

// implRepository stores tasks in a single SQLite table.
type implRepository struct {
	l   log.Logger
	db  *sql.DB
	cal *datemath.Calendar
}

var _ repository.Repository = (*implRepository)(nil)

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, l log.Logger, cal *datemath.Calendar, path string) (*implRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.Open: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: %w", err)
	}
	// One connection keeps ":memory:" databases shared and matches the single writer.
	db.SetMaxOpenConns(1)

	r := New(l, db, cal)
	if err := r.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open migrate: %w", err)
	}
	return r, nil
}

// New wraps an already opened database.
func New(l log.Logger, db *sql.DB, cal *datemath.Calendar) *implRepository {
	if cal == nil {
		cal = datemath.UTC()
	}
	return &implRepository{l: l, db: db, cal: cal}
}

// Close closes the database.
func (r *implRepository) Close() error {
	return r.db.Close()
}

func (r *implRepository) migrate(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			scheduled_date DATETIME,
			scheduled_day TEXT,
			scheduled_time DATETIME,
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			is_floating INTEGER NOT NULL DEFAULT 0,
			is_completed INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME,
			priority INTEGER NOT NULL DEFAULT 0,
			color TEXT NOT NULL DEFAULT '',
			is_recurring INTEGER NOT NULL DEFAULT 0,
			parent_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS recurrence_rules (
			task_id TEXT PRIMARY KEY REFERENCES tasks(id) ON DELETE CASCADE,
			frequency TEXT NOT NULL,
			repeat_interval INTEGER NOT NULL DEFAULT 1,
			days_of_week TEXT NOT NULL DEFAULT '',
			day_of_month INTEGER,
			start_date DATETIME NOT NULL,
			end_date DATETIME,
			occurrence_count INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_parent_day ON tasks(parent_id, scheduled_day);
		CREATE INDEX IF NOT EXISTS idx_tasks_scheduled ON tasks(scheduled_date);
	`
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task.repository.sqlite.%s", method)
}
