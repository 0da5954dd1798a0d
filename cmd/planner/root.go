package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"task-planner/config"
	"task-planner/internal/intake"
	"task-planner/internal/recurrence"
	"task-planner/internal/task"
	"task-planner/internal/task/repository"
	"task-planner/internal/task/repository/memory"
	"task-planner/internal/task/repository/sqlite"
	"task-planner/internal/task/usecase"
	"task-planner/pkg/datemath"
	"task-planner/pkg/log"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	timezone   string
	dbPath     string
	now        string
	verbose    bool
}

// app holds what a subcommand needs, built from config plus flags.
type app struct {
	cfg      *config.Config
	l        log.Logger
	cal      *datemath.Calendar
	clock    datemath.Clock
	engine   *recurrence.Engine
	pipeline *intake.Pipeline
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Planner - capture tasks in plain language and expand recurring ones",
		Long: `Planner works on the same task store as the API server.

Examples:
  planner parse "Gym Mon Wed Fri 6pm"
  planner add "Pay rent on 1st every month" --db planner.db
  planner list --pending
  planner occurrences --rrule "FREQ=WEEKLY;BYDAY=MO,TH" --from 2024-05-01`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: config.yaml in ./config, . or /etc/planner)")
	flags.StringVar(&opts.timezone, "timezone", "", "Override planner.timezone")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides storage settings)")
	flags.StringVar(&opts.now, "now", "", "Pretend the current time is this RFC 3339 timestamp")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(parseCmd(opts))
	rootCmd.AddCommand(addCmd(opts))
	rootCmd.AddCommand(listCmd(opts))
	rootCmd.AddCommand(occurrencesCmd(opts))
	rootCmd.AddCommand(authCmd(opts))

	return rootCmd
}

func (o *options) build() (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	tz := cfg.Planner.Timezone
	if o.timezone != "" {
		tz = o.timezone
	}
	cal, err := datemath.New(tz)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}

	var clock datemath.Clock = datemath.SystemClock{}
	if o.now != "" {
		t, err := time.Parse(time.RFC3339, o.now)
		if err != nil {
			return nil, fmt.Errorf("--now: %w", err)
		}
		clock = datemath.NewFixedClock(t.In(cal.Location()))
	}

	level := "error"
	if o.verbose {
		level = "debug"
	}
	l := log.Init(log.ZapConfig{Level: level, Mode: "development", Encoding: "console"})

	return &app{
		cfg:      cfg,
		l:        l,
		cal:      cal,
		clock:    clock,
		engine:   recurrence.New(cal),
		pipeline: intake.New(cal, clock, intake.DefaultConfig().WithPeriods(cfg.Planner.Periods)),
	}, nil
}

// useCase opens the task store and returns a use case over it. The returned
// function stops the writer and closes the store.
func (a *app) useCase(ctx context.Context, dbPath string) (task.UseCase, func(), error) {
	var (
		repo    repository.Repository
		closeDB = func() {}
	)

	path := dbPath
	if path == "" && a.cfg.Storage.Driver == config.StorageSQLite {
		path = a.cfg.Storage.Path
	}
	if path != "" {
		db, err := sqlite.Open(ctx, a.l, a.cal, path)
		if err != nil {
			return nil, nil, err
		}
		repo = db
		closeDB = func() { db.Close() }
	} else {
		a.l.Warn(ctx, "No database configured, tasks are kept in memory for this run only")
		repo = memory.New(a.l, a.cal)
	}

	uc := usecase.New(a.l, repo, a.engine, a.pipeline, a.clock, nil, task.Settings{
		WindowDays:      a.cfg.Planner.WindowDays,
		DefaultDuration: a.cfg.Planner.DefaultDuration,
		ReminderOffset:  a.cfg.Planner.ReminderOffset,
	})
	return uc, func() {
		uc.Close()
		closeDB()
	}, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
