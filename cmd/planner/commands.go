package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"task-planner/internal/model"
	"task-planner/internal/recurrence"
	"task-planner/internal/task"
	"task-planner/pkg/datemath"
)

func parseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [text]",
		Short: "Show how a sentence would be understood, without saving it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build()
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return task.ErrEmptyInput
			}
			return writeYAML(cmd.OutOrStdout(), newDraftView(a.pipeline.Parse(text)))
		},
	}
}

func addCmd(opts *options) *cobra.Command {
	var (
		notes    string
		priority int
		color    string
	)

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Create a task or recurring template from a sentence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if priority < 0 || priority > 3 {
				return fmt.Errorf("--priority must be between 0 and 3")
			}
			a, err := opts.build()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			uc, closeFn, err := a.useCase(ctx, opts.dbPath)
			if err != nil {
				return err
			}
			defer closeFn()

			out, err := uc.CreateFromText(ctx, task.CreateFromTextInput{
				Text:     strings.Join(args, " "),
				Notes:    notes,
				Priority: model.Priority(priority),
				Color:    color,
			})
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), addView{Task: newTaskView(out.Task), Materialized: out.Materialized})
		},
	}

	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes attached to the task")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "Priority 0 (none) to 3 (high)")
	cmd.Flags().StringVar(&color, "color", "", "Display color")

	return cmd
}

func listCmd(opts *options) *cobra.Command {
	var (
		templates bool
		floating  bool
		pending   bool
		parent    string
		from      string
		to        string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build()
			if err != nil {
				return err
			}

			input := task.ListInput{
				ParentID:         parent,
				TemplatesOnly:    templates,
				FloatingOnly:     floating,
				ExcludeCompleted: pending,
			}
			if from != "" {
				t, err := parseDay(a, from)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				input.From = &t
			}
			if to != "" {
				t, err := parseDay(a, to)
				if err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				end := a.cal.EndOfDay(t)
				input.To = &end
			}

			ctx := cmd.Context()
			uc, closeFn, err := a.useCase(ctx, opts.dbPath)
			if err != nil {
				return err
			}
			defer closeFn()

			out, err := uc.List(ctx, input)
			if err != nil {
				return err
			}
			view := listView{Total: out.Total, Tasks: make([]taskView, 0, len(out.Tasks))}
			for _, t := range out.Tasks {
				view.Tasks = append(view.Tasks, newTaskView(t))
			}
			return writeYAML(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().BoolVar(&templates, "templates", false, "Only recurring templates")
	cmd.Flags().BoolVar(&floating, "floating", false, "Only floating tasks")
	cmd.Flags().BoolVar(&pending, "pending", false, "Hide completed tasks")
	cmd.Flags().StringVar(&parent, "parent", "", "Only instances of this template")
	cmd.Flags().StringVar(&from, "from", "", "Scheduled on or after this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Scheduled on or before this day (YYYY-MM-DD)")

	return cmd
}

func occurrencesCmd(opts *options) *cobra.Command {
	var (
		rrule      string
		every      string
		interval   int
		days       []string
		dayOfMonth int
		start      string
		until      string
		count      int
		from       string
		windowDays int
	)

	cmd := &cobra.Command{
		Use:   "occurrences",
		Short: "Expand a recurrence rule over a date range",
		Long: `Expand a recurrence rule over [from, from + window days].

The rule is either an RRULE (--rrule) or built from --every and its options.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build()
			if err != nil {
				return err
			}

			rangeStart := a.cal.StartOfDay(a.clock.Now())
			if from != "" {
				if rangeStart, err = parseDay(a, from); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			}
			anchor := rangeStart
			if start != "" {
				if anchor, err = parseDay(a, start); err != nil {
					return fmt.Errorf("--start: %w", err)
				}
			}

			var rule model.RecurrenceRule
			switch {
			case rrule != "":
				rule, err = recurrence.FromRRule(strings.TrimPrefix(rrule, "RRULE:"), anchor)
				if err != nil {
					return err
				}
			case every != "":
				freq, err := model.ParseFrequency(every)
				if err != nil {
					return err
				}
				rule = model.RecurrenceRule{Frequency: freq, Interval: interval, StartDate: anchor}
				for _, d := range days {
					wd, err := parseWeekday(d)
					if err != nil {
						return err
					}
					rule.DaysOfWeek = append(rule.DaysOfWeek, wd)
				}
				if dayOfMonth > 0 {
					rule.DayOfMonth = &dayOfMonth
				}
				if count > 0 {
					rule.OccurrenceCount = &count
				}
				if until != "" {
					end, err := parseDay(a, until)
					if err != nil {
						return fmt.Errorf("--until: %w", err)
					}
					rule.EndDate = &end
				}
			default:
				return errors.New("either --rrule or --every is required")
			}

			if windowDays < 0 {
				return task.ErrInvalidRange
			}
			rangeEnd := a.cal.EndOfDay(a.cal.AddUnits(rangeStart, windowDays, datemath.Day))

			view := occurrencesView{
				From:  rangeStart.Format(dateLayout),
				To:    rangeEnd.Format(dateLayout),
				Dates: []string{},
			}
			if rr, err := recurrence.ToRRule(rule); err == nil {
				view.RRule = rr
			}
			for _, d := range a.engine.Occurrences(rule, rangeStart, rangeEnd) {
				view.Dates = append(view.Dates, d.Format(dateLayout))
			}
			return writeYAML(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringVar(&rrule, "rrule", "", "RFC 5545 rule, e.g. FREQ=WEEKLY;BYDAY=MO,WE")
	cmd.Flags().StringVar(&every, "every", "", "Frequency: daily, weekly, monthly, yearly or custom")
	cmd.Flags().IntVar(&interval, "interval", 1, "Repeat every N units")
	cmd.Flags().StringSliceVar(&days, "days", nil, "Weekdays for weekly rules, e.g. mon,wed,fri")
	cmd.Flags().IntVar(&dayOfMonth, "day-of-month", 0, "Day of month for monthly rules")
	cmd.Flags().StringVar(&start, "start", "", "Rule start date (default: --from)")
	cmd.Flags().StringVar(&until, "until", "", "Rule end date, exclusive")
	cmd.Flags().IntVar(&count, "count", 0, "Total number of occurrences counted from the start date")
	cmd.Flags().StringVar(&from, "from", "", "First day of the range (default: today)")
	cmd.Flags().IntVarP(&windowDays, "window", "w", 30, "Days after --from to include")

	return cmd
}

func parseDay(a *app, s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, a.cal.Location())
	if err != nil {
		return time.Time{}, err
	}
	return a.cal.StartOfDay(t), nil
}

var weekdayNames = map[string]model.Weekday{
	"sun": model.Sunday, "sunday": model.Sunday,
	"mon": model.Monday, "monday": model.Monday,
	"tue": model.Tuesday, "tuesday": model.Tuesday,
	"wed": model.Wednesday, "wednesday": model.Wednesday,
	"thu": model.Thursday, "thursday": model.Thursday,
	"fri": model.Friday, "friday": model.Friday,
	"sat": model.Saturday, "saturday": model.Saturday,
}

func parseWeekday(s string) (model.Weekday, error) {
	if wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return wd, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
