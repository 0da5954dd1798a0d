package intake_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/intake"
	"task-planner/internal/model"
	"task-planner/pkg/datemath"
)

// Wednesday, 1 May 2024, 10:00 UTC.
var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newPipeline() *intake.Pipeline {
	return intake.New(datemath.UTC(), datemath.NewFixedClock(now), intake.DefaultConfig())
}

func at(y int, m time.Month, d, hour, minute int) time.Time {
	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	p := newPipeline()

	type want struct {
		title     string
		recurring bool
		frequency model.Frequency
		interval  int
		days      []model.Weekday
		dom       int
		date      *time.Time
		time      *time.Time
		floating  bool
	}

	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name  string
		input string
		want  want
	}{
		{
			name:  "Every weekday with clock time",
			input: "Standup every weekday 10am",
			want: want{
				title: "Standup", recurring: true, frequency: model.FrequencyWeekly, interval: 1,
				days: []model.Weekday{2, 3, 4, 5, 6},
				date: ptr(at(2024, 5, 1, 0, 0)), time: ptr(at(2024, 5, 1, 10, 0)),
			},
		},
		{
			name:  "Weekday list with pm time",
			input: "Gym Mon Wed Fri 6pm",
			want: want{
				title: "Gym", recurring: true, frequency: model.FrequencyWeekly, interval: 1,
				days: []model.Weekday{model.Monday, model.Wednesday, model.Friday},
				date: ptr(at(2024, 5, 1, 0, 0)), time: ptr(at(2024, 5, 1, 18, 0)),
			},
		},
		{
			name:  "Day of month",
			input: "Pay rent on 1st every month",
			want:  want{title: "Pay rent", recurring: true, frequency: model.FrequencyMonthly, interval: 1, dom: 1},
		},
		{
			name:  "Relative hours",
			input: "Call mom in 2 hours",
			want:  want{title: "Call mom", date: ptr(at(2024, 5, 1, 0, 0)), time: ptr(at(2024, 5, 1, 12, 0))},
		},
		{
			name:  "Relative an hour",
			input: "Call back in an hour",
			want:  want{title: "Call back", date: ptr(at(2024, 5, 1, 0, 0)), time: ptr(at(2024, 5, 1, 11, 0))},
		},
		{
			name:  "Plain text is floating",
			input: "buy milk",
			want:  want{title: "Buy milk", floating: true},
		},
		{
			name:  "Fillers are removed anywhere in the title",
			input: "Meet at the office",
			want:  want{title: "Meet office", floating: true},
		},
		{
			name:  "Article inside the title",
			input: "Read a book",
			want:  want{title: "Read book", floating: true},
		},
		{
			name:  "Lowercase sun is not Sunday",
			input: "Buy sun cream",
			want:  want{title: "Buy sun cream", floating: true},
		},
		{
			name:  "Leading Sat is not Saturday",
			input: "Sat exam prep",
			want:  want{title: "Sat exam prep", floating: true},
		},
		{
			name:  "Capitalized abbreviation after the title",
			input: "Gym Sat",
			want:  want{title: "Gym", date: ptr(at(2024, 5, 4, 0, 0))},
		},
		{
			name:  "Abbreviation after a modifier",
			input: "Picnic on sun",
			want:  want{title: "Picnic", date: ptr(at(2024, 5, 5, 0, 0))},
		},
		{
			name:  "Unambiguous abbreviation",
			input: "pay bills fri",
			want:  want{title: "Pay bills", date: ptr(at(2024, 5, 3, 0, 0))},
		},
		{
			name:  "Time is moved onto a later date",
			input: "Dentist tomorrow at 3:30pm",
			want:  want{title: "Dentist", date: ptr(at(2024, 5, 2, 0, 0)), time: ptr(at(2024, 5, 2, 15, 30))},
		},
		{
			name:  "Named period with weekday",
			input: "Lunch with Sam on Friday at noon",
			want:  want{title: "Lunch with Sam", date: ptr(at(2024, 5, 3, 0, 0)), time: ptr(at(2024, 5, 3, 12, 0))},
		},
		{
			name:  "Weekday matching today resolves a week ahead",
			input: "Review on Wednesday",
			want:  want{title: "Review", date: ptr(at(2024, 5, 8, 0, 0))},
		},
		{
			name:  "Next weekday",
			input: "Pitch next monday",
			want:  want{title: "Pitch", date: ptr(at(2024, 5, 6, 0, 0))},
		},
		{
			name:  "Day after tomorrow wins over tomorrow",
			input: "Report the day after tomorrow",
			want:  want{title: "Report", date: ptr(at(2024, 5, 3, 0, 0))},
		},
		{
			name:  "In N days",
			input: "Follow up in 3 days",
			want:  want{title: "Follow up", date: ptr(at(2024, 5, 4, 0, 0))},
		},
		{
			name:  "Explicit slash date",
			input: "Renew passport 3/11/2026",
			want:  want{title: "Renew passport", date: ptr(at(2026, 11, 3, 0, 0))},
		},
		{
			name:  "Explicit interval",
			input: "Water plants every 3 days",
			want:  want{title: "Water plants", recurring: true, frequency: model.FrequencyDaily, interval: 3},
		},
		{
			name:  "Every other week on a weekday",
			input: "Team sync every other week on Tuesday",
			want: want{
				title: "Team sync", recurring: true, frequency: model.FrequencyWeekly, interval: 2,
				days: []model.Weekday{model.Tuesday},
			},
		},
		{
			name:  "Weekend with named period",
			input: "Backup every weekend morning",
			want: want{
				title: "Backup", recurring: true, frequency: model.FrequencyWeekly, interval: 1,
				days: []model.Weekday{model.Sunday, model.Saturday},
				date: ptr(at(2024, 5, 1, 0, 0)), time: ptr(at(2024, 5, 1, 9, 0)),
			},
		},
		{
			name:  "Daily keyword",
			input: "Meditate daily",
			want:  want{title: "Meditate", recurring: true, frequency: model.FrequencyDaily, interval: 1},
		},
		{
			name:  "Yearly keyword",
			input: "File taxes yearly",
			want:  want{title: "File taxes", recurring: true, frequency: model.FrequencyYearly, interval: 1},
		},
		{
			name:  "Midnight am",
			input: "Deploy 12am",
			want:  want{title: "Deploy", date: ptr(at(2024, 5, 1, 0, 0)), time: ptr(at(2024, 5, 1, 0, 0))},
		},
		{
			name:  "Bare hour after at",
			input: "Standup at 9",
			want:  want{title: "Standup", date: ptr(at(2024, 5, 1, 0, 0)), time: ptr(at(2024, 5, 1, 9, 0))},
		},
		{
			name:  "Bare number without at is not a time",
			input: "Buy 2 apples",
			want:  want{title: "Buy 2 apples", floating: true},
		},
		{
			name:  "Tonight",
			input: "Movie tonight",
			want:  want{title: "Movie", date: ptr(at(2024, 5, 1, 0, 0)), time: ptr(at(2024, 5, 1, 20, 0))},
		},
		{
			name:  "Only fillers falls back to the input",
			input: "on",
			want:  want{title: "On", floating: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Parse(tc.input)

			assert.Equal(t, tc.want.title, got.Title)
			assert.Equal(t, tc.want.recurring, got.IsRecurring)
			assert.Equal(t, tc.want.floating, got.IsFloating)

			if tc.want.recurring {
				assert.Equal(t, tc.want.frequency, got.Frequency)
				assert.Equal(t, tc.want.interval, got.Interval)
				if tc.want.days == nil {
					assert.Empty(t, got.DaysOfWeek)
				} else {
					assert.Equal(t, tc.want.days, got.DaysOfWeek)
				}
				if tc.want.dom == 0 {
					assert.Nil(t, got.DayOfMonth)
				} else {
					require.NotNil(t, got.DayOfMonth)
					assert.Equal(t, tc.want.dom, *got.DayOfMonth)
				}
			}

			if tc.want.date == nil {
				assert.Nil(t, got.ScheduledDate)
			} else {
				require.NotNil(t, got.ScheduledDate)
				assert.True(t, tc.want.date.Equal(*got.ScheduledDate), "date: want %s, got %s", tc.want.date, got.ScheduledDate)
			}

			if tc.want.time == nil {
				assert.Nil(t, got.ScheduledTime)
			} else {
				require.NotNil(t, got.ScheduledTime)
				assert.True(t, tc.want.time.Equal(*got.ScheduledTime), "time: want %s, got %s", tc.want.time, got.ScheduledTime)
			}
		})
	}
}

func TestParseIsRepeatable(t *testing.T) {
	p := newPipeline()
	for _, input := range []string{"Gym Mon Wed Fri 6pm", "Call mom in 2 hours", "Buy milk"} {
		assert.Equal(t, p.Parse(input), p.Parse(input))
	}
}

func TestParseUsesClock(t *testing.T) {
	clock := datemath.NewFixedClock(now)
	p := intake.New(datemath.UTC(), clock, intake.DefaultConfig())

	first := p.Parse("Ping in 30 min")
	require.NotNil(t, first.ScheduledTime)
	assert.True(t, first.ScheduledTime.Equal(at(2024, 5, 1, 10, 30)))

	clock.Advance(24 * time.Hour)
	second := p.Parse("Ping in 30 min")
	require.NotNil(t, second.ScheduledTime)
	assert.True(t, second.ScheduledTime.Equal(at(2024, 5, 2, 10, 30)))
}

func TestConfiguredPeriods(t *testing.T) {
	cfg := intake.Config{Periods: []intake.Period{{Name: "morning", Hour: 7, Minute: 30}}}
	p := intake.New(datemath.UTC(), datemath.NewFixedClock(now), cfg)

	got := p.Parse("Run in the morning")
	require.NotNil(t, got.ScheduledTime)
	assert.True(t, got.ScheduledTime.Equal(at(2024, 5, 1, 7, 30)))
	assert.Equal(t, "Run", got.Title)

	got = p.Parse("Dinner evening")
	assert.Nil(t, got.ScheduledTime, "evening is not configured")
}

func TestPassesInIsolation(t *testing.T) {
	t.Run("Recurrence pass claims only one rule", func(t *testing.T) {
		rest, draft := intake.RecurrencePass()("Sync every Mon and Thu weekly", model.ParsedDraft{})
		assert.True(t, draft.IsRecurring)
		assert.Equal(t, []model.Weekday{model.Monday, model.Thursday}, draft.DaysOfWeek)
		assert.Contains(t, rest, "weekly")
	})

	t.Run("Recurrence pass ignores a single weekday", func(t *testing.T) {
		rest, draft := intake.RecurrencePass()("Call on Friday", model.ParsedDraft{})
		assert.False(t, draft.IsRecurring)
		assert.Equal(t, "Call on Friday", rest)
	})

	t.Run("Day of month out of range is not a rule", func(t *testing.T) {
		_, draft := intake.RecurrencePass()("Odd on 45th every month", model.ParsedDraft{})
		assert.Equal(t, model.FrequencyMonthly, draft.Frequency)
		assert.Nil(t, draft.DayOfMonth)
	})

	t.Run("Time pass keeps an existing date", func(t *testing.T) {
		day := at(2024, 6, 10, 0, 0)
		_, draft := intake.TimePass(datemath.UTC(), now, intake.DefaultConfig())("x 7:15am", model.ParsedDraft{ScheduledDate: &day})
		require.NotNil(t, draft.ScheduledTime)
		assert.True(t, draft.ScheduledTime.Equal(at(2024, 6, 10, 7, 15)))
	})

	t.Run("Invalid clock time is left alone", func(t *testing.T) {
		rest, draft := intake.TimePass(datemath.UTC(), now, intake.DefaultConfig())("x 13pm", model.ParsedDraft{})
		assert.Nil(t, draft.ScheduledTime)
		assert.Equal(t, "x 13pm", rest)
	})

	t.Run("Title pass strips every filler", func(t *testing.T) {
		_, draft := intake.TitlePass()("the report for the team", model.ParsedDraft{})
		assert.Equal(t, "Report team", draft.Title)
	})
}

func TestConfigWithPeriods(t *testing.T) {
	base := intake.DefaultConfig()
	cfg := base.WithPeriods(map[string]string{"Morning": "07:30", "lunch": "12:30", "bad": "x"})

	found := map[string]intake.Period{}
	for _, p := range cfg.Periods {
		found[p.Name] = p
	}
	assert.Equal(t, intake.Period{Name: "morning", Hour: 7, Minute: 30}, found["morning"])
	assert.Equal(t, intake.Period{Name: "lunch", Hour: 12, Minute: 30}, found["lunch"])
	assert.NotContains(t, found, "bad")
	assert.Contains(t, found, "evening")

	assert.Equal(t, 9, base.Periods[0].Hour, "the receiver is not modified")
}
