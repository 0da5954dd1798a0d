package datemath_test

import (
	"testing"
	"time"

	"task-planner/internal/model"
	"task-planner/pkg/datemath"
)

func TestNew(t *testing.T) {
	_, err := datemath.New("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Fatalf("unexpected error creating valid calendar: %v", err)
	}

	_, err = datemath.New("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestAddUnits(t *testing.T) {
	cal := datemath.UTC()

	tests := []struct {
		name   string
		base   time.Time
		amount int
		unit   datemath.Unit
		want   time.Time
	}{
		{
			name:   "Days keep wall clock",
			base:   time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC),
			amount: 3,
			unit:   datemath.Day,
			want:   time.Date(2024, 5, 4, 15, 30, 0, 0, time.UTC),
		},
		{
			name:   "Weeks",
			base:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			amount: 2,
			unit:   datemath.Week,
			want:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "Month clamps Jan 31 to Feb 29 in a leap year",
			base:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			amount: 1,
			unit:   datemath.Month,
			want:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "Month crosses year",
			base:   time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
			amount: 3,
			unit:   datemath.Month,
			want:   time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "Negative months",
			base:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			amount: -1,
			unit:   datemath.Month,
			want:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "Year clamps Feb 29",
			base:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			amount: 1,
			unit:   datemath.Year,
			want:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cal.AddUnits(tt.base, tt.amount, tt.unit)
			if !got.Equal(tt.want) {
				t.Errorf("AddUnits() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateFromYMD(t *testing.T) {
	cal := datemath.UTC()

	if _, ok := cal.DateFromYMD(2025, time.February, 30); ok {
		t.Errorf("expected Feb 30 to be rejected")
	}
	if _, ok := cal.DateFromYMD(2025, time.April, 31); ok {
		t.Errorf("expected Apr 31 to be rejected")
	}
	got, ok := cal.DateFromYMD(2024, time.February, 29)
	if !ok {
		t.Fatalf("expected Feb 29 2024 to be valid")
	}
	if want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("DateFromYMD() got = %v, want %v", got, want)
	}
}

func TestWeekdayOf(t *testing.T) {
	cal := datemath.UTC()
	// Wednesday, May 1, 2024
	if got := cal.WeekdayOf(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)); got != model.Wednesday {
		t.Errorf("WeekdayOf() got = %v, want Wednesday", got)
	}
	if got := cal.WeekdayOf(time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC)); got != model.Sunday || int(got) != 1 {
		t.Errorf("WeekdayOf() got = %d, want 1 (Sunday)", got)
	}
}

func TestNextWeekday(t *testing.T) {
	cal := datemath.UTC()
	base := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	if got := cal.NextWeekday(base, model.Monday); !got.Equal(startOfBase.AddDate(0, 0, 5)) {
		t.Errorf("NextWeekday(Mon) got = %v", got)
	}
	if got := cal.NextWeekday(base, model.Wednesday); !got.Equal(startOfBase.AddDate(0, 0, 7)) {
		t.Errorf("NextWeekday(Wed) should skip today, got = %v", got)
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	cal := datemath.InLocation(loc)

	// 20:00 UTC is 03:00 next day in UTC+7
	got := cal.StartOfDay(time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC))
	want := time.Date(2024, 5, 2, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() got = %v, want %v", got, want)
	}

	end := cal.EndOfDay(want)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("EndOfDay() got = %v", end)
	}
}

func TestSameDayAndDaysBetween(t *testing.T) {
	cal := datemath.UTC()
	a := time.Date(2024, 5, 1, 0, 5, 0, 0, time.UTC)
	b := time.Date(2024, 5, 1, 23, 55, 0, 0, time.UTC)
	if !cal.SameDay(a, b) {
		t.Errorf("expected same day")
	}
	if got := cal.DaysBetween(a, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)); got != 31 {
		t.Errorf("DaysBetween() got = %d, want 31", got)
	}
}
