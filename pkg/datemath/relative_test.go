package datemath_test

import (
	"testing"
	"time"

	"task-planner/pkg/datemath"
)

func TestResolve(t *testing.T) {
	cal := datemath.UTC()
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		relative string
		want     time.Time
		wantErr  bool
	}{
		{name: "Today", relative: "today", want: startOfBase},
		{name: "Tomorrow", relative: "Tomorrow", want: startOfBase.AddDate(0, 0, 1)},
		{name: "Yesterday", relative: "yesterday", want: startOfBase.AddDate(0, 0, -1)},
		{name: "Day after tomorrow", relative: "the day  after tomorrow", want: startOfBase.AddDate(0, 0, 2)},
		{name: "In 3 days", relative: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{name: "In 2 weeks", relative: "in 2 weeks", want: startOfBase.AddDate(0, 0, 14)},
		{name: "In 1 month", relative: "in 1 month", want: startOfBase.AddDate(0, 1, 0)},
		{name: "Invalid duration pattern", relative: "in a few days", want: baseTime, wantErr: true},
		{name: "Next Monday (from Wed)", relative: "next monday", want: startOfBase.AddDate(0, 0, 5)},
		{name: "Next Wednesday (from Wed)", relative: "next wednesday", want: startOfBase.AddDate(0, 0, 7)},
		{name: "Invalid Next Weekday", relative: "next funday", want: baseTime, wantErr: true},
		{name: "Unsupported", relative: "the week after next", want: baseTime, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.Resolve(tt.relative, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Resolve() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := datemath.NewFixedClock(start)
	if !clock.Now().Equal(start) {
		t.Fatalf("Now() got = %v", clock.Now())
	}
	clock.Advance(2 * time.Hour)
	if want := start.Add(2 * time.Hour); !clock.Now().Equal(want) {
		t.Errorf("Advance() got = %v, want %v", clock.Now(), want)
	}
}
