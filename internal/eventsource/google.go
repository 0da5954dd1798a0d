package eventsource

import (
	"context"
	"time"

	"task-planner/internal/model"
	"task-planner/pkg/gcalendar"
)

// CalendarClient abstracts the Google Calendar API for mocking.
type CalendarClient interface {
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
}

// googleColors maps Google event color ids onto hex colors.
var googleColors = map[string]string{
	"1":  "#7986cb",
	"2":  "#33b679",
	"3":  "#8e24aa",
	"4":  "#e67c73",
	"5":  "#f6bf26",
	"6":  "#f4511e",
	"7":  "#039be5",
	"8":  "#616161",
	"9":  "#3f51b5",
	"10": "#0b8043",
	"11": "#d50000",
}

// Google reads one Google calendar.
type Google struct {
	client     CalendarClient
	calendarID string
	color      string
	loc        *time.Location
}

func NewGoogle(client CalendarClient, calendarID, color string, loc *time.Location) *Google {
	return &Google{client: client, calendarID: calendarID, color: color, loc: loc}
}

func (g *Google) Name() string {
	return "google:" + g.calendarID
}

func (g *Google) ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	events, err := g.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: g.calendarID,
		TimeMin:    from,
		TimeMax:    to,
		Location:   g.loc,
	})
	if err != nil {
		return nil, err
	}

	out := make([]model.CalendarEvent, 0, len(events))
	for _, ev := range events {
		color := g.color
		if c, ok := googleColors[ev.ColorID]; ok {
			color = c
		}
		out = append(out, model.CalendarEvent{
			SourceID: g.Name(),
			UID:      ev.ID,
			Title:    ev.Summary,
			Location: ev.Location,
			AllDay:   ev.AllDay,
			Start:    ev.StartTime,
			End:      ev.EndTime,
			Color:    color,
		})
	}
	return out, nil
}
