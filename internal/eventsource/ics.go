package eventsource

import (
	"context"
	"time"

	"task-planner/internal/model"
	"task-planner/pkg/ics"
	pkgLog "task-planner/pkg/log"
)

// ICS reads one subscribed iCalendar feed.
type ICS struct {
	l       pkgLog.Logger
	fetcher *ics.Fetcher
	feed    ics.Feed
	loc     *time.Location
}

func NewICS(l pkgLog.Logger, fetcher *ics.Fetcher, feed ics.Feed, loc *time.Location) *ICS {
	return &ICS{l: l, fetcher: fetcher, feed: feed, loc: loc}
}

func (s *ICS) Name() string {
	return "ics:" + s.feed.ID
}

func (s *ICS) ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	res, err := s.fetcher.Fetch(ctx, s.feed)
	if err != nil {
		return nil, err
	}

	events, skipped, err := ics.Parse(s.feed.ID, res.Body, s.loc)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		s.l.Warnf(ctx, "eventsource.ICS.ListEvents: %s skipped %d malformed events", s.Name(), skipped)
	}

	occ, errs, err := ics.Expand(events, ics.ExpandOptions{From: from, To: to, Location: s.loc})
	if err != nil {
		return nil, err
	}
	for _, e := range errs {
		s.l.Warnf(ctx, "eventsource.ICS.ListEvents: %s: %v", s.Name(), e)
	}

	out := make([]model.CalendarEvent, 0, len(occ))
	for _, o := range occ {
		out = append(out, model.CalendarEvent{
			SourceID: s.Name(),
			UID:      o.UID,
			Title:    o.Summary,
			Location: o.Location,
			AllDay:   o.AllDay,
			Start:    o.Start,
			End:      o.End,
			Color:    s.feed.Color,
		})
	}
	return out, nil
}
