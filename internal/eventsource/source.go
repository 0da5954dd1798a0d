package eventsource

import (
	"context"
	"errors"
	"sort"
	"time"

	"task-planner/internal/model"
	pkgLog "task-planner/pkg/log"
)

var ErrInvalidRange = errors.New("eventsource: range end before start")

// Source reads events from an external calendar. Events are read-only.
type Source interface {
	Name() string
	ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error)
}

// Multi merges several sources. A failing source is logged and skipped so
// one broken feed never hides the others.
type Multi struct {
	l       pkgLog.Logger
	sources []Source
}

func NewMulti(l pkgLog.Logger, sources ...Source) *Multi {
	return &Multi{l: l, sources: sources}
}

func (m *Multi) Name() string {
	return "multi"
}

// Len returns the number of configured sources.
func (m *Multi) Len() int {
	return len(m.sources)
}

// ListEvents returns the events of every healthy source sorted by start.
// The error is non-nil only when every source failed.
func (m *Multi) ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	events := make([]model.CalendarEvent, 0)
	var errs []error
	for _, src := range m.sources {
		got, err := src.ListEvents(ctx, from, to)
		if err != nil {
			m.l.Warnf(ctx, "eventsource.Multi.ListEvents: source %s failed: %v", src.Name(), err)
			errs = append(errs, err)
			continue
		}
		events = append(events, got...)
	}
	if len(m.sources) > 0 && len(errs) == len(m.sources) {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events, nil
}
