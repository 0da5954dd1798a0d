package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"task-planner/config"
	"task-planner/internal/eventsource"
	"task-planner/internal/task/repository"
	"task-planner/internal/task/repository/memory"
	"task-planner/internal/task/repository/sqlite"
	"task-planner/pkg/datemath"
	"task-planner/pkg/gcalendar"
	"task-planner/pkg/ics"
	"task-planner/pkg/log"
)

const icsFetchTimeout = 20 * time.Second

// openRepository returns the configured task store and its close function.
func openRepository(ctx context.Context, l log.Logger, cal *datemath.Calendar, cfg config.StorageConfig) (repository.Repository, func(), error) {
	switch cfg.Driver {
	case config.StorageSQLite:
		repo, err := sqlite.Open(ctx, l, cal, cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %w", err)
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				l.Warnf(ctx, "storage close: %v", err)
			}
		}, nil
	default:
		return memory.New(l, cal), func() {}, nil
	}
}

// eventSources builds every configured calendar source. It returns nil when
// none is available so the timeline shows tasks only.
func eventSources(ctx context.Context, l log.Logger, loc *time.Location, cfg *config.Config) eventsource.Source {
	var sources []eventsource.Source

	if cfg.GoogleCalendar.Enabled() {
		client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if err != nil {
			l.Warnf(ctx, "Google Calendar not available (optional): %v", err)
		} else {
			for _, id := range cfg.GoogleCalendar.CalendarIDs {
				sources = append(sources, eventsource.NewGoogle(client, id, cfg.GoogleCalendar.Color, loc))
			}
			l.Infof(ctx, "Google Calendar initialized with %d calendar(s)", len(cfg.GoogleCalendar.CalendarIDs))
		}
	}

	if len(cfg.ICS.Feeds) > 0 {
		fetcher := ics.NewFetcher(l, &http.Client{Timeout: icsFetchTimeout})
		for _, f := range cfg.ICS.Feeds {
			sources = append(sources, eventsource.NewICS(l, fetcher, ics.Feed{ID: f.ID, URL: f.URL, Color: f.Color}, loc))
		}
		l.Infof(ctx, "Subscribed to %d ICS feed(s)", len(cfg.ICS.Feeds))
	}

	if len(sources) == 0 {
		return nil
	}
	return eventsource.NewMulti(l, sources...)
}
