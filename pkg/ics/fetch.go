package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"task-planner/pkg/log"
)

var (
	ErrEmptyURL         = errors.New("ics: source url is empty")
	ErrNotModified      = errors.New("ics: 304 without a cached body")
	ErrUnexpectedStatus = errors.New("ics: unexpected status")
)

// Feed is one subscribed ICS calendar.
type Feed struct {
	ID    string
	URL   string
	Color string
}

// FetchResult is the outcome of fetching one feed.
type FetchResult struct {
	Feed      Feed
	Body      []byte
	FromCache bool
}

type cacheEntry struct {
	etag         string
	lastModified string
	body         []byte
	updatedAt    time.Time
}

// Fetcher downloads ICS feeds honouring ETag and Last-Modified, keeping the
// last good body per URL so a failing server does not blank the calendar.
type Fetcher struct {
	l      log.Logger
	client *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewFetcher creates a Fetcher. A nil client gets a 15 second timeout.
func NewFetcher(l log.Logger, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{
		l:      l,
		client: client,
		cache:  make(map[string]cacheEntry),
	}
}

// Fetch downloads a single feed.
func (f *Fetcher) Fetch(ctx context.Context, feed Feed) (FetchResult, error) {
	if feed.URL == "" {
		return FetchResult{}, ErrEmptyURL
	}

	f.mu.Lock()
	cached, hasCache := f.cache[feed.URL]
	f.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return FetchResult{}, fmt.Errorf("ics: build request: %w", err)
	}
	if hasCache && cached.etag != "" {
		req.Header.Set("If-None-Match", cached.etag)
	}
	if hasCache && cached.lastModified != "" {
		req.Header.Set("If-Modified-Since", cached.lastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if hasCache {
			f.l.Warnf(ctx, "ics.Fetch: %s network error, using cached body: %v", redactURL(feed.URL), err)
			return FetchResult{Feed: feed, Body: cached.body, FromCache: true}, nil
		}
		return FetchResult{}, fmt.Errorf("ics: fetch %s: %w", redactURL(feed.URL), err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return FetchResult{}, fmt.Errorf("ics: read body: %w", err)
		}
		f.mu.Lock()
		f.cache[feed.URL] = cacheEntry{
			etag:         resp.Header.Get("ETag"),
			lastModified: resp.Header.Get("Last-Modified"),
			body:         body,
			updatedAt:    time.Now().UTC(),
		}
		f.mu.Unlock()
		f.l.Debugf(ctx, "ics.Fetch: %s fetched %d bytes", redactURL(feed.URL), len(body))
		return FetchResult{Feed: feed, Body: body}, nil

	case http.StatusNotModified:
		if !hasCache {
			return FetchResult{}, ErrNotModified
		}
		return FetchResult{Feed: feed, Body: cached.body, FromCache: true}, nil

	default:
		if hasCache {
			f.l.Warnf(ctx, "ics.Fetch: %s returned %s, using cached body", redactURL(feed.URL), resp.Status)
			return FetchResult{Feed: feed, Body: cached.body, FromCache: true}, nil
		}
		return FetchResult{}, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
}

// redactURL keeps only the scheme and host, private feed URLs carry tokens.
func redactURL(u string) string {
	i := strings.Index(u, "://")
	if i < 0 {
		return "ics://...(redacted)"
	}
	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	return u[:i+3] + rest + "/...(redacted)"
}
