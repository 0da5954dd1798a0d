package gcalendar_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"task-planner/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *gcalendar.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	mockCreds := `{
		"installed": {
			"client_id": "test-client-id.apps.googleusercontent.com",
			"project_id": "test-project",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"client_secret": "test-secret",
			"redirect_uris": ["http://localhost"]
		}
	}`
	dir := t.TempDir()

	t.Run("Broken config", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`), "")
		if err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("Installed app with token", func(t *testing.T) {
		tokenPath := filepath.Join(dir, "token.json")
		os.WriteFile(tokenPath, []byte(`{"access_token": "dummy", "token_type": "Bearer", "expiry": "2030-01-01T00:00:00Z"}`), 0o600)

		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), tokenPath)
		if err != nil {
			t.Fatalf("expected parsing to succeed: %v", err)
		}
	})

	t.Run("Installed app with bad token", func(t *testing.T) {
		tokenPath := filepath.Join(dir, "bad-token.json")
		os.WriteFile(tokenPath, []byte(`{"broken": true`), 0o600)

		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), tokenPath)
		if err == nil {
			t.Fatalf("expected parsing to fail on bad token")
		}
	})

	t.Run("Installed app without token", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), filepath.Join(dir, "missing.json"))
		if err == nil {
			t.Fatalf("expected a missing token error")
		}
	})

	t.Run("Missing credentials file", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsFile(context.Background(), filepath.Join(dir, "nope.json"), "")
		if err == nil {
			t.Errorf("expected reading file error")
		}
	})
}

func TestListEvents(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/calendar/v3/calendars/test-fail/events":
			w.WriteHeader(http.StatusInternalServerError)
		case r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodGet:
			calls++
			if r.URL.Query().Get("singleEvents") != "true" {
				t.Errorf("recurring events must be expanded by the API")
			}
			if r.URL.Query().Get("pageToken") == "" {
				w.Write([]byte(`{
					"nextPageToken": "p2",
					"items": [
						{"id": "all-day", "summary": "Holiday", "start": {"date": "2024-05-01"}, "end": {"date": "2024-05-02"}},
						{"id": "gone", "status": "cancelled", "summary": "Cancelled", "start": {"date": "2024-05-01"}, "end": {"date": "2024-05-02"}}
					]
				}`))
				return
			}
			w.Write([]byte(`{
				"items": [
					{"id": "timed", "summary": "Standup", "colorId": "5",
					 "start": {"dateTime": "2024-05-01T09:00:00Z"}, "end": {"dateTime": "2024-05-01T09:15:00Z"}}
				]
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	events, err := client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
		TimeMin: from,
		TimeMax: from.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected two pages to be fetched, got %d", calls)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].AllDay || !events[0].StartTime.Equal(from) || !events[0].EndTime.Equal(from.AddDate(0, 0, 1)) {
		t.Errorf("unexpected all-day event: %+v", events[0])
	}
	if events[1].AllDay || events[1].ColorID != "5" || events[1].EndTime.Sub(events[1].StartTime) != 15*time.Minute {
		t.Errorf("unexpected timed event: %+v", events[1])
	}

	_, err = client.ListEvents(context.Background(), gcalendar.ListEventsRequest{CalendarID: "test-fail", TimeMin: from, TimeMax: from})
	if err == nil {
		t.Fatalf("expected api error on test-fail")
	}
}
