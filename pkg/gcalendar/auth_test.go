package gcalendar_test

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"task-planner/pkg/gcalendar"
)

const installedCreds = `{
	"installed": {
		"client_id": "test-client-id.apps.googleusercontent.com",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"client_secret": "test-secret",
		"redirect_uris": ["urn:ietf:wg:oauth:2.0:oob"]
	}
}`

func TestAuthorizer(t *testing.T) {
	t.Run("Auth URL asks for offline read-only access", func(t *testing.T) {
		a, err := gcalendar.NewAuthorizer([]byte(installedCreds))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		u, err := url.Parse(a.AuthCodeURL("state-token"))
		if err != nil {
			t.Fatalf("invalid auth URL: %v", err)
		}
		q := u.Query()
		if q.Get("access_type") != "offline" {
			t.Errorf("expected offline access, got %q", q.Get("access_type"))
		}
		if !strings.Contains(q.Get("scope"), "calendar.readonly") {
			t.Errorf("expected read-only scope, got %q", q.Get("scope"))
		}
		if q.Get("state") != "state-token" {
			t.Errorf("state not forwarded: %q", q.Get("state"))
		}
	})

	t.Run("Rejects malformed credentials", func(t *testing.T) {
		if _, err := gcalendar.NewAuthorizer([]byte(`{"broken":true}`)); err == nil {
			t.Errorf("expected an error")
		}
	})
}

func TestSaveTokenIsReadByClient(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "token.json")
	tok := &oauth2.Token{AccessToken: "dummy", TokenType: "Bearer", Expiry: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}

	if err := gcalendar.SaveToken(tokenPath, tok); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(installedCreds), tokenPath); err != nil {
		t.Fatalf("client could not use saved token: %v", err)
	}
}

func TestSaveTokenBadPath(t *testing.T) {
	err := gcalendar.SaveToken(filepath.Join(t.TempDir(), "missing", "token.json"), &oauth2.Token{})
	if err == nil {
		t.Errorf("expected an error for a missing directory")
	}
}
