package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	ngrokAttempts   = 10
	ngrokRetryDelay = 3 * time.Second
)

// ngrokTunnelsResponse matches the /api/tunnels response from the ngrok local API.
type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// detectNgrokURL returns the public URL of the first tunnel, preferring HTTPS.
// ngrok may still be starting, so unreachable APIs and empty tunnel lists are
// retried up to attempts times.
func detectNgrokURL(ctx context.Context, apiBase string, attempts int, delay time.Duration) (string, error) {
	url := strings.TrimRight(apiBase, "/") + "/api/tunnels"
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		tunnels, err := fetchTunnels(ctx, client, url)
		if err != nil {
			lastErr = err
			continue
		}
		if publicURL := pickTunnel(tunnels); publicURL != "" {
			return publicURL, nil
		}
		lastErr = fmt.Errorf("no active tunnels")
	}
	return "", fmt.Errorf("ngrok: giving up after %d attempts: %w", attempts, lastErr)
}

func fetchTunnels(ctx context.Context, client *http.Client, url string) ([]ngrokTunnel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body ngrokTunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode ngrok API response: %w", err)
	}
	return body.Tunnels, nil
}

func pickTunnel(tunnels []ngrokTunnel) string {
	for _, t := range tunnels {
		if t.Proto == "https" {
			return t.PublicURL
		}
	}
	if len(tunnels) > 0 {
		return tunnels[0].PublicURL
	}
	return ""
}
