package middleware

import (
	"task-planner/pkg/log"
)

// Config holds the client rate limit. A zero RequestsPerMin disables it.
type Config struct {
	RequestsPerMin int
	MaxClients     int
}

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

func New(l log.Logger, cfg Config) Middleware {
	m := Middleware{l: l}
	if cfg.RequestsPerMin > 0 {
		m.limiter = newRateLimiter(cfg.RequestsPerMin, cfg.MaxClients)
	}
	return m
}
